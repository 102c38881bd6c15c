package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/agentscope-io/agentscope/internal/models"
)

// KeyList is the API key table shown on the API Keys tab.
type KeyList struct {
	keys         []models.APIKey
	cursor       int
	scrollOffset int
	height       int
	loading      bool
}

// NewKeyList creates an empty key list.
func NewKeyList() *KeyList {
	return &KeyList{}
}

// SetKeys replaces the key collection and clamps the cursor.
func (kl *KeyList) SetKeys(keys []models.APIKey) {
	kl.keys = keys
	kl.loading = false
	if kl.cursor >= len(keys) {
		kl.cursor = len(keys) - 1
	}
	if kl.cursor < 0 {
		kl.cursor = 0
	}
}

// SetLoading marks the list as waiting for data.
func (kl *KeyList) SetLoading() {
	kl.loading = true
}

// SetHeight sets the visible height.
func (kl *KeyList) SetHeight(h int) {
	kl.height = h
}

// Selected returns the key under the cursor, or nil.
func (kl *KeyList) Selected() *models.APIKey {
	if kl.cursor < 0 || kl.cursor >= len(kl.keys) {
		return nil
	}
	return &kl.keys[kl.cursor]
}

// MoveUp moves the cursor up.
func (kl *KeyList) MoveUp() {
	if kl.cursor > 0 {
		kl.cursor--
	}
	kl.ensureVisible()
}

// MoveDown moves the cursor down.
func (kl *KeyList) MoveDown() {
	if kl.cursor < len(kl.keys)-1 {
		kl.cursor++
	}
	kl.ensureVisible()
}

func (kl *KeyList) ensureVisible() {
	if kl.cursor < kl.scrollOffset {
		kl.scrollOffset = kl.cursor
	}
	if kl.cursor >= kl.scrollOffset+kl.height {
		kl.scrollOffset = kl.cursor - kl.height + 1
	}
}

// View renders the key table.
func (kl *KeyList) View(width int) string {
	var lines []string
	lines = append(lines, sectionHeaderStyle.Render("API Keys"), "")

	if kl.loading {
		lines = append(lines, dimTextStyle.Render("Loading keys..."))
		return strings.Join(lines, "\n")
	}

	if len(kl.keys) == 0 {
		lines = append(lines, dimTextStyle.Render("No keys. Press 'a' to create one for agent ingest."))
		return strings.Join(lines, "\n")
	}

	header := fmt.Sprintf("  %-12s %-24s %-16s %s", "PREFIX", "NAME", "LAST USED", "CREATED")
	lines = append(lines, columnHeaderStyle.Render(ansi.Truncate(header, width, "")))

	end := kl.scrollOffset + kl.height
	if end > len(kl.keys) {
		end = len(kl.keys)
	}

	if kl.scrollOffset > 0 {
		lines = append(lines, dimTextStyle.Render("  ▲ more"))
	}

	for i := kl.scrollOffset; i < end; i++ {
		k := kl.keys[i]

		name := "—"
		if k.Name != nil && *k.Name != "" {
			name = *k.Name
		}
		lastUsed := "never"
		if k.LastUsedAt != nil {
			lastUsed = k.LastUsedAt.Local().Format("Jan 02 15:04")
		}

		row := fmt.Sprintf("%-12s %-24s %-16s %s",
			k.KeyPrefix+"…",
			ansi.Truncate(name, 24, "…"),
			lastUsed,
			k.CreatedAt.Local().Format("Jan 02 2006"),
		)
		row = ansi.Truncate(row, width-2, "…")

		if k.Revoked() {
			row = revokedStyle.Render(row)
		}
		if i == kl.cursor {
			lines = append(lines, selectedItemStyle.Width(width).Render("  "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	if end < len(kl.keys) {
		lines = append(lines, dimTextStyle.Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}
