package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/agentscope-io/agentscope/internal/api"
	"github.com/agentscope-io/agentscope/internal/config"
	"github.com/agentscope-io/agentscope/internal/models"
	"github.com/agentscope-io/agentscope/internal/project"
	"github.com/agentscope-io/agentscope/internal/session"
)

const requestTimeout = 10 * time.Second

// deps bundles the stores and API client a command needs. Stores are built
// fresh per invocation; the CLI is short-lived.
type deps struct {
	settings *models.Settings
	sessions *session.Store
	projects *project.Store
	client   *api.Client
}

func buildDeps() (*deps, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	sessions, err := session.NewDefaultStore()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	projects, err := project.NewDefaultStore()
	if err != nil {
		return nil, err
	}

	client := api.NewClient(settings.ServerURL, sessions, api.WithUnauthorizedHook(func() {
		fmt.Fprintln(os.Stderr, styleWarning.Render("Session expired. Run 'agentscope login' to sign in again."))
	}))

	return &deps{
		settings: settings,
		sessions: sessions,
		projects: projects,
		client:   client,
	}, nil
}

// buildAuthedDeps is buildDeps plus a local credential check, so commands
// fail with a useful hint instead of a server round trip.
func buildAuthedDeps() (*deps, error) {
	d, err := buildDeps()
	if err != nil {
		return nil, err
	}
	if !d.sessions.Authenticated() {
		return nil, fmt.Errorf("not logged in. Run 'agentscope login' first")
	}
	return d, nil
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// resolveProject picks the project a project-scoped command operates on:
// an explicit --project flag wins, otherwise the persisted selection is
// reconciled against the live project list.
func (d *deps) resolveProject(ctx context.Context, flagID string) (*models.Project, error) {
	list, err := d.client.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	d.projects.SetProjects(list)

	if flagID != "" {
		for i := range list {
			if list[i].ID == flagID || list[i].Name == flagID {
				return &list[i], nil
			}
		}
		return nil, fmt.Errorf("project %q not found", flagID)
	}

	selected := project.Reselect(list, d.projects.Selected(), d.projects.StoredID())
	if selected == nil {
		return nil, fmt.Errorf("no projects yet. Run 'agentscope project create' first")
	}
	if err := d.projects.Select(selected); err != nil {
		return nil, err
	}
	return selected, nil
}

// terminalWidth returns the usable output width, defaulting to 100 columns
// when stdout is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 100
	}
	return w
}

// fit truncates a styled cell to the given display width.
func fit(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDuration(ms *int64) string {
	if ms == nil {
		return "—"
	}
	return (time.Duration(*ms) * time.Millisecond).String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
