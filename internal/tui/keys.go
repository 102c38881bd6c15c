package tui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are always active while signed in.
type GlobalKeys struct {
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding
	Logout  key.Binding
}

var globalKeys = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+q", "q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("Ctrl+l", "log out"),
	),
}

// TabSwitchKeys switch the main tabs.
type TabSwitchKeys struct {
	Tab1  key.Binding
	Tab2  key.Binding
	Tab3  key.Binding
	Tab4  key.Binding
	Next  key.Binding
	Left  key.Binding
	Right key.Binding
}

var tabSwitchKeys = TabSwitchKeys{
	Tab1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "Dashboard"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "Runs"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "Projects"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "API Keys"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next tab"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
}

// ListKeys are shared by the run, project, and key lists.
type ListKeys struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
}

var listKeys = ListKeys{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("j/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/k", "navigate"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open"),
	),
}

// RunListKeys are active on the Runs tab.
type RunListKeys struct {
	Filter   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

var runListKeys = RunListKeys{
	Filter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter status"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("[/]", "page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[/]", "page"),
	),
}

// ProjectKeys are active on the Projects tab.
type ProjectKeys struct {
	Add    key.Binding
	Rename key.Binding
	Delete key.Binding
	Select key.Binding
}

var projectKeys = ProjectKeys{
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new project"),
	),
	Rename: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "rename"),
	),
	Delete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "delete"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "select"),
	),
}

// KeyListKeys are active on the API Keys tab.
type KeyListKeys struct {
	Add    key.Binding
	Revoke key.Binding
}

var keyListKeys = KeyListKeys{
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new key"),
	),
	Revoke: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "revoke"),
	),
}

// OverlayKeys are active when an overlay is shown.
type OverlayKeys struct {
	Save   key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

var overlayKeys = OverlayKeys{
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next field"),
	),
}

// ConfirmKeys for inline confirmation prompts.
type ConfirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Cancel key.Binding
}

var confirmKeys = ConfirmKeys{
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "cancel"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}

// DetailKeys are active in the run detail view.
type DetailKeys struct {
	Back key.Binding
	Up   key.Binding
	Down key.Binding
}

var detailKeys = DetailKeys{
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
	),
}
