// Package tui implements the interactive dashboard for AgentScope.
package tui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentscope-io/agentscope/internal/api"
	"github.com/agentscope-io/agentscope/internal/config"
	"github.com/agentscope-io/agentscope/internal/project"
	"github.com/agentscope-io/agentscope/internal/session"
)

// programRef is a shared reference to the tea.Program for goroutine sends.
// It's set after tea.NewProgram but before p.Run().
type programRef struct {
	mu sync.Mutex
	p  *tea.Program
}

func (r *programRef) Set(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = p
}

func (r *programRef) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.p
	r.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// Clear nils out the program reference, preventing post-exit sends.
func (r *programRef) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.p = nil
}

// Run launches the dashboard.
func Run() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	sessions, err := session.NewDefaultStore()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	projects, err := project.NewDefaultStore()
	if err != nil {
		return err
	}

	ref := &programRef{}

	// A 401 anywhere tears down the session; the hook routes the event back
	// into the update loop so the model can fall back to the login screen.
	client := api.NewClient(settings.ServerURL, sessions, api.WithUnauthorizedHook(func() {
		ref.Send(SessionExpiredMsg{})
	}))

	model := NewModel(settings, sessions, projects, client, ref)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)
	ref.Set(p)
	defer ref.Clear()

	_, err = p.Run()
	return err
}
