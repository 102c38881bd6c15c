// Package project holds the project list and current selection for the
// client, persisting the selected id to ~/.agentscope/state.yaml.
package project

import (
	"fmt"
	"os"
	"sync"

	"github.com/agentscope-io/agentscope/internal/config"
	"github.com/agentscope-io/agentscope/internal/models"
)

// Store is the project-selection state container.
type Store struct {
	mu       sync.RWMutex
	path     string
	projects []models.Project
	selected *models.Project
}

// NewStore creates a store persisting the selected project id to the given
// state file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a store persisting to the global state file.
func NewDefaultStore() (*Store, error) {
	path, err := config.GlobalStateFile()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// SetProjects replaces the project collection wholesale. Callers are
// expected to follow up with Reselect and Select to keep the selection
// consistent with the new list.
func (s *Store) SetProjects(projects []models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = projects
}

// Projects returns the current project collection.
func (s *Store) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects
}

// Select replaces the selection and persists the selected id before
// returning. Passing nil clears the selection.
func (s *Store) Select(p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.LocalState{Version: 1}
	if p != nil {
		state.SelectedProjectID = p.ID
	}
	if err := config.SaveYAML(s.path, &state, 0644); err != nil {
		return fmt.Errorf("failed to persist selection: %w", err)
	}
	s.selected = p
	return nil
}

// Selected returns the currently selected project, or nil.
func (s *Store) Selected() *models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// StoredID returns the previously persisted selection id, or "".
func (s *Store) StoredID() string {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()

	state, err := config.LoadYAMLOrDefault(path, models.NewLocalState)
	if err != nil {
		return ""
	}
	return state.SelectedProjectID
}

// ClearStored removes the persisted selection along with the in-memory one.
func (s *Store) ClearStored() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selected = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove state: %w", err)
	}
	return nil
}

// Reselect decides which project should be selected after the project list
// changes. It is a pure function of its inputs:
//
//   - keep the previous selection if it is still a member of projects
//   - otherwise pick the project matching storedID, if still a member
//   - otherwise fall back to the first project
//   - otherwise (empty list) return nil
func Reselect(projects []models.Project, previous *models.Project, storedID string) *models.Project {
	if len(projects) == 0 {
		return nil
	}
	if previous != nil {
		if p := find(projects, previous.ID); p != nil {
			return p
		}
	}
	if storedID != "" {
		if p := find(projects, storedID); p != nil {
			return p
		}
	}
	return &projects[0]
}

func find(projects []models.Project, id string) *models.Project {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i]
		}
	}
	return nil
}
