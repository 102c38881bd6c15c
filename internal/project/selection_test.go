package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentscope-io/agentscope/internal/models"
)

func proj(id, name string) models.Project {
	return models.Project{ID: id, Name: name}
}

func TestReselect(t *testing.T) {
	a := proj("a", "alpha")
	b := proj("b", "beta")
	c := proj("c", "gamma")

	tests := []struct {
		name     string
		projects []models.Project
		previous *models.Project
		storedID string
		wantID   string // "" means nil
	}{
		{
			name:     "empty list clears selection",
			projects: nil,
			previous: &a,
			storedID: "a",
			wantID:   "",
		},
		{
			name:     "previous kept when still a member",
			projects: []models.Project{a, b, c},
			previous: &b,
			storedID: "c",
			wantID:   "b",
		},
		{
			name:     "stored id wins when previous is gone",
			projects: []models.Project{a, c},
			previous: &b,
			storedID: "c",
			wantID:   "c",
		},
		{
			name:     "stored id used with no previous",
			projects: []models.Project{a, b},
			previous: nil,
			storedID: "b",
			wantID:   "b",
		},
		{
			name:     "first project when nothing matches",
			projects: []models.Project{a, b},
			previous: &c,
			storedID: "zzz",
			wantID:   "a",
		},
		{
			name:     "first project with no hints at all",
			projects: []models.Project{b, a},
			previous: nil,
			storedID: "",
			wantID:   "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reselect(tt.projects, tt.previous, tt.storedID)
			if tt.wantID == "" {
				if got != nil {
					t.Errorf("Reselect() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Reselect() = nil, want %q", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("Reselect().ID = %q, want %q", got.ID, tt.wantID)
			}
		})
	}
}

func TestSelectPersistsBeforeReturning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s := NewStore(path)

	p := proj("p1", "alpha")
	if err := s.Select(&p); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	// The state file must be on disk when Select returns.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("state file not written: %v", err)
	}

	// A fresh store over the same path sees the id.
	other := NewStore(path)
	if got := other.StoredID(); got != "p1" {
		t.Errorf("StoredID() = %q, want %q", got, "p1")
	}
	if got := s.Selected(); got == nil || got.ID != "p1" {
		t.Errorf("Selected() = %v, want p1", got)
	}
}

func TestSelectNilClearsSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s := NewStore(path)

	p := proj("p1", "alpha")
	if err := s.Select(&p); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := s.Select(nil); err != nil {
		t.Fatalf("Select(nil) error = %v", err)
	}

	if s.Selected() != nil {
		t.Error("Selected() != nil after Select(nil)")
	}
	if got := s.StoredID(); got != "" {
		t.Errorf("StoredID() = %q, want empty", got)
	}
}

func TestStoredIDMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.yaml"))
	if got := s.StoredID(); got != "" {
		t.Errorf("StoredID() = %q, want empty", got)
	}
}

func TestClearStored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s := NewStore(path)

	p := proj("p1", "alpha")
	if err := s.Select(&p); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if err := s.ClearStored(); err != nil {
		t.Fatalf("ClearStored() error = %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("state file still present after ClearStored")
	}
	if s.Selected() != nil {
		t.Error("Selected() != nil after ClearStored")
	}

	// Clearing twice is a no-op.
	if err := s.ClearStored(); err != nil {
		t.Errorf("second ClearStored() error = %v", err)
	}
}

func TestSetProjectsDoesNotTouchSelection(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "state.yaml"))

	p := proj("p1", "alpha")
	if err := s.Select(&p); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	s.SetProjects([]models.Project{proj("p2", "beta")})

	// SetProjects is wholesale replacement only; reconciling the selection
	// is a separate Reselect + Select step.
	if got := s.Selected(); got == nil || got.ID != "p1" {
		t.Errorf("Selected() = %v, want p1 untouched", got)
	}
	if len(s.Projects()) != 1 || s.Projects()[0].ID != "p2" {
		t.Errorf("Projects() = %v, want [p2]", s.Projects())
	}
}
