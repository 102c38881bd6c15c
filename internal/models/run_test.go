package models

import (
	"testing"
	"time"
)

func TestRunDuration(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)

	running := Run{Status: RunStatusRunning, StartedAt: start}
	if _, ok := running.Duration(); ok {
		t.Error("Duration() ok = true for run without end time")
	}

	done := Run{Status: RunStatusCompleted, StartedAt: start, EndedAt: &end}
	d, ok := done.Duration()
	if !ok {
		t.Fatal("Duration() ok = false for ended run")
	}
	if d != 90*time.Second {
		t.Errorf("Duration() = %v, want 90s", d)
	}
}

func TestAPIKeyRevoked(t *testing.T) {
	now := time.Now()

	active := APIKey{ID: "k1"}
	if active.Revoked() {
		t.Error("Revoked() = true for key without revoked_at")
	}

	revoked := APIKey{ID: "k2", RevokedAt: &now}
	if !revoked.Revoked() {
		t.Error("Revoked() = false for key with revoked_at set")
	}
}

func TestUserDisplayName(t *testing.T) {
	name := "Ada"
	empty := ""

	tests := []struct {
		name string
		user User
		want string
	}{
		{"with name", User{Email: "a@b.c", Name: &name}, "Ada"},
		{"nil name", User{Email: "a@b.c"}, "a@b.c"},
		{"empty name", User{Email: "a@b.c", Name: &empty}, "a@b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
