package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentscope-io/agentscope/internal/models"
)

func testUser() *models.User {
	name := "Ada"
	return &models.User{ID: "u1", Email: "ada@example.com", Name: &name}
}

func TestSetAuthPersistsBeforeReturning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	s := NewStore(path)

	if err := s.SetAuth(testUser(), "tok123"); err != nil {
		t.Fatalf("SetAuth() error = %v", err)
	}

	// The file must already be on disk when SetAuth returns.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("credentials file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credentials file mode = %o, want 0600", perm)
	}

	if s.Token() != "tok123" {
		t.Errorf("Token() = %q, want %q", s.Token(), "tok123")
	}
	if !s.Authenticated() {
		t.Error("Authenticated() = false after SetAuth")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")

	first := NewStore(path)
	if err := first.SetAuth(testUser(), "tok123"); err != nil {
		t.Fatalf("SetAuth() error = %v", err)
	}

	second := NewStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second.Token() != "tok123" {
		t.Errorf("Token() = %q, want %q", second.Token(), "tok123")
	}
	u := second.User()
	if u == nil || u.Email != "ada@example.com" {
		t.Errorf("User() = %+v, want ada@example.com", u)
	}
}

func TestLoadMissingFileIsLoggedOut(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "credentials.yaml"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true with no credentials file")
	}
}

func TestLoadHalfWrittenCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	if err := os.WriteFile(path, []byte("version: 1\ntoken: tok123\n"), 0600); err != nil {
		t.Fatal(err)
	}

	// Token without user is treated as logged out, not an error.
	s := NewStore(path)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true for credential missing the user")
	}
	if s.Token() != "" {
		t.Errorf("Token() = %q, want empty", s.Token())
	}
}

func TestSetAuthRejectsIncompleteCredential(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "credentials.yaml"))

	if err := s.SetAuth(nil, "tok"); err == nil {
		t.Error("SetAuth(nil, tok) error = nil, want error")
	}
	if err := s.SetAuth(testUser(), ""); err == nil {
		t.Error("SetAuth(user, \"\") error = nil, want error")
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true after rejected SetAuth")
	}
}

func TestLogoutRemovesFileAndIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	s := NewStore(path)
	if err := s.SetAuth(testUser(), "tok123"); err != nil {
		t.Fatalf("SetAuth() error = %v", err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("credentials file still present after Logout")
	}
	if s.Authenticated() {
		t.Error("Authenticated() = true after Logout")
	}
	if s.User() != nil {
		t.Error("User() != nil after Logout")
	}

	// Second and third logout are no-ops.
	if err := s.Logout(); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
	if err := s.Logout(); err != nil {
		t.Errorf("third Logout() error = %v", err)
	}
}
