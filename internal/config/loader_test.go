package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentscope-io/agentscope/internal/models"
)

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	in := models.NewSettings()
	in.ServerURL = "https://scope.example.com"
	if err := SaveYAML(path, in, 0644); err != nil {
		t.Fatalf("SaveYAML() error = %v", err)
	}

	var out models.Settings
	if err := LoadYAML(path, &out); err != nil {
		t.Fatalf("LoadYAML() error = %v", err)
	}
	if out.ServerURL != "https://scope.example.com" {
		t.Errorf("ServerURL = %q", out.ServerURL)
	}
	if out.Defaults.RunPageSize != in.Defaults.RunPageSize {
		t.Errorf("RunPageSize = %d, want %d", out.Defaults.RunPageSize, in.Defaults.RunPageSize)
	}
}

func TestSaveYAMLPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")

	creds := models.Credentials{Version: 1, Token: "tok"}
	if err := SaveYAML(path, &creds, 0600); err != nil {
		t.Fatalf("SaveYAML() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

func TestLoadYAMLOrDefault(t *testing.T) {
	dir := t.TempDir()

	// Missing file returns the default.
	got, err := LoadYAMLOrDefault(filepath.Join(dir, "missing.yaml"), models.NewSettings)
	if err != nil {
		t.Fatalf("LoadYAMLOrDefault() error = %v", err)
	}
	if got.ServerURL != models.DefaultServerURL {
		t.Errorf("ServerURL = %q, want default", got.ServerURL)
	}

	// Existing file is loaded.
	path := filepath.Join(dir, "settings.yaml")
	custom := models.NewSettings()
	custom.Appearance.Theme = "dark"
	if err := SaveYAML(path, custom, 0644); err != nil {
		t.Fatal(err)
	}
	got, err = LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		t.Fatalf("LoadYAMLOrDefault() error = %v", err)
	}
	if got.Appearance.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", got.Appearance.Theme)
	}

	// Corrupt file is an error, not a silent default.
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadYAMLOrDefault(bad, models.NewSettings); err == nil {
		t.Error("LoadYAMLOrDefault() on corrupt file error = nil, want error")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.yaml")

	if FileExists(path) {
		t.Error("FileExists() = true for missing file")
	}
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(path) {
		t.Error("FileExists() = false for existing file")
	}
}
