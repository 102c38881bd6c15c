package models

// AppearanceConfig holds appearance settings.
type AppearanceConfig struct {
	Theme string `yaml:"theme"` // "system" | "light" | "dark"
}

// DefaultsConfig holds default query settings for the dashboard and CLI.
type DefaultsConfig struct {
	RunPageSize  int    `yaml:"run_page_size"`
	StatusFilter string `yaml:"status_filter"` // "" = all
}

// Settings represents global client settings.
// This corresponds to ~/.agentscope/settings.yaml.
type Settings struct {
	Version    int              `yaml:"version"`
	ServerURL  string           `yaml:"server_url"`
	Defaults   DefaultsConfig   `yaml:"defaults"`
	Appearance AppearanceConfig `yaml:"appearance"`
}

// DefaultServerURL is used when settings.yaml does not override it.
const DefaultServerURL = "http://localhost:8000"

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:   1,
		ServerURL: DefaultServerURL,
		Defaults: DefaultsConfig{
			RunPageSize:  50,
			StatusFilter: "",
		},
		Appearance: AppearanceConfig{
			Theme: "system",
		},
	}
}

// Credentials represents the persisted session credential.
// This corresponds to ~/.agentscope/credentials.yaml.
type Credentials struct {
	Version int    `yaml:"version"`
	Token   string `yaml:"token"`
	User    *User  `yaml:"user,omitempty"`
}

// LocalState represents client-side preferences that survive restarts.
// This corresponds to ~/.agentscope/state.yaml.
type LocalState struct {
	Version           int    `yaml:"version"`
	SelectedProjectID string `yaml:"selected_project_id"`
}

// NewLocalState creates an empty local state.
func NewLocalState() *LocalState {
	return &LocalState{Version: 1}
}
