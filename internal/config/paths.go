// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

// GlobalDirName is the name of the global AgentScope directory.
const GlobalDirName = ".agentscope"

// File names
const (
	SettingsFileName    = "settings.yaml"
	CredentialsFileName = "credentials.yaml"
	StateFileName       = "state.yaml"
)

// GlobalDir returns the path to the global AgentScope directory (~/.agentscope/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SettingsFileName), nil
}

// GlobalCredentialsFile returns the path to the credentials.yaml file.
func GlobalCredentialsFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, CredentialsFileName), nil
}

// GlobalStateFile returns the path to the state.yaml file.
func GlobalStateFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, StateFileName), nil
}

// EnsureGlobalDir creates the global AgentScope directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
