package tui

import (
	"github.com/agentscope-io/agentscope/internal/models"
)

// AuthSuccessMsg signals a completed login or registration.
type AuthSuccessMsg struct {
	User  models.User
	Token string
}

// SessionExpiredMsg signals the access layer cleared the session after a 401.
type SessionExpiredMsg struct{}

// ProjectsLoadedMsg carries the project list.
type ProjectsLoadedMsg struct {
	Projects []models.Project
}

// ProjectSavedMsg signals a project was created or updated.
type ProjectSavedMsg struct {
	Project models.Project
}

// ProjectDeletedMsg signals a project was deleted.
type ProjectDeletedMsg struct {
	ID string
}

// StatsLoadedMsg carries aggregate counts for one project.
type StatsLoadedMsg struct {
	ProjectID string
	Stats     models.ProjectStats
}

// RunsLoadedMsg carries a page of run summaries.
type RunsLoadedMsg struct {
	ProjectID string
	Runs      []models.RunSummary
}

// RunLoadedMsg carries one run with full payloads.
type RunLoadedMsg struct {
	Run models.Run
}

// StepsLoadedMsg carries a run's step trace.
type StepsLoadedMsg struct {
	RunID string
	Steps []models.RunStep
}

// KeysLoadedMsg carries a project's API keys.
type KeysLoadedMsg struct {
	ProjectID string
	Keys      []models.APIKey
}

// KeyCreatedMsg carries a freshly created key including its one-time secret.
type KeyCreatedMsg struct {
	Key models.CreatedAPIKey
}

// KeyRevokedMsg signals a key was revoked.
type KeyRevokedMsg struct {
	ID string
}

// SettingsReloadedMsg carries settings re-read after an external change.
type SettingsReloadedMsg struct {
	Settings *models.Settings
}

// CredentialsChangedMsg signals the credentials file changed on disk,
// e.g. a login or logout in another terminal.
type CredentialsChangedMsg struct{}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}

// ClearSavedMsg clears the "Saved" indicator.
type ClearSavedMsg struct{}

// TickMsg is a periodic tick for refreshing the runs view.
type TickMsg struct{}
