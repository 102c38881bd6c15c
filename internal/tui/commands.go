package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentscope-io/agentscope/internal/api"
	"github.com/agentscope-io/agentscope/internal/config"
	"github.com/agentscope-io/agentscope/internal/models"
)

const requestTimeout = 5 * time.Second

func loginCmd(client *api.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		resp, err := client.Login(ctx, models.LoginRequest{
			Email:    email,
			Password: password,
		})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to log in: %w", err)}
		}
		return AuthSuccessMsg{User: resp.User, Token: resp.AccessToken}
	}
}

func registerCmd(client *api.Client, email, password, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		req := models.RegisterRequest{Email: email, Password: password}
		if name != "" {
			req.Name = &name
		}

		resp, err := client.Register(ctx, req)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to register: %w", err)}
		}
		return AuthSuccessMsg{User: resp.User, Token: resp.AccessToken}
	}
}

func loadProjectsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		projects, err := client.ListProjects(ctx)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load projects: %w", err)}
		}
		return ProjectsLoadedMsg{Projects: projects}
	}
}

func loadStatsCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		stats, err := client.ProjectStats(ctx, projectID)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load stats: %w", err)}
		}
		return StatsLoadedMsg{ProjectID: projectID, Stats: *stats}
	}
}

func loadRunsCmd(client *api.Client, q models.RunsQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		runs, err := client.ListRuns(ctx, q)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load runs: %w", err)}
		}
		return RunsLoadedMsg{ProjectID: q.ProjectID, Runs: runs}
	}
}

func loadRunCmd(client *api.Client, runID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		run, err := client.GetRun(ctx, runID)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load run: %w", err)}
		}
		return RunLoadedMsg{Run: *run}
	}
}

func loadStepsCmd(client *api.Client, runID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		steps, err := client.ListRunSteps(ctx, runID)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load steps: %w", err)}
		}
		return StepsLoadedMsg{RunID: runID, Steps: steps}
	}
}

func loadKeysCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		keys, err := client.ListAPIKeys(ctx, projectID)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load api keys: %w", err)}
		}
		return KeysLoadedMsg{ProjectID: projectID, Keys: keys}
	}
}

func createProjectCmd(client *api.Client, name, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		req := models.CreateProjectRequest{Name: name}
		if description != "" {
			req.Description = &description
		}

		p, err := client.CreateProject(ctx, req)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to create project: %w", err)}
		}
		return ProjectSavedMsg{Project: *p}
	}
}

func renameProjectCmd(client *api.Client, projectID, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		p, err := client.UpdateProject(ctx, projectID, models.UpdateProjectRequest{
			Name: &name,
		})
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to rename project: %w", err)}
		}
		return ProjectSavedMsg{Project: *p}
	}
}

func deleteProjectCmd(client *api.Client, projectID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.DeleteProject(ctx, projectID); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to delete project: %w", err)}
		}
		return ProjectDeletedMsg{ID: projectID}
	}
}

func createKeyCmd(client *api.Client, projectID, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		req := models.CreateAPIKeyRequest{}
		if name != "" {
			req.Name = &name
		}

		created, err := client.CreateAPIKey(ctx, projectID, req)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to create api key: %w", err)}
		}
		return KeyCreatedMsg{Key: *created}
	}
}

func revokeKeyCmd(client *api.Client, projectID, keyID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := client.RevokeAPIKey(ctx, projectID, keyID); err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to revoke api key: %w", err)}
		}
		return KeyRevokedMsg{ID: keyID}
	}
}

// watchConfigCmd forwards config file changes into the update loop until the
// program exits. The goroutine stops when the watcher channel closes.
func watchConfigCmd(program *programRef) tea.Cmd {
	return func() tea.Msg {
		watcher, err := config.NewWatcher()
		if err != nil {
			return nil // Non-critical
		}

		go func() {
			for ev := range watcher.Events() {
				switch ev.Type {
				case config.EventSettingsChanged:
					settings, err := config.LoadSettings()
					if err != nil {
						continue
					}
					program.Send(SettingsReloadedMsg{Settings: settings})
				case config.EventCredentialsChanged:
					program.Send(CredentialsChangedMsg{})
				}
			}
		}()

		return nil
	}
}

func refreshTick() tea.Cmd {
	return tea.Tick(5*time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}

func clearSavedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearSavedMsg{}
	})
}
