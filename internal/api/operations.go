package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/agentscope-io/agentscope/internal/models"
)

// Login exchanges email and password for a token and user.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns a token and user.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListProjects returns the caller's projects.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, req models.CreateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, id string, req models.UpdateProjectRequest) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, http.MethodPatch, "/api/projects/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil, nil)
}

// ProjectStats returns aggregate counts for a project.
func (c *Client) ProjectStats(ctx context.Context, id string) (*models.ProjectStats, error) {
	var out models.ProjectStats
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id)+"/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAPIKeys returns a project's API keys. Secrets are never included, only
// prefixes.
func (c *Client) ListAPIKeys(ctx context.Context, projectID string) ([]models.APIKey, error) {
	var out []models.APIKey
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(projectID)+"/api-keys", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAPIKey creates an API key. The response carries the full secret; it
// is the only time the server ever returns it.
func (c *Client) CreateAPIKey(ctx context.Context, projectID string, req models.CreateAPIKeyRequest) (*models.CreatedAPIKey, error) {
	var out models.CreatedAPIKey
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+url.PathEscape(projectID)+"/api-keys", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeAPIKey revokes an API key.
func (c *Client) RevokeAPIKey(ctx context.Context, projectID, keyID string) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+url.PathEscape(projectID)+"/api-keys/"+url.PathEscape(keyID), nil, nil, nil)
}

// ListRuns returns run summaries matching the query.
func (c *Client) ListRuns(ctx context.Context, q models.RunsQuery) ([]models.RunSummary, error) {
	query := url.Values{}
	if q.ProjectID != "" {
		query.Set("project_id", q.ProjectID)
	}
	if q.Status != "" {
		query.Set("status", q.Status)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		query.Set("offset", strconv.Itoa(q.Offset))
	}

	var out []models.RunSummary
	if err := c.do(ctx, http.MethodGet, "/api/runs/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRun returns one run with its full payloads.
func (c *Client) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var out models.Run
	if err := c.do(ctx, http.MethodGet, "/api/runs/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRunSteps returns a run's steps ordered by step index.
func (c *Client) ListRunSteps(ctx context.Context, runID string) ([]models.RunStep, error) {
	var out []models.RunStep
	if err := c.do(ctx, http.MethodGet, "/api/runs/"+url.PathEscape(runID)+"/steps", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
