package models

import "time"

// Project represents a project as returned by the API.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProjectRequest is the POST /api/projects/ request body.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateProjectRequest is the PATCH /api/projects/{id} request body.
// Nil fields are omitted and left unchanged by the server.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ProjectStats holds the aggregate counts for a project.
type ProjectStats struct {
	TotalRuns    int      `json:"total_runs"`
	FailedRuns   int      `json:"failed_runs"`
	AvgLatencyMs *float64 `json:"avg_latency_ms"`
	TestPassRate *float64 `json:"test_pass_rate"`
	RecentRuns   int      `json:"recent_runs"`
}
