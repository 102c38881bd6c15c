package models

import "time"

// Run statuses reported by the server. Unknown values pass through unchanged.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Step types accepted by the ingest API.
const (
	StepTypeLLMCall   = "llm_call"
	StepTypeToolCall  = "tool_call"
	StepTypeRetrieval = "retrieval"
	StepTypeCustom    = "custom"
	StepTypeError     = "error"
)

// Run represents one recorded agent execution.
type Run struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	ExternalID *string    `json:"external_id"`
	AgentName  string     `json:"agent_name"`
	Status     string     `json:"status"`
	Input      Document   `json:"input,omitempty"`
	Output     Document   `json:"output,omitempty"`
	MetaData   Document   `json:"meta_data,omitempty"`
	Error      Document   `json:"error,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Duration returns the elapsed time of the run, or false if it has not ended.
func (r *Run) Duration() (time.Duration, bool) {
	if r.EndedAt == nil {
		return 0, false
	}
	return r.EndedAt.Sub(r.StartedAt), true
}

// RunSummary is the compact shape returned by the run list endpoint.
type RunSummary struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	ExternalID *string    `json:"external_id"`
	AgentName  string     `json:"agent_name"`
	Status     string     `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at"`
	StepCount  int        `json:"step_count"`
	DurationMs *int64     `json:"duration_ms"`
}

// RunStep is one recorded sub-event within a run, ordered by StepIndex.
type RunStep struct {
	ID         string     `json:"id"`
	RunID      string     `json:"run_id"`
	StepIndex  int        `json:"step_index"`
	StepType   string     `json:"step_type"`
	Name       string     `json:"name"`
	Input      Document   `json:"input,omitempty"`
	Output     Document   `json:"output,omitempty"`
	MetaData   Document   `json:"meta_data,omitempty"`
	Error      Document   `json:"error,omitempty"`
	TokensUsed *int       `json:"tokens_used"`
	LatencyMs  *int       `json:"latency_ms"`
	StartedAt  *time.Time `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RunsQuery holds the query parameters for the run list endpoint.
// Zero values are omitted from the request.
type RunsQuery struct {
	ProjectID string
	Status    string
	Limit     int
	Offset    int
}
