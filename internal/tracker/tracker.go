// Package tracker is the ingest-side client: agents report runs and steps to
// the server using a project API key instead of a user session. It mirrors
// the dashboard's access layer but authenticates with the X-Agentscope-Key
// header the ingest endpoints require.
package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agentscope-io/agentscope/internal/api"
	"github.com/agentscope-io/agentscope/internal/models"
)

const keyHeader = "X-Agentscope-Key"

// Tracker submits run data to the ingest API.
type Tracker struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	failSilently bool

	currentRunID string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *Tracker) { t.httpClient = hc }
}

// WithFailSilently makes submission errors get logged and swallowed instead
// of returned, so instrumentation never aborts the agent it is tracking.
// An invalid api key still errors.
func WithFailSilently() Option {
	return func(t *Tracker) { t.failSilently = true }
}

// New creates a tracker submitting to the server at baseURL with the given
// project API key.
func New(baseURL, apiKey string, opts ...Option) (*Tracker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	t := &Tracker{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// StartOptions configures a new run.
type StartOptions struct {
	ExternalID string
	Input      models.Document
	MetaData   models.Document
}

// Step is one recorded sub-event to attach to the current run.
type Step struct {
	Type       string
	Name       string
	Input      models.Document
	Output     models.Document
	MetaData   models.Document
	Error      models.Document
	TokensUsed *int
	LatencyMs  *int
	StartedAt  *time.Time
	EndedAt    *time.Time
}

type createRunRequest struct {
	ExternalID *string         `json:"external_id,omitempty"`
	AgentName  string          `json:"agent_name"`
	Input      models.Document `json:"input,omitempty"`
	MetaData   models.Document `json:"meta_data,omitempty"`
}

type addStepRequest struct {
	StepType   string          `json:"step_type"`
	Name       string          `json:"name"`
	Input      models.Document `json:"input,omitempty"`
	Output     models.Document `json:"output,omitempty"`
	MetaData   models.Document `json:"meta_data,omitempty"`
	Error      models.Document `json:"error,omitempty"`
	TokensUsed *int            `json:"tokens_used,omitempty"`
	LatencyMs  *int            `json:"latency_ms,omitempty"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	EndedAt    *time.Time      `json:"ended_at,omitempty"`
}

type updateRunRequest struct {
	Status  string          `json:"status,omitempty"`
	Output  models.Document `json:"output,omitempty"`
	Error   models.Document `json:"error,omitempty"`
	EndedAt *time.Time      `json:"ended_at,omitempty"`
}

// StartRun creates a run and remembers its id for subsequent steps. When no
// external id is supplied a fresh UUID is generated so runs can be correlated
// by the caller later.
func (t *Tracker) StartRun(ctx context.Context, agentName string, opts StartOptions) (*models.Run, error) {
	externalID := opts.ExternalID
	if externalID == "" {
		externalID = uuid.NewString()
	}
	req := createRunRequest{
		ExternalID: &externalID,
		AgentName:  agentName,
		Input:      opts.Input,
		MetaData:   opts.MetaData,
	}

	var run models.Run
	if err := t.silence(t.post(ctx, http.MethodPost, "/api/ingest/run", req, &run)); err != nil {
		return nil, err
	}
	if run.ID == "" {
		return nil, nil
	}
	t.currentRunID = run.ID
	return &run, nil
}

// AddStep appends a step to the current run. The server assigns the next
// step index.
func (t *Tracker) AddStep(ctx context.Context, step Step) error {
	if t.currentRunID == "" {
		return fmt.Errorf("no active run")
	}
	return t.AddStepTo(ctx, t.currentRunID, step)
}

// AddStepTo appends a step to a specific run.
func (t *Tracker) AddStepTo(ctx context.Context, runID string, step Step) error {
	stepType := step.Type
	if stepType == "" {
		stepType = models.StepTypeCustom
	}
	req := addStepRequest{
		StepType:   stepType,
		Name:       step.Name,
		Input:      step.Input,
		Output:     step.Output,
		MetaData:   step.MetaData,
		Error:      step.Error,
		TokensUsed: step.TokensUsed,
		LatencyMs:  step.LatencyMs,
		StartedAt:  step.StartedAt,
		EndedAt:    step.EndedAt,
	}
	return t.silence(t.post(ctx, http.MethodPost, "/api/ingest/run/"+runID+"/step", req, nil))
}

// EndRun marks the current run finished with the given status and clears the
// tracked id.
func (t *Tracker) EndRun(ctx context.Context, status string, output, errDoc models.Document) error {
	if t.currentRunID == "" {
		return fmt.Errorf("no active run")
	}
	if err := t.EndRunByID(ctx, t.currentRunID, status, output, errDoc); err != nil {
		return err
	}
	t.currentRunID = ""
	return nil
}

// EndRunByID marks a specific run finished.
func (t *Tracker) EndRunByID(ctx context.Context, runID, status string, output, errDoc models.Document) error {
	now := time.Now().UTC()
	req := updateRunRequest{
		Status:  status,
		Output:  output,
		Error:   errDoc,
		EndedAt: &now,
	}
	return t.silence(t.post(ctx, http.MethodPatch, "/api/ingest/run/"+runID, req, nil))
}

// CurrentRunID returns the id of the run in progress, or "".
func (t *Tracker) CurrentRunID() string {
	return t.currentRunID
}

func (t *Tracker) silence(err error) error {
	if err == nil || !t.failSilently {
		return err
	}
	if api.IsUnauthorized(err) {
		return err
	}
	log.Printf("[tracker] submission failed: %v", err)
	return nil
}

func (t *Tracker) post(ctx context.Context, method, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(keyHeader, t.apiKey)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("invalid api key: %w", &api.Error{StatusCode: resp.StatusCode})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return apiError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func apiError(statusCode int, body []byte) error {
	var envelope struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &envelope)
	return &api.Error{StatusCode: statusCode, Detail: envelope.Detail}
}
