package tracker

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/agentscope-io/agentscope/internal/api"
	"github.com/agentscope-io/agentscope/internal/models"
)

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("http://localhost:8000", ""); err == nil {
		t.Error("New() with empty key error = nil, want error")
	}
}

func TestKeyHeaderSent(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Agentscope-Key")
		json.NewEncoder(w).Encode(models.Run{ID: "r1"})
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.StartRun(context.Background(), "my-agent", StartOptions{}); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if gotKey != "ask_secret" {
		t.Errorf("X-Agentscope-Key = %q, want ask_secret", gotKey)
	}
}

func TestRunLifecycle(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, call{method: r.Method, path: r.URL.Path, body: body})

		if r.Method == http.MethodPost && r.URL.Path == "/api/ingest/run" {
			json.NewEncoder(w).Encode(models.Run{ID: "r1", Status: models.RunStatusRunning})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_secret")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	input, _ := models.NewDocument(map[string]string{"prompt": "hi"})
	run, err := tr.StartRun(ctx, "my-agent", StartOptions{Input: input})
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if run.ID != "r1" || tr.CurrentRunID() != "r1" {
		t.Fatalf("run id = %q, CurrentRunID = %q, want r1", run.ID, tr.CurrentRunID())
	}

	tokens := 42
	if err := tr.AddStep(ctx, Step{Type: models.StepTypeLLMCall, Name: "plan", TokensUsed: &tokens}); err != nil {
		t.Fatalf("AddStep() error = %v", err)
	}

	output, _ := models.NewDocument(map[string]string{"answer": "done"})
	if err := tr.EndRun(ctx, models.RunStatusCompleted, output, nil); err != nil {
		t.Fatalf("EndRun() error = %v", err)
	}
	if tr.CurrentRunID() != "" {
		t.Errorf("CurrentRunID() = %q after EndRun, want empty", tr.CurrentRunID())
	}

	if len(calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(calls))
	}

	start := calls[0]
	if start.method != http.MethodPost || start.path != "/api/ingest/run" {
		t.Errorf("start = %s %s", start.method, start.path)
	}
	if start.body["agent_name"] != "my-agent" {
		t.Errorf("agent_name = %v", start.body["agent_name"])
	}
	if ext, _ := start.body["external_id"].(string); ext == "" {
		t.Error("external_id missing, want generated id")
	}

	step := calls[1]
	if step.method != http.MethodPost || step.path != "/api/ingest/run/r1/step" {
		t.Errorf("step = %s %s", step.method, step.path)
	}
	if step.body["step_type"] != models.StepTypeLLMCall {
		t.Errorf("step_type = %v", step.body["step_type"])
	}
	if step.body["tokens_used"] != float64(42) {
		t.Errorf("tokens_used = %v", step.body["tokens_used"])
	}

	end := calls[2]
	if end.method != http.MethodPatch || end.path != "/api/ingest/run/r1" {
		t.Errorf("end = %s %s", end.method, end.path)
	}
	if end.body["status"] != models.RunStatusCompleted {
		t.Errorf("status = %v", end.body["status"])
	}
	if end.body["ended_at"] == nil {
		t.Error("ended_at missing")
	}
}

func TestExternalIDPassedThrough(t *testing.T) {
	var gotExternal string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		gotExternal, _ = body["external_id"].(string)
		json.NewEncoder(w).Encode(models.Run{ID: "r1"})
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_secret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.StartRun(context.Background(), "agent", StartOptions{ExternalID: "job-77"}); err != nil {
		t.Fatal(err)
	}
	if gotExternal != "job-77" {
		t.Errorf("external_id = %q, want job-77", gotExternal)
	}
}

func TestStepWithoutRun(t *testing.T) {
	tr, err := New("http://localhost:8000", "ask_secret")
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.AddStep(context.Background(), Step{Name: "orphan"}); err == nil {
		t.Error("AddStep() without run error = nil, want error")
	}
	if err := tr.EndRun(context.Background(), models.RunStatusCompleted, nil, nil); err == nil {
		t.Error("EndRun() without run error = nil, want error")
	}
}

func TestInvalidKeyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid API key"}`))
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_wrong")
	if err != nil {
		t.Fatal(err)
	}
	_, err = tr.StartRun(context.Background(), "agent", StartOptions{})
	if err == nil {
		t.Fatal("StartRun() error = nil, want 401")
	}
	if !api.IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
}

func TestFailSilentlySwallowsServerErrors(t *testing.T) {
	log.SetOutput(io.Discard)
	defer log.SetOutput(os.Stderr)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"database unavailable"}`))
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_secret", WithFailSilently())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	run, err := tr.StartRun(ctx, "agent", StartOptions{})
	if err != nil {
		t.Fatalf("StartRun() error = %v, want swallowed", err)
	}
	if run != nil {
		t.Errorf("StartRun() run = %+v, want nil on failure", run)
	}
	if tr.CurrentRunID() != "" {
		t.Errorf("CurrentRunID() = %q, want empty after failed start", tr.CurrentRunID())
	}
	if err := tr.AddStepTo(ctx, "r1", Step{Name: "plan"}); err != nil {
		t.Errorf("AddStepTo() error = %v, want swallowed", err)
	}
	if err := tr.EndRunByID(ctx, "r1", models.RunStatusFailed, nil, nil); err != nil {
		t.Errorf("EndRunByID() error = %v, want swallowed", err)
	}
}

func TestFailSilentlyStillRejectsInvalidKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid API key"}`))
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_wrong", WithFailSilently())
	if err != nil {
		t.Fatal(err)
	}
	_, err = tr.StartRun(context.Background(), "agent", StartOptions{})
	if !api.IsUnauthorized(err) {
		t.Errorf("StartRun() error = %v, want 401 even when failing silently", err)
	}
}

func TestDefaultStepType(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		gotType, _ = body["step_type"].(string)
	}))
	defer srv.Close()

	tr, err := New(srv.URL, "ask_secret")
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.AddStepTo(context.Background(), "r1", Step{Name: "note"}); err != nil {
		t.Fatal(err)
	}
	if gotType != models.StepTypeCustom {
		t.Errorf("step_type = %q, want custom default", gotType)
	}
}
