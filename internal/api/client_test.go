package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentscope-io/agentscope/internal/models"
)

// fakeSessions is an in-memory SessionStore for client tests.
type fakeSessions struct {
	token       string
	logoutCalls int
}

func (f *fakeSessions) Token() string { return f.token }

func (f *fakeSessions) Logout() error {
	f.logoutCalls++
	f.token = ""
	return nil
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "tok123"}
	client := NewClient(srv.URL, sessions)

	if _, err := client.ListProjects(context.Background()); err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
}

func TestNoAuthorizationHeaderWhenLoggedOut(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{"access_token":"t","token_type":"bearer","user":{"id":"u1","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &fakeSessions{})

	_, err := client.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if hasAuth {
		t.Error("Authorization header sent on unauthenticated request")
	}
}

func TestUnauthorizedClearsSessionAndFiresHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "stale"}
	hookCalls := 0
	client := NewClient(srv.URL, sessions, WithUnauthorizedHook(func() {
		hookCalls++
	}))

	_, err := client.ListProjects(context.Background())
	if err == nil {
		t.Fatal("ListProjects() error = nil, want 401")
	}
	if !IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
	if sessions.logoutCalls != 1 {
		t.Errorf("logout calls = %d, want 1", sessions.logoutCalls)
	}
	if sessions.token != "" {
		t.Errorf("token = %q, want cleared", sessions.token)
	}
	if hookCalls != 1 {
		t.Errorf("hook calls = %d, want 1", hookCalls)
	}
}

func TestUnauthorizedWithoutHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sessions := &fakeSessions{token: "stale"}
	client := NewClient(srv.URL, sessions)

	// No hook registered; the teardown must still happen without panicking.
	_, err := client.ListProjects(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized(%v) = false, want true", err)
	}
	if sessions.logoutCalls != 1 {
		t.Errorf("logout calls = %d, want 1", sessions.logoutCalls)
	}
}

func TestErrorDetailDecoded(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{
			name:       "string detail",
			status:     http.StatusNotFound,
			body:       `{"detail":"Project not found"}`,
			wantDetail: "Project not found",
		},
		{
			name:       "structured detail kept raw",
			status:     http.StatusUnprocessableEntity,
			body:       `{"detail":[{"loc":["body","email"],"msg":"field required"}]}`,
			wantDetail: `[{"loc":["body","email"],"msg":"field required"}]`,
		},
		{
			name:       "non-json body",
			status:     http.StatusBadGateway,
			body:       "<html>bad gateway</html>",
			wantDetail: "",
		},
		{
			name:       "empty body",
			status:     http.StatusInternalServerError,
			body:       "",
			wantDetail: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, &fakeSessions{token: "tok"})
			_, err := client.GetRun(context.Background(), "r1")
			if err == nil {
				t.Fatal("GetRun() error = nil, want API error")
			}
			if !IsStatus(err, tt.status) {
				t.Errorf("IsStatus(err, %d) = false", tt.status)
			}
			apiErr, ok := err.(*Error)
			if !ok {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if apiErr.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", apiErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestListRunsQueryParameters(t *testing.T) {
	tests := []struct {
		name  string
		query models.RunsQuery
		want  map[string]string
		omit  []string
	}{
		{
			name:  "all fields",
			query: models.RunsQuery{ProjectID: "p1", Status: "failed", Limit: 10, Offset: 20},
			want:  map[string]string{"project_id": "p1", "status": "failed", "limit": "10", "offset": "20"},
		},
		{
			name:  "zero values omitted",
			query: models.RunsQuery{ProjectID: "p1"},
			want:  map[string]string{"project_id": "p1"},
			omit:  []string{"status", "limit", "offset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery map[string][]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query()
				w.Write([]byte("[]"))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, &fakeSessions{token: "tok"})
			if _, err := client.ListRuns(context.Background(), tt.query); err != nil {
				t.Fatalf("ListRuns() error = %v", err)
			}

			for k, v := range tt.want {
				if got := gotQuery[k]; len(got) != 1 || got[0] != v {
					t.Errorf("query[%q] = %v, want %q", k, got, v)
				}
			}
			for _, k := range tt.omit {
				if _, ok := gotQuery[k]; ok {
					t.Errorf("query[%q] present, want omitted", k)
				}
			}
		})
	}
}

func TestNoContentResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &fakeSessions{token: "tok"})
	if err := client.DeleteProject(context.Background(), "p1"); err != nil {
		t.Fatalf("DeleteProject() error = %v", err)
	}
}

func TestAPIKeySecretOnlyInCreateResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Write([]byte(`{"id":"k1","project_id":"p1","key":"ask_fullsecret1234567890","key_prefix":"ask_full","name":null,"created_at":"2026-01-01T00:00:00Z"}`))
		default:
			// A misbehaving server leaking the secret in a listing.
			w.Write([]byte(`[{"id":"k1","project_id":"p1","key":"ask_fullsecret1234567890","key_prefix":"ask_full","name":null,"last_used_at":null,"created_at":"2026-01-01T00:00:00Z","revoked_at":null}]`))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &fakeSessions{token: "tok"})

	created, err := client.CreateAPIKey(context.Background(), "p1", models.CreateAPIKeyRequest{})
	if err != nil {
		t.Fatalf("CreateAPIKey() error = %v", err)
	}
	if created.Key != "ask_fullsecret1234567890" {
		t.Errorf("created.Key = %q, want the one-time full secret", created.Key)
	}

	keys, err := client.ListAPIKeys(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListAPIKeys() error = %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("keys = %d, want 1", len(keys))
	}
	if keys[0].KeyPrefix != "ask_full" {
		t.Errorf("KeyPrefix = %q, want ask_full", keys[0].KeyPrefix)
	}
	// Listed keys carry the prefix only. Even a leaked secret in the wire
	// payload is dropped and never re-surfaces on re-encoding.
	round, err := json.Marshal(keys[0])
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(round), "fullsecret") {
		t.Errorf("listed key re-encodes the secret: %s", round)
	}
	if !strings.Contains(string(round), `"key_prefix":"ask_full"`) {
		t.Errorf("listed key lost the prefix: %s", round)
	}
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	client := NewClient("http://localhost:8000/", &fakeSessions{})
	if got := client.BaseURL(); got != "http://localhost:8000" {
		t.Errorf("BaseURL() = %q, want trimmed", got)
	}
}
