package models

import "time"

// APIKey represents an ingest credential as returned by list endpoints.
// The full secret is never present here, only the prefix.
type APIKey struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	KeyPrefix  string     `json:"key_prefix"`
	Name       *string    `json:"name"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at"`
}

// Revoked reports whether the key has been revoked. A set revoked_at is
// never cleared by the server.
func (k *APIKey) Revoked() bool {
	return k.RevokedAt != nil
}

// CreateAPIKeyRequest is the POST /api/projects/{id}/api-keys request body.
type CreateAPIKeyRequest struct {
	Name *string `json:"name,omitempty"`
}

// CreatedAPIKey is the creation response. Key carries the full secret and is
// returned exactly once; subsequent listings expose only KeyPrefix.
type CreatedAPIKey struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Key       string    `json:"key"`
	KeyPrefix string    `json:"key_prefix"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
