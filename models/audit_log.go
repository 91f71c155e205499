package models

import "time"

// Audit results
const (
	AuditSuccess = "SUCCESS"
	AuditFail    = "FAIL"
)

// AuditEntry represents a single immutable record of a privileged action.
// ActorID is nil for unauthenticated events such as failed logins; it is
// stored as NULL, never defaulted to a sentinel identity.
type AuditEntry struct {
	ID           int64     `json:"id"`
	ActorID      *int      `json:"actor_id"`
	ActorIP      string    `json:"actor_ip"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type,omitempty"`
	ResourceID   string    `json:"resource_id,omitempty"`
	Details      string    `json:"details,omitempty"`
	Result       string    `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}
