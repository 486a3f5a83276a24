// Package audit persists immutable change records for compliance.
package audit

import "time"

// Metadata captures request origin details stored alongside an event.
type Metadata struct {
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

// Event is one immutable audit record. Events are append-only; no update or
// delete path exists once a row is written.
type Event struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenantId"`
	ActorID   string         `json:"actorId"`
	Entity    string         `json:"entity"`
	EntityID  string         `json:"entityId"`
	Action    string         `json:"action"`
	Changes   map[string]any `json:"changes"`
	Metadata  Metadata       `json:"metadata"`
	CreatedAt time.Time      `json:"createdAt"`
}
