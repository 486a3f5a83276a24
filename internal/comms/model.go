// Package comms manages internal communication posts, their required
// recipients and acknowledgements.
package comms

import "time"

// Post is a tenant-scoped communication addressed to one or more teams.
type Post struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	AuthorID   string    `json:"authorId"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	RequireAck bool      `json:"requireAck"`
	TeamIDs    []string  `json:"teamIds"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Recipient ties a user to a post requiring their acknowledgement.
type Recipient struct {
	PostID         string     `json:"postId"`
	UserID         string     `json:"userId"`
	TenantID       string     `json:"tenantId"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
}

// AckSummary aggregates acknowledgement progress for a post.
type AckSummary struct {
	PostID       string `json:"postId"`
	Required     int    `json:"required"`
	Acknowledged int    `json:"acknowledged"`
}

// AckItem is one outstanding or completed acknowledgement for a user.
type AckItem struct {
	PostID         string     `json:"postId"`
	Title          string     `json:"title"`
	RequireAck     bool       `json:"requireAck"`
	Acknowledged   bool       `json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	PostedAt       time.Time  `json:"postedAt"`
}
