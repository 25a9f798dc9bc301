package models

import "time"

// Blog event types.
const (
	EventBlogCreated = "CREATED"
	EventBlogDeleted = "DELETED"
)

// BlogEvent is a single entry in the notification feed, appended whenever
// a blog is created or deleted.
type BlogEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CREATED | DELETED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
