package models

import "time"

// Event types written to the journal.
const (
	EventLogin       = "LOGIN"
	EventLoginFailed = "LOGIN_FAILED"
	EventLogout      = "LOGOUT"
	EventCommand     = "COMMAND"
	EventError       = "ERROR"
	EventHeartbeat   = "HEARTBEAT"
)

// RoomEvent is a single journal entry.
type RoomEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // LOGIN | LOGIN_FAILED | LOGOUT | COMMAND | ERROR | HEARTBEAT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
