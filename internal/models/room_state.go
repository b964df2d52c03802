package models

// CurtainState is the last position the curtain sequencer drove to.
type CurtainState int

const (
	CurtainClosed CurtainState = iota
	CurtainOpen
)

func (s CurtainState) String() string {
	if s == CurtainOpen {
		return "OPEN"
	}
	return "CLOSED"
}

// RoomState is a point-in-time view of the node, attached to heartbeat events.
type RoomState struct {
	Curtain  string `json:"curtain"`   // OPEN | CLOSED
	LampDuty int    `json:"lamp_duty"` // percent 0..100
	LoggedIn bool   `json:"logged_in"`
	Clock    string `json:"clock,omitempty"` // "HH:MM:SS MM/DD/YY", empty on RTC fault
}
