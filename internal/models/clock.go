package models

import "fmt"

// Weekday numbering follows the RTC register convention (1 = Sunday).
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// ClockSnapshot mirrors the RTC's current value. It is a read-through copy,
// never the source of truth.
type ClockSnapshot struct {
	Hour    int     `json:"hour"`
	Minute  int     `json:"minute"`
	Second  int     `json:"second"`
	Weekday Weekday `json:"weekday"`
	Day     int     `json:"day"`
	Month   int     `json:"month"`
	Year    int     `json:"year"` // full year, e.g. 2025
}

// TimeText renders the snapshot as HH:MM:SS.
func (c ClockSnapshot) TimeText() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// DateText renders the snapshot as MM/DD/YY, the same layout "set time" accepts.
func (c ClockSnapshot) DateText() string {
	return fmt.Sprintf("%02d/%02d/%02d", c.Month, c.Day, c.Year%100)
}
