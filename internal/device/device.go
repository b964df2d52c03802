// Package device holds the collaborator contracts the node drives: a
// character display, a real-time clock, the curtain motor coils and the
// lamp PWM. Hardware adapters live in device/hw; sim.go provides in-memory
// stand-ins for hosts without the peripherals.
package device

import "smartroom/internal/models"

// Display is write-only; there is no read-back.
type Display interface {
	Write(row, col int, text string) error
}

// RTC is the authoritative clock.
type RTC interface {
	Set(c models.ClockSnapshot) error
	Get() (models.ClockSnapshot, error)
}

// Motor energizes one coil pattern. The caller owns the inter-phase delay.
type Motor interface {
	DrivePhase(pattern byte) error
}

// PWM sets the lamp output compare value.
type PWM interface {
	SetCompare(v uint8) error
}

// Display geometry of the stock 16x2 LCD.
const (
	DisplayRows = 2
	DisplayCols = 16
)
