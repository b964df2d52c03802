package hw

import (
	"fmt"

	"tinygo.org/x/drivers"

	"smartroom/internal/device"
)

// ExpanderMotor drives the four curtain coils from the low nibble of a
// PCF8574 quasi-bidirectional port. Upper pins are held low.
type ExpanderMotor struct {
	bus  drivers.I2C
	addr uint16
}

var _ device.Motor = (*ExpanderMotor)(nil)

func NewExpanderMotor(bus drivers.I2C, addr uint8) *ExpanderMotor {
	return &ExpanderMotor{bus: bus, addr: uint16(addr)}
}

func (m *ExpanderMotor) DrivePhase(pattern byte) error {
	if err := m.bus.Tx(m.addr, []byte{pattern & 0x0F}, nil); err != nil {
		return fmt.Errorf("drive phase 0x%02X: %w", pattern, err)
	}
	return nil
}

// Release de-energizes all coils.
func (m *ExpanderMotor) Release() error {
	return m.DrivePhase(0)
}
