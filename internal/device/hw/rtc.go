package hw

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ds3231"

	"smartroom/internal/device"
	"smartroom/internal/models"
)

var errRTCNotFound = errors.New("rtc not responding")

// RTC drives a DS3231 or the register-compatible DS3232.
type RTC struct {
	dev ds3231.Device
}

var _ device.RTC = (*RTC)(nil)

func NewRTC(bus drivers.I2C, addr uint8) (*RTC, error) {
	dev := ds3231.New(bus)
	if addr != 0 {
		dev.Address = uint16(addr)
	}
	if !dev.Configure() {
		return nil, fmt.Errorf("configure rtc at 0x%02X: %w", addr, errRTCNotFound)
	}
	if !dev.IsRunning() {
		if err := dev.SetRunning(true); err != nil {
			return nil, fmt.Errorf("start rtc oscillator: %w", err)
		}
	}
	return &RTC{dev: dev}, nil
}

func (r *RTC) Set(c models.ClockSnapshot) error {
	return r.dev.SetTime(device.TimeFromSnapshot(c))
}

func (r *RTC) Get() (models.ClockSnapshot, error) {
	t, err := r.dev.ReadTime()
	if err != nil {
		return models.ClockSnapshot{}, err
	}
	return device.SnapshotFromTime(t), nil
}
