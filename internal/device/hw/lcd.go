// Package hw adapts real peripherals on an I2C bus to the device
// contracts: an HD44780 LCD behind a PCF8574 backpack, a DS3231/DS3232
// RTC, a PCF8574 expander driving the curtain motor coils, and a Linux
// sysfs PWM channel for the lamp.
package hw

import (
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"smartroom/internal/device"
)

type LCD struct {
	dev hd44780i2c.Device
}

var _ device.Display = (*LCD)(nil)

func NewLCD(bus drivers.I2C, addr uint8) (*LCD, error) {
	dev := hd44780i2c.New(bus, addr)
	if err := dev.Configure(hd44780i2c.Config{
		Width:  device.DisplayCols,
		Height: device.DisplayRows,
	}); err != nil {
		return nil, fmt.Errorf("configure lcd at 0x%02X: %w", addr, err)
	}
	dev.ClearDisplay()
	return &LCD{dev: dev}, nil
}

func (l *LCD) Write(row, col int, text string) error {
	if row < 0 || row >= device.DisplayRows || col < 0 || col >= device.DisplayCols {
		return fmt.Errorf("lcd position %d,%d out of bounds", row, col)
	}
	if n := device.DisplayCols - col; len(text) > n {
		text = text[:n]
	}
	l.dev.SetCursor(uint8(col), uint8(row))
	l.dev.Print([]byte(text))
	return nil
}
