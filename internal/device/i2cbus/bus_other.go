//go:build !linux

package i2cbus

import (
	"errors"

	"tinygo.org/x/drivers"
)

var errUnsupported = errors.New("i2c bus: only supported on linux")

var _ drivers.I2C = (*Bus)(nil)

type Bus struct{}

func Open(path string) (*Bus, error) { return nil, errUnsupported }

func (b *Bus) Tx(addr uint16, w, r []byte) error { return errUnsupported }

func (b *Bus) Close() error { return nil }
