//go:build linux

// Package i2cbus exposes a Linux /dev/i2c-N character device as a
// tinygo drivers.I2C bus so the stock peripheral drivers run on a host.
package i2cbus

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"tinygo.org/x/drivers"
)

// ioctl request selecting the target address (linux/i2c-dev.h).
const i2cSlave = 0x0703

var _ drivers.I2C = (*Bus)(nil)

type Bus struct {
	mu   sync.Mutex
	f    *os.File
	addr uint16
	set  bool
}

// Open opens the adapter device, e.g. /dev/i2c-1.
func Open(path string) (*Bus, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %s: %w", path, err)
	}
	return &Bus{f: f}, nil
}

// Tx writes w then reads len(r) bytes from the device at addr.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.set || b.addr != addr {
		if err := unix.IoctlSetInt(int(b.f.Fd()), i2cSlave, int(addr)); err != nil {
			return fmt.Errorf("select i2c address 0x%02X: %w", addr, err)
		}
		b.addr, b.set = addr, true
	}
	if len(w) > 0 {
		if _, err := b.f.Write(w); err != nil {
			return fmt.Errorf("i2c write to 0x%02X: %w", addr, err)
		}
	}
	if len(r) > 0 {
		if _, err := b.f.Read(r); err != nil {
			return fmt.Errorf("i2c read from 0x%02X: %w", addr, err)
		}
	}
	return nil
}

func (b *Bus) Close() error {
	return b.f.Close()
}
