package hw

import (
	"fmt"
	"path"
	"strconv"

	"github.com/spf13/afero"

	"smartroom/internal/device"
)

// SysfsPWM drives one exported channel under /sys/class/pwm.
type SysfsPWM struct {
	fs       afero.Fs
	dir      string
	periodNs int64
}

var _ device.PWM = (*SysfsPWM)(nil)

// NewSysfsPWM programs the period and enables the channel at dir
// (e.g. /sys/class/pwm/pwmchip0/pwm0). The channel must already be exported.
func NewSysfsPWM(fs afero.Fs, dir string, periodNs int64) (*SysfsPWM, error) {
	if periodNs <= 0 {
		return nil, fmt.Errorf("pwm period must be > 0, got %d", periodNs)
	}
	p := &SysfsPWM{fs: fs, dir: dir, periodNs: periodNs}
	if err := p.write("duty_cycle", 0); err != nil {
		return nil, err
	}
	if err := p.write("period", periodNs); err != nil {
		return nil, err
	}
	if err := p.write("enable", 1); err != nil {
		return nil, err
	}
	return p, nil
}

// SetCompare maps the 8-bit compare value onto the channel period.
func (p *SysfsPWM) SetCompare(v uint8) error {
	return p.write("duty_cycle", p.periodNs*int64(v)/255)
}

func (p *SysfsPWM) write(attr string, v int64) error {
	name := path.Join(p.dir, attr)
	if err := afero.WriteFile(p.fs, name, []byte(strconv.FormatInt(v, 10)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
