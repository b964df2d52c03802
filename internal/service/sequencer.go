package service

import (
	"fmt"
	"time"

	"smartroom/internal/device"
)

// Direction of curtain travel.
type Direction int

const (
	CW Direction = iota
	CCW
)

func (d Direction) String() string {
	if d == CCW {
		return "ccw"
	}
	return "cw"
}

// phaseTable is the coil energization order for CW travel.
var phaseTable = [4]byte{0x04, 0x02, 0x08, 0x01}

// partialPhases is the length of the fine-alignment cycle used against the
// end stop.
const partialPhases = 3

// DefaultPhaseDelay is the settle time after each coil write.
const DefaultPhaseDelay = 50 * time.Millisecond

// Sequencer steps the curtain motor. Every call is synchronous: it returns
// only after the last phase has settled.
type Sequencer struct {
	motor device.Motor
	delay time.Duration
	sleep func(time.Duration)
}

func NewSequencer(motor device.Motor, delay time.Duration, sleep func(time.Duration)) *Sequencer {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Sequencer{motor: motor, delay: delay, sleep: sleep}
}

// Full runs n complete 4-phase cycles.
func (s *Sequencer) Full(n int, dir Direction) error {
	return s.run(len(phaseTable), n, dir)
}

// Partial runs n 3-phase cycles.
func (s *Sequencer) Partial(n int, dir Direction) error {
	return s.run(partialPhases, n, dir)
}

func (s *Sequencer) run(phases, n int, dir Direction) error {
	for i := 0; i < n; i++ {
		for j := 0; j < phases; j++ {
			k := j
			if dir == CCW {
				k = phases - 1 - j
			}
			if err := s.motor.DrivePhase(phaseTable[k]); err != nil {
				return fmt.Errorf("%w: motor phase %d of cycle %d (%s): %v", ErrDeviceFault, k, i, dir, err)
			}
			s.sleep(s.delay)
		}
	}
	return nil
}

// Duration is how long n full plus m partial cycles keep the caller busy.
func (s *Sequencer) Duration(full, partial int) time.Duration {
	return time.Duration(full*len(phaseTable)+partial*partialPhases) * s.delay
}
