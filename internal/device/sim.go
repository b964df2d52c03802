package device

import (
	"errors"
	"strings"
	"sync"
	"time"

	"smartroom/internal/logger"
	"smartroom/internal/models"
)

var errOutOfBounds = errors.New("display position out of bounds")

// SimDisplay keeps a 16x2 character grid in memory.
type SimDisplay struct {
	mu   sync.Mutex
	rows [DisplayRows][]byte
	log  *logger.Logger
}

func NewSimDisplay(log *logger.Logger) *SimDisplay {
	if log == nil {
		log = logger.Nop()
	}
	d := &SimDisplay{log: log}
	for i := range d.rows {
		d.rows[i] = []byte(strings.Repeat(" ", DisplayCols))
	}
	return d
}

// Write places text at (row, col), clipping at the right edge like the LCD.
func (d *SimDisplay) Write(row, col int, text string) error {
	if row < 0 || row >= DisplayRows || col < 0 || col >= DisplayCols {
		return errOutOfBounds
	}
	d.mu.Lock()
	copy(d.rows[row][col:], text)
	line := string(d.rows[row])
	d.mu.Unlock()

	d.log.Debugw("display_write", "row", row, "line", line)
	return nil
}

// Row returns the current content of a row.
func (d *SimDisplay) Row(row int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return string(d.rows[row])
}

// SimRTC runs a free-running clock anchored at the last Set.
type SimRTC struct {
	mu    sync.Mutex
	base  time.Time
	setAt time.Time
	now   func() time.Time
	Fault error // when non-nil, Get fails with it
}

func NewSimRTC(now func() time.Time) *SimRTC {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &SimRTC{base: t, setAt: t, now: now}
}

func (r *SimRTC) Set(c models.ClockSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = TimeFromSnapshot(c)
	r.setAt = r.now()
	return nil
}

func (r *SimRTC) Get() (models.ClockSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fault != nil {
		return models.ClockSnapshot{}, r.Fault
	}
	t := r.base.Add(r.now().Sub(r.setAt).Truncate(time.Second))
	return SnapshotFromTime(t), nil
}

// SimMotor records coil writes.
type SimMotor struct {
	mu     sync.Mutex
	phases []byte
}

func (m *SimMotor) DrivePhase(pattern byte) error {
	m.mu.Lock()
	m.phases = append(m.phases, pattern)
	m.mu.Unlock()
	return nil
}

// Phases returns a copy of every pattern driven so far.
func (m *SimMotor) Phases() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.phases...)
}

// SimPWM records the last compare value.
type SimPWM struct {
	mu      sync.Mutex
	compare uint8
	writes  int
}

func (p *SimPWM) SetCompare(v uint8) error {
	p.mu.Lock()
	p.compare = v
	p.writes++
	p.mu.Unlock()
	return nil
}

func (p *SimPWM) Compare() (value uint8, writes int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.compare, p.writes
}

// SnapshotFromTime converts a wall-clock time to the RTC field layout.
func SnapshotFromTime(t time.Time) models.ClockSnapshot {
	return models.ClockSnapshot{
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: models.Weekday(int(t.Weekday()) + 1),
		Day:     t.Day(),
		Month:   int(t.Month()),
		Year:    t.Year(),
	}
}

// TimeFromSnapshot is the inverse of SnapshotFromTime; Weekday is ignored.
func TimeFromSnapshot(c models.ClockSnapshot) time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}
