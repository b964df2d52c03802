package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"smartroom/internal/device"
	"smartroom/internal/logger"
	"smartroom/internal/models"
)

// Display layout of the 16x2 LCD.
const (
	timeRow, timeCol       = 0, 0
	dateRow, dateCol       = 1, 0
	curtainRow, curtainCol = 0, 13
	lampRow, lampCol       = 1, 12
)

const (
	indicatorOpen   = "ON "
	indicatorClosed = "OFF"
)

const (
	// DefaultFullCycles is the gross travel of the curtain in full cycles.
	DefaultFullCycles = 9
	bootLampDuty      = 50
	maxDuty           = 100
	yearBase          = 2000
)

// fixedWeekday is written to the RTC on "set time"; the console grammar
// has no weekday field.
const fixedWeekday = models.Sunday

// Room runs the actions against the room's hardware. Only the main loop
// calls it.
type Room struct {
	display device.Display
	rtc     device.RTC
	pwm     device.PWM
	seq     *Sequencer
	out     Console
	log     *logger.Logger

	fullCycles int
	curtain    models.CurtainState
	lampDuty   int
	clock      models.ClockSnapshot
	clockOK    bool
}

func NewRoom(display device.Display, rtc device.RTC, pwm device.PWM, seq *Sequencer, out Console, log *logger.Logger, fullCycles int) *Room {
	if log == nil {
		log = logger.Nop()
	}
	return &Room{
		display:    display,
		rtc:        rtc,
		pwm:        pwm,
		seq:        seq,
		out:        out,
		log:        log,
		fullCycles: fullCycles,
		curtain:    models.CurtainClosed,
	}
}

func (r *Room) Curtain() models.CurtainState { return r.curtain }

func (r *Room) LampDuty() int { return r.lampDuty }

// Boot puts the outputs in their power-on state, optionally seeds the RTC
// from "HH:MM:SS MM/DD/YY", draws the first screen and greets the console.
func (r *Room) Boot(seed string) error {
	var errs []string
	if err := r.applyLamp(bootLampDuty); err != nil {
		errs = append(errs, err.Error())
	}
	r.write(curtainRow, curtainCol, indicatorClosed)

	if seed != "" {
		f := strings.Fields(seed)
		if len(f) != 2 {
			errs = append(errs, fmt.Sprintf("rtc seed %q: %v", seed, ErrInvalidFormat))
		} else if c, err := ParseClock(f[0], f[1]); err != nil {
			errs = append(errs, fmt.Sprintf("rtc seed %q: %v", seed, err))
		} else if err := r.rtc.Set(c); err != nil {
			errs = append(errs, fmt.Sprintf("seed rtc: %v", err))
		}
	}
	_ = r.RefreshDisplay()

	r.out.Send(msgGreeting)
	r.out.Send(msgPrompt)

	if len(errs) > 0 {
		return fmt.Errorf("boot: %s", strings.Join(errs, "; "))
	}
	return nil
}

// SetTime commits a console-supplied time and date to the RTC.
func (r *Room) SetTime(timeTok, dateTok string) error {
	c, err := ParseClock(timeTok, dateTok)
	if err != nil {
		r.out.Send(msgInvalidFormat)
		return err
	}
	c.Weekday = fixedWeekday

	if err := r.rtc.Set(c); err != nil {
		// Not reported to the operator; the next refresh shows the RTC's view.
		r.log.Errorw("rtc_set_failed", "err", err)
	}
	_ = r.RefreshDisplay()
	r.out.Send(msgDone)
	return nil
}

// SetLamp validates a percentage and drives the lamp to it.
func (r *Room) SetLamp(tok string) error {
	duty, err := strconv.Atoi(tok)
	if err != nil {
		r.out.Send(msgError)
		return fmt.Errorf("%w: lamp value %q", ErrParse, tok)
	}
	if duty < 0 || duty > maxDuty {
		r.out.Send(msgRange)
		return fmt.Errorf("%w: lamp duty %d not in [0,%d]", ErrRange, duty, maxDuty)
	}
	if err := r.applyLamp(duty); err != nil {
		r.log.Errorw("pwm_set_failed", "err", err, "duty", duty)
	}
	r.out.Send(msgDone)
	return nil
}

func (r *Room) applyLamp(duty int) error {
	err := r.pwm.SetCompare(DutyToCompare(duty))
	r.lampDuty = duty
	r.write(lampRow, lampCol, fmt.Sprintf("%3d%%", duty))
	return err
}

// OpenCurtain moves the curtain to open unless it already is.
func (r *Room) OpenCurtain() error {
	if r.curtain == models.CurtainOpen {
		r.out.Send(msgAlreadyOpen)
		return nil
	}
	r.out.Send(msgOpening)
	r.log.Infow("curtain_moving", "to", models.CurtainOpen.String(), "busy", r.seq.Duration(r.fullCycles, 1))
	if err := r.seq.Full(r.fullCycles, CW); err != nil {
		return r.motorFault(err)
	}
	if err := r.seq.Partial(1, CW); err != nil {
		return r.motorFault(err)
	}
	r.write(curtainRow, curtainCol, indicatorOpen)
	r.curtain = models.CurtainOpen
	r.out.Send(msgDone)
	return nil
}

// CloseCurtain retraces OpenCurtain in reverse.
func (r *Room) CloseCurtain() error {
	if r.curtain == models.CurtainClosed {
		r.out.Send(msgAlreadyClosed)
		return nil
	}
	r.out.Send(msgClosing)
	r.log.Infow("curtain_moving", "to", models.CurtainClosed.String(), "busy", r.seq.Duration(r.fullCycles, 1))
	if err := r.seq.Partial(1, CCW); err != nil {
		return r.motorFault(err)
	}
	if err := r.seq.Full(r.fullCycles, CCW); err != nil {
		return r.motorFault(err)
	}
	r.write(curtainRow, curtainCol, indicatorClosed)
	r.curtain = models.CurtainClosed
	r.out.Send(msgDone)
	return nil
}

func (r *Room) motorFault(err error) error {
	r.out.Send(msgMotorFault)
	r.log.Errorw("curtain_motor_failed", "err", err, "state", r.curtain.String())
	return err
}

func (r *Room) Help() {
	for _, l := range helpText {
		r.out.Send(l)
	}
}

// RefreshDisplay redraws time and date from the RTC. On an RTC fault the
// screen is left untouched.
func (r *Room) RefreshDisplay() error {
	c, err := r.rtc.Get()
	if err != nil {
		r.clockOK = false
		r.log.Debugw("rtc_read_failed", "err", err)
		return fmt.Errorf("%w: rtc read: %v", ErrDeviceFault, err)
	}
	r.clock, r.clockOK = c, true
	r.write(timeRow, timeCol, c.TimeText())
	r.write(dateRow, dateCol, c.DateText())
	return nil
}

// Snapshot describes the room for the journal.
func (r *Room) Snapshot(loggedIn bool) models.RoomState {
	st := models.RoomState{
		Curtain:  r.curtain.String(),
		LampDuty: r.lampDuty,
		LoggedIn: loggedIn,
	}
	if r.clockOK {
		st.Clock = r.clock.TimeText() + " " + r.clock.DateText()
	}
	return st
}

func (r *Room) write(row, col int, text string) {
	if err := r.display.Write(row, col, text); err != nil {
		r.log.Debugw("display_write_failed", "err", err, "row", row, "col", col)
	}
}

// DutyToCompare maps a duty percentage onto the 8-bit compare register,
// rounding down.
func DutyToCompare(duty int) uint8 {
	return uint8(duty * 255 / maxDuty)
}

// ParseClock parses "HH:MM:SS" and "MM/DD/YY". Each field must be one or
// two digits and hold a value the RTC can store; the calendar day must
// exist in that month. Weekday is left zero.
func ParseClock(timeTok, dateTok string) (models.ClockSnapshot, error) {
	t, err := splitFields(timeTok, ":")
	if err != nil {
		return models.ClockSnapshot{}, fmt.Errorf("%w: time %q: %v", ErrInvalidFormat, timeTok, err)
	}
	d, err := splitFields(dateTok, "/")
	if err != nil {
		return models.ClockSnapshot{}, fmt.Errorf("%w: date %q: %v", ErrInvalidFormat, dateTok, err)
	}
	c := models.ClockSnapshot{
		Hour:   t[0],
		Minute: t[1],
		Second: t[2],
		Month:  d[0],
		Day:    d[1],
		Year:   d[2] + yearBase,
	}
	if err := checkClock(c); err != nil {
		return models.ClockSnapshot{}, fmt.Errorf("%w: %s %s: %v", ErrInvalidFormat, timeTok, dateTok, err)
	}
	return c, nil
}

// checkClock rejects fields time.Date would otherwise roll over.
func checkClock(c models.ClockSnapshot) error {
	switch {
	case c.Hour > 23:
		return fmt.Errorf("hour %d out of range", c.Hour)
	case c.Minute > 59:
		return fmt.Errorf("minute %d out of range", c.Minute)
	case c.Second > 59:
		return fmt.Errorf("second %d out of range", c.Second)
	case c.Month < 1 || c.Month > 12:
		return fmt.Errorf("month %d out of range", c.Month)
	}
	days := time.Date(c.Year, time.Month(c.Month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if c.Day < 1 || c.Day > days {
		return fmt.Errorf("day %d out of range for month %d", c.Day, c.Month)
	}
	return nil
}

func splitFields(s, sep string) ([3]int, error) {
	var out [3]int
	parts := strings.Split(s, sep)
	if len(parts) != len(out) {
		return out, fmt.Errorf("want 3 fields separated by %q, got %d", sep, len(parts))
	}
	for i, p := range parts {
		if len(p) < 1 || len(p) > 2 {
			return out, fmt.Errorf("field %d: want 1 or 2 digits", i+1)
		}
		for j := 0; j < len(p); j++ {
			if p[j] < '0' || p[j] > '9' {
				return out, fmt.Errorf("field %d: not numeric", i+1)
			}
		}
		out[i], _ = strconv.Atoi(p)
	}
	return out, nil
}
