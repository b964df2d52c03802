package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"smartroom/internal/device"
	"smartroom/internal/models"
)

// fakeConsole collects every reply in order.
type fakeConsole struct {
	mu   sync.Mutex
	sent []string
}

func (c *fakeConsole) Send(text string) {
	c.mu.Lock()
	c.sent = append(c.sent, text)
	c.mu.Unlock()
}

func (c *fakeConsole) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.sent, "")
}

func (c *fakeConsole) Count(msg string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, s := range c.sent {
		if s == msg {
			n++
		}
	}
	return n
}

func (c *fakeConsole) Reset() {
	c.mu.Lock()
	c.sent = nil
	c.mu.Unlock()
}

type recordedEvent struct {
	Type        string
	Description string
	Metadata    map[string]any
}

type fakeRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *fakeRecorder) Record(eventType, description string, metadata map[string]any) {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{eventType, description, metadata})
	r.mu.Unlock()
}

func (r *fakeRecorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *fakeRecorder) Has(typ string) bool {
	for _, t := range r.Types() {
		if t == typ {
			return true
		}
	}
	return false
}

// failingMotor fails on the nth phase write (1-based).
type failingMotor struct {
	failAt int
	calls  int
}

func (m *failingMotor) DrivePhase(byte) error {
	m.calls++
	if m.calls == m.failAt {
		return errMotorStalled
	}
	return nil
}

var errMotorStalled = errors.New("coil driver not responding")

var testEpoch = time.Date(2025, time.May, 12, 9, 30, 55, 0, time.UTC)

func frozenNow() time.Time { return testEpoch }

type testRig struct {
	node    *Node
	out     *fakeConsole
	journal *fakeRecorder
	display *device.SimDisplay
	rtc     *device.SimRTC
	motor   *device.SimMotor
	pwm     *device.SimPWM
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	r := &testRig{
		out:     &fakeConsole{},
		journal: &fakeRecorder{},
		display: device.NewSimDisplay(nil),
		rtc:     device.NewSimRTC(frozenNow),
		motor:   &device.SimMotor{},
		pwm:     &device.SimPWM{},
	}
	hw := Hardware{Display: r.display, RTC: r.rtc, Motor: r.motor, PWM: r.pwm}
	r.node = NewNode(hw, r.out, NewPlainVerifier("1234"), r.journal, nil, Options{
		Sleep: func(time.Duration) {},
	})
	return r
}

// typeLine feeds s one character at a time, draining the inbox after
// each, the way the main loop does.
func (r *testRig) typeLine(s string) {
	for i := 0; i < len(s); i++ {
		r.node.Controller.HandleChar(s[i])
		r.node.Controller.RunPending()
	}
}

func (r *testRig) login(t *testing.T) {
	t.Helper()
	r.typeLine("1234\r")
	if !r.node.Session.LoggedIn() {
		t.Fatalf("login failed, console: %q", r.out.Text())
	}
	r.out.Reset()
}

func (r *testRig) clock(t *testing.T) models.ClockSnapshot {
	t.Helper()
	c, err := r.rtc.Get()
	if err != nil {
		t.Fatalf("rtc get: %v", err)
	}
	return c
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}
