package service

import (
	"time"

	"smartroom/internal/device"
	"smartroom/internal/logger"
)

// Console receives operator-facing text.
type Console interface {
	Send(text string)
}

// Recorder appends entries to the event journal. Implementations must not
// block the main loop for long and must swallow their own failures.
type Recorder interface {
	Record(eventType, description string, metadata map[string]any)
}

// NopRecorder drops every entry; used when the journal is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(string, string, map[string]any) {}

// Hardware bundles the collaborators the node drives.
type Hardware struct {
	Display device.Display
	RTC     device.RTC
	Motor   device.Motor
	PWM     device.PWM
}

// Options tune the node; zero values select the stock behavior.
type Options struct {
	TimeoutTicks int
	FullCycles   int
	PhaseDelay   time.Duration
	// Sleep replaces time.Sleep for the curtain settle delay.
	Sleep func(time.Duration)
}

// Node aggregates every component of the controller, wired once in main.
type Node struct {
	Ticks      *TickSource
	Inbox      *Inbox
	Session    *Session
	Dispatcher *Dispatcher
	Room       *Room
	Controller *Controller
}

func NewNode(hw Hardware, out Console, verifier PasswordVerifier, journal Recorder, log *logger.Logger, opts Options) *Node {
	if log == nil {
		log = logger.Nop()
	}
	if journal == nil {
		journal = NopRecorder{}
	}
	if opts.FullCycles == 0 {
		opts.FullCycles = DefaultFullCycles
	}

	ticks := NewTickSource()
	inbox := &Inbox{}
	dispatcher := NewDispatcher(inbox, out)
	session := NewSession(verifier, dispatcher, out, journal, log, opts.TimeoutTicks)
	seq := NewSequencer(hw.Motor, opts.PhaseDelay, opts.Sleep)
	room := NewRoom(hw.Display, hw.RTC, hw.PWM, seq, out, log, opts.FullCycles)

	return &Node{
		Ticks:      ticks,
		Inbox:      inbox,
		Session:    session,
		Dispatcher: dispatcher,
		Room:       room,
		Controller: NewController(session, inbox, room, ticks, journal, log),
	}
}
