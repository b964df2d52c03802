package service

import (
	"context"
	"errors"

	"smartroom/internal/logger"
	"smartroom/internal/models"
)

// Controller is the main loop. It is the only goroutine that runs
// actions or touches the hardware; producers reach it through the
// character channel, the tick source and the inbox.
type Controller struct {
	session *Session
	inbox   *Inbox
	room    *Room
	ticks   *TickSource
	journal Recorder
	log     *logger.Logger

	refreshDue bool
	minuteDue  bool
}

func NewController(session *Session, inbox *Inbox, room *Room, ticks *TickSource, journal Recorder, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if journal == nil {
		journal = NopRecorder{}
	}
	return &Controller{
		session: session,
		inbox:   inbox,
		room:    room,
		ticks:   ticks,
		journal: journal,
		log:     log,
	}
}

// Run services characters and ticks until ctx is canceled. After every
// event it drains all pending work exactly once.
func (c *Controller) Run(ctx context.Context, chars <-chan byte) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-chars:
			if !ok {
				// Console gone; keep ticking so the display stays live.
				chars = nil
				c.log.Warnw("console_closed")
				continue
			}
			c.HandleChar(b)
		case <-c.ticks.C():
			// Characters queued during a blocking action arrived before the
			// ticks replayed here, so they go first.
			chars = c.drainChars(chars)
			c.HandleTicks()
		}
		c.RunPending()
	}
}

// drainChars hands every already-queued character to the session without
// blocking. It returns nil once chars is closed.
func (c *Controller) drainChars(chars <-chan byte) <-chan byte {
	for {
		select {
		case b, ok := <-chars:
			if !ok {
				c.log.Warnw("console_closed")
				return nil
			}
			c.HandleChar(b)
		default:
			return chars
		}
	}
}

// HandleChar feeds one received character to the session.
func (c *Controller) HandleChar(b byte) {
	c.session.HandleChar(b)
}

// HandleTicks replays every tick taken from the source, so ticks that
// arrived during a blocking action still count toward the timeout.
func (c *Controller) HandleTicks() {
	ev := c.ticks.Take()
	for i := 0; i < ev.Ticks; i++ {
		c.session.Tick()
	}
	c.refreshDue = c.refreshDue || ev.DisplayRefreshDue
	c.minuteDue = c.minuteDue || ev.MinuteElapsed
}

// RunPending executes and clears every pending action, then the
// periodic work.
func (c *Controller) RunPending() {
	p := c.inbox.Take()
	if p.Has(ActionSetTime) {
		c.exec(ActionSetTime, func() error { return c.room.SetTime(p.TimeArgs[0], p.TimeArgs[1]) })
	}
	if p.Has(ActionSetLamp) {
		c.exec(ActionSetLamp, func() error { return c.room.SetLamp(p.LampArg) })
	}
	if p.Has(ActionOpenCurtain) {
		c.exec(ActionOpenCurtain, c.room.OpenCurtain)
	}
	if p.Has(ActionCloseCurtain) {
		c.exec(ActionCloseCurtain, c.room.CloseCurtain)
	}
	if p.Has(ActionHelp) {
		c.exec(ActionHelp, func() error { c.room.Help(); return nil })
	}
	if c.refreshDue {
		c.refreshDue = false
		_ = c.room.RefreshDisplay()
	}
	if c.minuteDue {
		c.minuteDue = false
		c.heartbeat()
	}
}

func (c *Controller) exec(a Action, fn func() error) {
	err := fn()
	meta := map[string]any{"action": a.String()}
	if err != nil {
		meta["err"] = err.Error()
		if errors.Is(err, ErrDeviceFault) {
			c.log.Errorw("action_failed", "action", a.String(), "err", err)
		} else {
			c.log.Infow("action_rejected", "action", a.String(), "err", err)
		}
		c.journal.Record(models.EventError, a.String()+" failed", meta)
		return
	}
	c.log.Infow("action_done", "action", a.String())
	c.journal.Record(models.EventCommand, a.String(), meta)
}

func (c *Controller) heartbeat() {
	st := c.room.Snapshot(c.session.LoggedIn())
	c.log.Debugw("heartbeat", "curtain", st.Curtain, "lamp", st.LampDuty, "logged_in", st.LoggedIn)
	c.journal.Record(models.EventHeartbeat, "minute heartbeat", map[string]any{
		"curtain":   st.Curtain,
		"lamp_duty": st.LampDuty,
		"logged_in": st.LoggedIn,
		"clock":     st.Clock,
	})
}
