package service

import (
	"errors"

	"smartroom/internal/logger"
	"smartroom/internal/models"
)

// SessionState is the console login state.
type SessionState int

const (
	LoggedOut SessionState = iota
	LoggedIn
)

func (s SessionState) String() string {
	if s == LoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

// DefaultTimeoutTicks is the inactivity limit, in ticks, of a session.
const DefaultTimeoutTicks = 60

// Session is the auth gate in front of the dispatcher. It owns the line
// buffer and the inactivity counter; nothing else writes either.
type Session struct {
	state      SessionState
	inactivity int
	timeout    int

	line     LineBuffer
	verifier PasswordVerifier
	dispatch *Dispatcher
	out      Console
	journal  Recorder
	log      *logger.Logger
}

func NewSession(verifier PasswordVerifier, dispatch *Dispatcher, out Console, journal Recorder, log *logger.Logger, timeoutTicks int) *Session {
	if timeoutTicks <= 0 {
		timeoutTicks = DefaultTimeoutTicks
	}
	if log == nil {
		log = logger.Nop()
	}
	if journal == nil {
		journal = NopRecorder{}
	}
	return &Session{
		timeout:  timeoutTicks,
		verifier: verifier,
		dispatch: dispatch,
		out:      out,
		journal:  journal,
		log:      log,
	}
}

func (s *Session) State() SessionState { return s.state }

func (s *Session) LoggedIn() bool { return s.state == LoggedIn }

// Inactivity reports ticks since the last character while logged in.
func (s *Session) Inactivity() int { return s.inactivity }

// HandleChar consumes one received character.
func (s *Session) HandleChar(c byte) {
	if s.state == LoggedIn {
		s.inactivity = 0
	}

	line, done, err := s.line.Feed(c)
	if err != nil {
		s.out.Send(msgOverflow)
		s.log.Warnw("console_line_overflow", "max", MaxLine-1, "state", s.state.String())
		s.journal.Record(models.EventError, "console line overflow", nil)
		return
	}
	if !done {
		return
	}

	if s.state == LoggedOut {
		s.authenticate(line)
		return
	}
	if a, err := s.dispatch.Dispatch(line); err != nil {
		s.log.Infow("command_rejected", "err", err)
		s.journal.Record(models.EventError, "unrecognized command", map[string]any{"key": Tokenize(line).Key})
	} else {
		s.log.Debugw("command_queued", "action", a.String())
	}
}

// Tick advances the inactivity counter. It reports whether this tick
// ended the session.
func (s *Session) Tick() bool {
	if s.state != LoggedIn {
		return false
	}
	s.inactivity++
	if s.inactivity < s.timeout {
		return false
	}
	s.expire()
	return true
}

func (s *Session) authenticate(line string) {
	err := s.verifier.Verify(line)
	switch {
	case err == nil:
		s.state = LoggedIn
		s.inactivity = 0
		s.line.Reset()
		s.out.Send(msgWelcome)
		s.log.Infow("session_login")
		s.journal.Record(models.EventLogin, "operator logged in", nil)
	case errors.Is(err, ErrAuth):
		s.out.Send(msgIncorrect)
		s.log.Infow("session_login_failed")
		s.journal.Record(models.EventLoginFailed, "incorrect password", nil)
	default:
		s.out.Send(msgIncorrect)
		s.log.Errorw("session_verify_failed", "err", err)
		s.journal.Record(models.EventError, "password verification failed", map[string]any{"err": err.Error()})
	}
}

func (s *Session) expire() {
	s.state = LoggedOut
	s.inactivity = 0
	s.line.Reset()
	s.out.Send(msgTimeout)
	s.out.Send(msgPrompt)
	s.log.Infow("session_timeout", "ticks", s.timeout)
	s.journal.Record(models.EventLogout, "session timed out", map[string]any{"ticks": s.timeout})
}
