package service

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"smartroom/internal/models"
)

func TestSession_LoginFlow(t *testing.T) {
	r := newTestRig(t)

	r.typeLine("0000\r")
	if r.node.Session.LoggedIn() {
		t.Fatalf("wrong password accepted")
	}
	if r.out.Text() != msgIncorrect {
		t.Fatalf("console = %q, want %q", r.out.Text(), msgIncorrect)
	}
	r.out.Reset()

	r.typeLine("1234\r")
	if r.node.Session.State() != LoggedIn {
		t.Fatalf("state = %s, want logged_in", r.node.Session.State())
	}
	if r.out.Text() != msgWelcome {
		t.Fatalf("console = %q, want %q", r.out.Text(), msgWelcome)
	}

	want := []string{models.EventLoginFailed, models.EventLogin}
	if got := r.journal.Types(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("journal = %v, want %v", got, want)
	}
}

func TestSession_CommandsIgnoredWhileLoggedOut(t *testing.T) {
	r := newTestRig(t)
	r.typeLine("open curtain\r")
	if r.node.Session.LoggedIn() {
		t.Fatalf("command line unlocked session")
	}
	if len(r.motor.Phases()) != 0 {
		t.Fatalf("motor moved while logged out")
	}
	if r.out.Text() != msgIncorrect {
		t.Fatalf("console = %q", r.out.Text())
	}
}

func TestSession_TimeoutAfterSixtyIdleTicks(t *testing.T) {
	r := newTestRig(t)
	r.login(t)
	s := r.node.Session

	for i := 1; i < DefaultTimeoutTicks; i++ {
		if s.Tick() {
			t.Fatalf("expired at tick %d", i)
		}
	}
	if !s.LoggedIn() || s.Inactivity() != DefaultTimeoutTicks-1 {
		t.Fatalf("after 59 ticks: logged_in=%v inactivity=%d", s.LoggedIn(), s.Inactivity())
	}
	if !s.Tick() {
		t.Fatalf("tick 60 did not expire the session")
	}
	if s.LoggedIn() || s.Inactivity() != 0 {
		t.Fatalf("after expiry: logged_in=%v inactivity=%d", s.LoggedIn(), s.Inactivity())
	}
	if r.out.Text() != msgTimeout+msgPrompt {
		t.Fatalf("console = %q", r.out.Text())
	}

	// Further ticks while logged out do nothing.
	for i := 0; i < 2*DefaultTimeoutTicks; i++ {
		if s.Tick() {
			t.Fatalf("expired again while logged out")
		}
	}
	if n := r.out.Count(msgTimeout); n != 1 {
		t.Fatalf("timeout reported %d times", n)
	}
	if !r.journal.Has(models.EventLogout) {
		t.Fatalf("logout not journaled")
	}
}

func TestSession_CharacterResetsInactivity(t *testing.T) {
	r := newTestRig(t)
	r.login(t)
	s := r.node.Session

	for i := 0; i < DefaultTimeoutTicks-1; i++ {
		s.Tick()
	}
	s.HandleChar('h')
	if s.Inactivity() != 0 {
		t.Fatalf("inactivity = %d after keystroke", s.Inactivity())
	}
	for i := 0; i < DefaultTimeoutTicks-1; i++ {
		if s.Tick() {
			t.Fatalf("expired %d ticks after keystroke", i+1)
		}
	}
	if !s.LoggedIn() {
		t.Fatalf("session ended early")
	}
}

func TestSession_TimeoutDropsPartialLine(t *testing.T) {
	r := newTestRig(t)
	r.login(t)
	s := r.node.Session

	r.typeLine("12")
	for i := 0; i < DefaultTimeoutTicks; i++ {
		s.Tick()
	}
	r.typeLine("34\r")
	if s.LoggedIn() {
		t.Fatalf("leftover partial line combined into password")
	}
	r.typeLine("1234\r")
	if !s.LoggedIn() {
		t.Fatalf("fresh login after timeout failed")
	}
}

func TestSession_OverflowReported(t *testing.T) {
	r := newTestRig(t)
	r.login(t)

	r.typeLine(strings.Repeat("a", MaxLine) + "\r")
	if r.out.Count(msgOverflow) != 1 {
		t.Fatalf("console = %q", r.out.Text())
	}
	if r.out.Count(msgError) != 0 {
		t.Fatalf("overlong line was also dispatched")
	}
	r.out.Reset()
	r.typeLine("help\r")
	if r.out.Text() != strings.Join(helpText, "") {
		t.Fatalf("command after overflow not handled: %q", r.out.Text())
	}
}

func TestSession_UnknownCommandJournaled(t *testing.T) {
	r := newTestRig(t)
	r.login(t)
	r.typeLine("bananas\r")
	if r.out.Text() != msgError {
		t.Fatalf("console = %q", r.out.Text())
	}
	if !r.journal.Has(models.EventError) {
		t.Fatalf("rejection not journaled")
	}
}

type brokenVerifier struct{}

func (brokenVerifier) Verify(string) error { return errors.New("hash store unreadable") }

func TestSession_VerifierFailureStaysLoggedOut(t *testing.T) {
	out := &fakeConsole{}
	j := &fakeRecorder{}
	s := NewSession(brokenVerifier{}, NewDispatcher(&Inbox{}, out), out, j, nil, 0)
	for _, c := range []byte("1234\r") {
		s.HandleChar(c)
	}
	if s.LoggedIn() {
		t.Fatalf("logged in despite verifier failure")
	}
	if out.Text() != msgIncorrect || !j.Has(models.EventError) {
		t.Fatalf("console=%q journal=%v", out.Text(), j.Types())
	}
}

func TestSession_NilLoggerAndJournal(t *testing.T) {
	out := &fakeConsole{}
	s := NewSession(NewPlainVerifier("1234"), NewDispatcher(&Inbox{}, out), out, nil, nil, 0)

	for _, c := range []byte("0000\r1234\rbananas\r") {
		s.HandleChar(c)
	}
	if !s.LoggedIn() {
		t.Fatalf("login failed")
	}
	if out.Text() != msgIncorrect+msgWelcome+msgError {
		t.Fatalf("console = %q", out.Text())
	}
	for i := 0; i < DefaultTimeoutTicks; i++ {
		s.Tick()
	}
	if s.LoggedIn() {
		t.Fatalf("session did not expire")
	}
}

func TestPlainVerifier(t *testing.T) {
	t.Parallel()
	v := NewPlainVerifier("1234")
	if err := v.Verify("1234"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	for _, bad := range []string{"", "123", "12345", " 1234"} {
		if err := v.Verify(bad); !errors.Is(err, ErrAuth) {
			t.Errorf("Verify(%q) = %v, want ErrAuth", bad, err)
		}
	}
}

func TestBcryptVerifier(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	v, err := NewBcryptVerifier(string(hash))
	if err != nil {
		t.Fatalf("NewBcryptVerifier: %v", err)
	}
	if err := v.Verify("1234"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if err := v.Verify("4321"); !errors.Is(err, ErrAuth) {
		t.Fatalf("Verify(wrong) = %v, want ErrAuth", err)
	}
}

func TestBcryptVerifier_RejectsMalformedHash(t *testing.T) {
	t.Parallel()
	if _, err := NewBcryptVerifier("not-a-hash"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
