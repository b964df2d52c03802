package service

import "sync"

// Action is one pending-action token. Tokens are independent bits.
type Action uint8

const (
	ActionSetTime Action = 1 << iota
	ActionSetLamp
	ActionOpenCurtain
	ActionCloseCurtain
	ActionHelp
)

func (a Action) String() string {
	switch a {
	case ActionSetTime:
		return "set time"
	case ActionSetLamp:
		return "set lamp"
	case ActionOpenCurtain:
		return "open curtain"
	case ActionCloseCurtain:
		return "close curtain"
	case ActionHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Pending is a snapshot of the inbox taken by the main loop.
type Pending struct {
	Actions  Action
	TimeArgs [2]string // time, date
	LampArg  string
}

func (p Pending) Has(a Action) bool { return p.Actions&a != 0 }

// Inbox holds posted actions and their arguments until the main loop
// takes them. Post and Take are each one critical section.
type Inbox struct {
	mu sync.Mutex
	p  Pending
}

// Post sets the token for a, storing args with it. Other tokens are left
// untouched.
func (b *Inbox) Post(a Action, args ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.p.Actions |= a
	switch a {
	case ActionSetTime:
		b.p.TimeArgs = [2]string{}
		copy(b.p.TimeArgs[:], args)
	case ActionSetLamp:
		b.p.LampArg = ""
		if len(args) > 0 {
			b.p.LampArg = args[0]
		}
	}
}

// Take returns everything pending and clears the inbox.
func (b *Inbox) Take() Pending {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.p
	b.p = Pending{}
	return p
}
