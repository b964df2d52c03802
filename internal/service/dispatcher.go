package service

// Dispatcher turns an authenticated console line into a pending action.
type Dispatcher struct {
	inbox *Inbox
	out   Console
}

func NewDispatcher(inbox *Inbox, out Console) *Dispatcher {
	return &Dispatcher{inbox: inbox, out: out}
}

// Dispatch matches line against the command set. Keys compare exactly and
// case-sensitively; "help" must be the whole line.
func (d *Dispatcher) Dispatch(line string) (Action, error) {
	cmd := Tokenize(line)

	var a Action
	switch {
	case cmd.Key == "set time":
		a = ActionSetTime
		d.inbox.Post(a, cmd.Value1, cmd.Value2)
	case cmd.Key == "set lamp":
		a = ActionSetLamp
		d.inbox.Post(a, cmd.Value1)
	case cmd.Key == "open curtain":
		a = ActionOpenCurtain
		d.inbox.Post(a)
	case cmd.Key == "close curtain":
		a = ActionCloseCurtain
		d.inbox.Post(a)
	case line == "help":
		a = ActionHelp
		d.inbox.Post(a)
	default:
		d.out.Send(msgError)
		return 0, ErrParse
	}
	return a, nil
}
