package console

import (
	"fmt"
	"io"
	"os"

	"go.bug.st/serial"
	"golang.org/x/term"
)

// Port is the byte stream under the console: a serial line or the
// process's own terminal.
type Port interface {
	io.Reader
	io.Writer
	io.Closer
}

// OpenSerial opens a serial device at 8N1.
func OpenSerial(device string, baud int) (Port, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	return p, nil
}

// stdioPort reads stdin and writes stdout. A terminal is switched to raw
// mode so Enter arrives as '\r' and the node does the echoing; piped input
// has its '\n' mapped to '\r'.
type stdioPort struct {
	in     *os.File
	out    *os.File
	state  *term.State
	lfToCR bool
}

// OpenTerminal wraps stdin/stdout as a console port.
func OpenTerminal() (Port, error) {
	p := &stdioPort{in: os.Stdin, out: os.Stdout}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		p.lfToCR = true
		return p, nil
	}
	st, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("set terminal raw mode: %w", err)
	}
	p.state = st
	return p, nil
}

func (p *stdioPort) Read(b []byte) (int, error) {
	n, err := p.in.Read(b)
	if p.lfToCR {
		for i := 0; i < n; i++ {
			if b[i] == '\n' {
				b[i] = '\r'
			}
		}
	}
	return n, err
}

func (p *stdioPort) Write(b []byte) (int, error) { return p.out.Write(b) }

// Close restores the terminal; stdin and stdout stay open.
func (p *stdioPort) Close() error {
	if p.state == nil {
		return nil
	}
	return term.Restore(int(p.in.Fd()), p.state)
}
