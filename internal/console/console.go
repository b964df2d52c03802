package console

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"smartroom/internal/logger"
)

// rxQueue bounds characters waiting for the main loop, like a UART FIFO.
const rxQueue = 64

// Console is the operator terminal: it echoes received characters, hands
// them to the main loop over a bounded channel and writes replies.
type Console struct {
	port  Port
	crlf  bool
	log   *logger.Logger
	chars chan byte

	mu sync.Mutex // serializes echo and replies on the port
}

func New(port Port, crlf bool, log *logger.Logger) *Console {
	if log == nil {
		log = logger.Nop()
	}
	return &Console{
		port:  port,
		crlf:  crlf,
		log:   log,
		chars: make(chan byte, rxQueue),
	}
}

// Chars delivers received characters. It is closed when Run returns.
func (c *Console) Chars() <-chan byte { return c.chars }

// Send writes a reply. With crlf set every '\r' becomes "\r\n".
func (c *Console) Send(text string) {
	if c.crlf {
		text = strings.ReplaceAll(text, "\r", "\r\n")
	}
	c.write([]byte(text))
}

func (c *Console) echo(b byte) {
	if b == '\r' && c.crlf {
		c.write([]byte("\r\n"))
		return
	}
	c.write([]byte{b})
}

func (c *Console) write(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := c.port.Write(b); err != nil {
		c.log.Warnw("console_write_failed", "err", err)
	}
}

// Run is the receive task. It returns on ctx cancellation or when the
// port reaches EOF or fails.
func (c *Console) Run(ctx context.Context) error {
	defer close(c.chars)
	buf := make([]byte, 32)
	for {
		n, err := c.port.Read(buf)
		for i := 0; i < n; i++ {
			c.echo(buf[i])
			select {
			case c.chars <- buf[i]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

// Shutdown releases the port.
func (c *Console) Shutdown() error {
	return c.port.Close()
}
