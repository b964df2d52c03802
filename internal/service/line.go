package service

// MaxLine is the line buffer capacity including the terminator slot, so
// at most MaxLine-1 characters are held.
const MaxLine = 200

const (
	lineTerminator = '\r'
	lineFeed       = '\n'
)

// LineBuffer accumulates console characters into one line. It never
// grows: an overlong line is dropped and the remainder skipped up to the
// next terminator.
type LineBuffer struct {
	buf        [MaxLine - 1]byte
	n          int
	discarding bool
}

// Feed consumes one character. It returns the completed line and true on
// a terminator, or ErrBufferOverflow when the line no longer fits.
func (l *LineBuffer) Feed(c byte) (string, bool, error) {
	switch c {
	case lineFeed:
		return "", false, nil
	case lineTerminator:
		if l.discarding {
			l.discarding = false
			return "", false, nil
		}
		line := string(l.buf[:l.n])
		l.n = 0
		return line, true, nil
	}

	if l.discarding {
		return "", false, nil
	}
	if l.n == len(l.buf) {
		l.n = 0
		l.discarding = true
		return "", false, ErrBufferOverflow
	}
	l.buf[l.n] = c
	l.n++
	return "", false, nil
}

// Reset drops any partial line, including a pending discard.
func (l *LineBuffer) Reset() {
	l.n = 0
	l.discarding = false
}

func (l *LineBuffer) Len() int { return l.n }
