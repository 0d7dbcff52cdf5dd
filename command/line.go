package command

// LineCapacity is the longest line the buffer assembles.
const LineCapacity = 32

// LineBuffer assembles command lines from a byte stream. Bytes arriving
// while the buffer is full are dropped until the next line terminator.
type LineBuffer struct {
	buf []byte
}

// Feed adds one byte. It returns the completed line when b is '\n' or '\r'
// and something was accumulated.
func (l *LineBuffer) Feed(b byte) (string, bool) {
	if b == '\n' || b == '\r' {
		if len(l.buf) == 0 {
			return "", false
		}
		line := string(l.buf)
		l.buf = l.buf[:0]
		return line, true
	}

	if len(l.buf) < LineCapacity {
		l.buf = append(l.buf, b)
	}
	return "", false
}

// Pending returns the number of buffered bytes.
func (l *LineBuffer) Pending() int {
	return len(l.buf)
}
