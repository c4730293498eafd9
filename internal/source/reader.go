package source

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
)

// LineReader is a line-buffered rune source. It reads one line at a time
// from the underlying reader and hands out its runes in order.
type LineReader struct {
	r    *bufio.Reader
	line []rune
	pos  int
	done bool
	err  error
}

// NewLineReader wraps r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Next implements Source.
func (l *LineReader) Next() (rune, bool) {
	for l.pos >= len(l.line) {
		if l.done {
			return 0, false
		}
		l.fill()
	}
	r := l.line[l.pos]
	l.pos++
	return r, true
}

func (l *LineReader) fill() {
	text, err := l.r.ReadString('\n')
	l.line = []rune(text)
	l.pos = 0
	if err != nil {
		l.done = true
		if err != io.EOF {
			l.err = errors.Wrap(err, "reading source line")
		}
	}
}

// Err returns the first read error other than io.EOF.
func (l *LineReader) Err() error {
	return l.err
}

// ReadFile reads a whole file, or standard input when path is "-".
func ReadFile(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "reading stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	return string(b), nil
}
