package journal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// maxLineSize bounds a single journal line. Scan entries with many rings or
// materials run to a few kilobytes.
const maxLineSize = 1 << 20

// Reader reads survey events from a journal stream, skipping entries that
// carry no survey data.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader creates a reader over a journal stream.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next survey event. It returns io.EOF at end of stream.
// A malformed entry yields an error wrapping ErrMalformed; reading may
// continue after it.
func (r *Reader) Next() (Event, error) {
	for r.sc.Scan() {
		r.line++
		raw := bytes.TrimSpace(r.sc.Bytes())
		if len(raw) == 0 {
			continue
		}

		ev, err := Decode(raw)
		if errors.Is(err, ErrIgnored) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", r.line, err)
		}
		return ev, nil
	}

	if err := r.sc.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return nil, io.EOF
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}
