package figparser

import (
	"bufio"
	"io"
)

// Source decodes runes from a byte stream one at a time. Runes handed back
// with Unread are returned again, most recent first, and the position moves
// back with them.
type Source struct {
	r      *bufio.Reader
	pushed []rune
	cur    cursor
	err    error
}

// NewSource wraps r. The reader is consumed incrementally through a buffer,
// so inputs never have to fit in memory at once.
func NewSource(r io.Reader) *Source {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Source{r: br}
}

// Next returns the next rune and advances the position. It reports false at
// the end of input or after a read error; Err distinguishes the two.
func (s *Source) Next() (rune, bool) {
	if n := len(s.pushed); n > 0 {
		r := s.pushed[n-1]
		s.pushed = s.pushed[:n-1]
		s.cur.advance(r)
		return r, true
	}
	if s.err != nil {
		return 0, false
	}
	r, _, err := s.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return 0, false
	}
	s.cur.advance(r)
	return r, true
}

// Unread pushes r back so the next call to Next returns it. Runes must be
// unread in the reverse order they were read.
func (s *Source) Unread(r rune) {
	s.pushed = append(s.pushed, r)
	s.cur.retreat(r)
}

// Peek returns the next rune without consuming it.
func (s *Source) Peek() (rune, bool) {
	r, ok := s.Next()
	if ok {
		s.Unread(r)
	}
	return r, ok
}

// Pos returns the position of the next rune to be read.
func (s *Source) Pos() Position {
	return s.cur.pos
}

// Err returns the first non-EOF read error, if any.
func (s *Source) Err() error {
	return s.err
}
