package figparser

import "fmt"

// Position tracks a source location. Both fields are zero-based and count
// runes, not bytes.
type Position struct {
	Line   int
	Column int
}

// String renders the position with 1-based numbers for humans.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// cursor advances and rewinds a Position one rune at a time. Rewinding over
// a newline needs the length of the line above, so the lengths of finished
// lines are remembered as they are discovered.
type cursor struct {
	pos         Position
	lineLengths []int
}

func (c *cursor) advance(r rune) {
	if r == '\n' {
		c.lineLengths = append(c.lineLengths, c.pos.Column)
		c.pos.Line++
		c.pos.Column = 0
		return
	}
	c.pos.Column++
}

// retreat undoes advance for the same rune.
func (c *cursor) retreat(r rune) {
	if r == '\n' {
		n := len(c.lineLengths)
		if n == 0 {
			return
		}
		c.pos.Line--
		c.pos.Column = c.lineLengths[n-1]
		c.lineLengths = c.lineLengths[:n-1]
		return
	}
	if c.pos.Column > 0 {
		c.pos.Column--
	}
}
