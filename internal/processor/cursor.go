package processor

import "crec-parser-go/internal/source"

// Cursor walks a line source with one line of lookahead, so a break line
// can end one item and start the next.
type Cursor struct {
	src  source.Lines
	line string
	ok   bool
	pos  int
}

// NewCursor positions a cursor on the first line of src.
func NewCursor(src source.Lines) *Cursor {
	c := &Cursor{src: src, pos: -1}
	c.Advance()
	return c
}

// Line returns the current line; ok is false once the source is exhausted.
func (c *Cursor) Line() (string, bool) {
	return c.line, c.ok
}

// Done reports whether every line has been consumed.
func (c *Cursor) Done() bool {
	return !c.ok
}

// Pos is the zero-based index of the current line in the source.
func (c *Cursor) Pos() int {
	return c.pos
}

// Advance consumes the current line.
func (c *Cursor) Advance() {
	if c.pos >= 0 && !c.ok {
		return
	}
	c.line, c.ok = c.src.Next()
	c.pos++
}
