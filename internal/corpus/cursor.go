// SPDX-License-Identifier: Apache-2.0

package corpus

// Cursor walks a document's characters by offset without copying them.
type Cursor struct {
	chars []rune
	off   int
}

func NewCursor(chars []rune) *Cursor {
	return &Cursor{chars: chars}
}

// Offset returns the number of characters consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Remaining returns the number of unconsumed characters.
func (c *Cursor) Remaining() int {
	return len(c.chars) - c.off
}

// Take consumes the next n characters. It reports false, consuming nothing,
// when fewer than n remain.
func (c *Cursor) Take(n int) (string, bool) {
	if n < 0 || n > c.Remaining() {
		return "", false
	}
	s := string(c.chars[c.off : c.off+n])
	c.off += n
	return s, true
}

// Peek returns the character i positions past the current offset.
func (c *Cursor) Peek(i int) (rune, bool) {
	if i < 0 || i >= c.Remaining() {
		return 0, false
	}
	return c.chars[c.off+i], true
}
