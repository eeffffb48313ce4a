// Package cursor provides a thin, allocation-free view over the byte
// slice offered to a single Feed call.
//
// A Cursor's lifetime is exactly one Feed call: the decoder never retains
// a Cursor, or the slice behind it, across calls. Anything that must
// survive a suspension point lives in the decoder's own scratch fields
// instead.
package cursor

// Cursor walks a byte slice from position 0, tracking how many bytes have
// been consumed so the driver can report progress.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps buf for sequential consumption.
func New(buf []byte) Cursor {
	return Cursor{buf: buf}
}

// Remaining returns how many unconsumed bytes are left in this feed.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Pos returns how many bytes this cursor has consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Next consumes and returns one byte, or ok=false if the cursor is exhausted.
func (c *Cursor) Next() (byte, bool) {
	if c.pos >= len(c.buf) {
		return 0, false
	}

	b := c.buf[c.pos]
	c.pos++

	return b, true
}

// Take consumes and returns a view of up to n bytes, returning fewer than n
// (but at least 1) if that is all that remains; ok is false only when the
// cursor is already exhausted. The returned slice aliases the input buffer
// and is valid only until the next call into the decoder.
func (c *Cursor) Take(n int) (b []byte, ok bool) {
	if c.pos >= len(c.buf) {
		return nil, false
	}

	end := c.pos + n
	if end > len(c.buf) {
		end = len(c.buf)
	}

	b = c.buf[c.pos:end]
	c.pos = end

	return b, true
}
