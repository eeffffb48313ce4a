package decoder

import "github.com/frpsgo/frps/internal/cursor"

// pendingMax is large enough for the widest field the decoder ever
// accumulates across feed boundaries: a struct key or call method name,
// each capped at 255 bytes.
const pendingMax = 255

// pending accumulates a fixed-width field across however many Feed calls
// it takes to arrive. Only one is ever in flight: the decoder reads one
// token at a time, never two concurrently.
type pending struct {
	need int
	have int
	buf  [pendingMax]byte
}

// start begins accumulating n bytes, discarding any previous contents.
func (p *pending) start(n int) {
	p.need = n
	p.have = 0
}

// fill consumes bytes from cur until need is satisfied, returning true once
// complete. Safe to call repeatedly across feeds; cur may run out before
// need is met, in which case it returns false having consumed whatever was
// available.
func (p *pending) fill(cur *cursor.Cursor) bool {
	for p.have < p.need {
		b, ok := cur.Next()
		if !ok {
			return false
		}

		p.buf[p.have] = b
		p.have++
	}

	return true
}

// bytes returns the accumulated bytes once fill has returned true.
func (p *pending) bytes() []byte {
	return p.buf[:p.need]
}

// leUint decodes p's accumulated bytes as a little-endian unsigned integer.
// Used for length and count fields (width 1..=8) and integer magnitudes.
func leUint(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v
}
