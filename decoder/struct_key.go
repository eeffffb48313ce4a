package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/internal/stack"
)

// stepStructKeyLen reads a struct member's key length: a single byte,
// 1..=255; zero is bad_key_length, there is no empty key.
func (d *Decoder) stepStructKeyLen(cur *cursor.Cursor) (bool, Status, error) {
	b, ok := cur.Next()
	if !ok {
		return false, StatusNeedMore, nil
	}

	if b == 0 {
		return d.failByte(cur, errs.ErrBadKeyLength)
	}

	d.pend.start(int(b))
	d.mode = modeStructKeyBytes

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepStructKeyBytes(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	key := string(d.pend.bytes())
	if top := d.stk.Top(); top != nil {
		top.Expecting = stack.ExpectingValue
	}

	d.mode = modeValueTag
	d.restrict = restrictNone

	if err := d.snk.StructKey(key); err != nil {
		return d.sinkErr(cur, err)
	}

	return true, StatusNeedMore, nil
}
