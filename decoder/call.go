package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/wire"
)

func (d *Decoder) stepCallNameLen(cur *cursor.Cursor) (bool, Status, error) {
	b, ok := cur.Next()
	if !ok {
		return false, StatusNeedMore, nil
	}

	if b == 0 {
		return d.failByte(cur, errs.ErrBadSize)
	}

	d.pend.start(int(b))
	d.mode = modeCallNameBytes

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepCallNameBytes(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	name := d.mc.Intern(d.pend.bytes())
	d.mode = modeCallNext

	if err := d.snk.MethodCall(name); err != nil {
		return d.sinkErr(cur, err)
	}

	return true, StatusNeedMore, nil
}

// stepCallNext reads the next token in a call body: a data chunk tag, the
// start of another argument value, or (when the cursor is simply empty)
// a suspension point that EndOfInput may later accept as the call's end.
func (d *Decoder) stepCallNext(cur *cursor.Cursor) (bool, Status, error) {
	b, ok := cur.Next()
	if !ok {
		return false, StatusNeedMore, nil
	}

	if wire.IsDataTag(b) {
		return d.startDataChunk(cur, b, modeCallNext)
	}

	if err := d.closeDataRun(); err != nil {
		return d.sinkErr(cur, err)
	}

	return d.startValueFromTag(cur, b, restrictNone)
}
