package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/wire"
)

// stepResponseNext reads the next token after a response's single body
// value: only a data-chunk tag is legal here; anything else is
// data_after_end, since the response's one required value already arrived.
func (d *Decoder) stepResponseNext(cur *cursor.Cursor) (bool, Status, error) {
	b, ok := cur.Next()
	if !ok {
		return false, StatusNeedMore, nil
	}

	if !wire.IsDataTag(b) {
		return d.fail(cur, errs.ErrDataAfterEnd)
	}

	return d.startDataChunk(cur, b, modeResponseNext)
}
