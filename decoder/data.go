package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/wire"
)

// startDataChunk begins reading a data chunk: an out-of-band byte run that
// can appear wherever a call argument or response trailer is expected.
// tagByte has already been consumed from cur and identified as a data
// tag by the caller; resumeMode is where control returns once the
// chunk's bytes are fully delivered.
func (d *Decoder) startDataChunk(cur *cursor.Cursor, tagByte byte, resumeMode mode) (bool, Status, error) {
	d.bulkKind = bulkData
	d.dataThenMode = resumeMode
	d.dataOpen = true
	d.pend.start(wire.DataLengthWidth(tagByte))
	d.mode = modeDataLen

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepDataLen(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	length := leUint(d.pend.bytes())
	if length > uint64(d.cfg.MaxBulkLength) {
		return d.fail(cur, errs.ErrTooLargeBinary)
	}

	d.bulkRemaining = length
	d.mode = modeDataStream

	return d.stepBulkStream(cur)
}

// stepBulkStream delivers as many of the remaining bulk bytes as the
// cursor currently holds, for whichever of string/binary/data payload is
// in flight (d.bulkKind), then completes the run once bulkRemaining
// reaches zero. It is shared by modeValueBulkStream and modeDataStream.
func (d *Decoder) stepBulkStream(cur *cursor.Cursor) (bool, Status, error) {
	if d.bulkRemaining == 0 {
		return d.finishBulk(cur)
	}

	avail := cur.Remaining()
	if avail == 0 {
		return false, StatusNeedMore, nil
	}

	n := avail
	if uint64(n) > d.bulkRemaining {
		n = int(d.bulkRemaining)
	}

	b, _ := cur.Take(n)
	d.bulkRemaining -= uint64(n)

	if err := d.emitBulkChunk(b); err != nil {
		return d.sinkErr(cur, err)
	}

	if d.bulkRemaining == 0 {
		return d.finishBulk(cur)
	}

	return true, StatusNeedMore, nil
}

// emitBulkChunk routes a slice of bulk-stream bytes to the sink, except
// for a fault's message slot: that one is accumulated locally since the
// sink only ever sees the completed fault via Fault(code, msg).
func (d *Decoder) emitBulkChunk(b []byte) error {
	if d.bulkKind == bulkString && d.env == envFault && d.fault == faultNeedMsg {
		d.faultMsg = append(d.faultMsg, b...)

		return nil
	}

	switch d.bulkKind {
	case bulkString:
		return d.snk.ValueStringChunk(b)
	case bulkBinary:
		return d.snk.ValueBinaryChunk(b)
	case bulkData:
		return d.snk.DataChunk(b)
	default:
		return nil
	}
}

// finishBulk completes a binary, string, or data payload. A data chunk's
// run stays open across consecutive data tags — concatenating them
// semantically, as multiple consecutive data chunks are meant to — and
// closeDataRun emits the single resulting data_end once the caller's
// next-token reader sees that the run has actually ended.
func (d *Decoder) finishBulk(cur *cursor.Cursor) (bool, Status, error) {
	switch d.bulkKind {
	case bulkData:
		d.mode = d.dataThenMode

		return true, StatusNeedMore, nil

	case bulkBinary:
		if err := d.snk.ValueBinaryEnd(); err != nil {
			return d.sinkErr(cur, err)
		}

		return d.onValueCompleted(cur)

	case bulkString:
		if d.env == envFault && d.fault == faultNeedMsg {
			return d.finishFault(cur)
		}

		if err := d.snk.ValueStringEnd(); err != nil {
			return d.sinkErr(cur, err)
		}

		return d.onValueCompleted(cur)

	default:
		return d.fail(cur, errs.ErrUnknownType)
	}
}

// closeDataRun emits data_end if a run of one or more consecutive data
// chunks is currently open. It is a no-op otherwise. Callers invoke it
// once they have determined the run has ended: the next token in a call
// or response body turned out not to be another data tag, or the
// envelope itself is ending.
func (d *Decoder) closeDataRun() error {
	if !d.dataOpen {
		return nil
	}

	d.dataOpen = false

	return d.snk.DataEnd()
}

// finishFault delivers the complete fault to the sink once its message
// bytes have fully arrived. A fault needs no EndOfInput call: reaching
// here is itself the envelope's definitive end.
func (d *Decoder) finishFault(cur *cursor.Cursor) (bool, Status, error) {
	code := d.faultCode
	msg := string(d.faultMsg)
	d.faultMsg = nil
	d.fault = faultDone
	d.complete = true
	d.mode = modeDone

	if err := d.snk.Fault(code, msg); err != nil {
		return d.sinkErr(cur, err)
	}

	return true, StatusComplete, nil
}
