package decoder

import (
	"math"

	"github.com/frpsgo/frps/datetime"
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/internal/stack"
	"github.com/frpsgo/frps/wire"
)

// stepValueTag reads a single tag byte and dispatches it as the start of a
// value, honoring whatever restriction (none, int-only, string-only) the
// current grammar slot imposes.
func (d *Decoder) stepValueTag(cur *cursor.Cursor) (bool, Status, error) {
	b, ok := cur.Next()
	if !ok {
		return false, StatusNeedMore, nil
	}

	return d.startValueFromTag(cur, b, d.restrict)
}

// startValueFromTag is the shared entry point for "the next value begins
// with this already-consumed tag byte", used both by stepValueTag and by
// the call/response next-token readers after they have ruled out a data
// chunk tag.
func (d *Decoder) startValueFromTag(cur *cursor.Cursor, b byte, r restrict) (bool, Status, error) {
	tag, ok := wire.Decode(b)
	if !ok {
		return d.failByte(cur, errs.ErrUnknownType)
	}

	// A fault is a legal value anywhere a generic (unrestricted) value is
	// expected; it overrides whatever container or envelope was in
	// progress and becomes the envelope's definitive result. It is never
	// legal inside a fault's own code/message slots, which are themselves
	// restricted.
	if tag.Kind == wire.KindFault {
		if r != restrictNone {
			return d.failByte(cur, errs.ErrInvalidTypeID)
		}

		d.abandonOpenContainers()
		d.env = envFault
		d.fault = faultNeedCode
		d.restrict = restrictInt
		d.mode = modeValueTag

		return true, StatusNeedMore, nil
	}

	if err := d.checkRestriction(tag.Kind, r); err != nil {
		return d.failByte(cur, err)
	}

	if err := d.checkVersion(tag.Kind); err != nil {
		return d.failByte(cur, err)
	}

	switch tag.Kind {
	case wire.KindIntV3, wire.KindIntPos, wire.KindIntNeg:
		return d.startInt(cur, tag)
	case wire.KindDouble:
		d.pend.start(8)
		d.mode = modeValueDoubleBytes

		return true, StatusNeedMore, nil
	case wire.KindBool:
		return d.finishBool(cur, tag)
	case wire.KindNull:
		return d.finishNull(cur, tag)
	case wire.KindDatetime:
		d.pend.start(datetimeWidth(d.major))
		d.mode = modeValueDatetimeBytes

		return true, StatusNeedMore, nil
	case wire.KindString:
		return d.startBulkLength(cur, tag, bulkString)
	case wire.KindBinary:
		return d.startBulkLength(cur, tag, bulkBinary)
	case wire.KindArray:
		return d.startCount(cur, tag, stack.FrameArray)
	case wire.KindStruct:
		return d.startCount(cur, tag, stack.FrameStruct)
	default:
		return d.failByte(cur, errs.ErrUnknownType)
	}
}

func (d *Decoder) checkRestriction(k wire.Kind, r restrict) error {
	switch r {
	case restrictInt:
		if k != wire.KindIntV3 && k != wire.KindIntPos && k != wire.KindIntNeg {
			return errs.ErrInvalidTypeID
		}
	case restrictString:
		if k != wire.KindString {
			return errs.ErrInvalidTypeID
		}
	}

	return nil
}

// checkVersion enforces the two version-dependent legality rules:
// int_v3 is invalid in v2 (ints must use int_pos/int_neg there), and
// null does not exist at all in v1.
func (d *Decoder) checkVersion(k wire.Kind) error {
	switch {
	case k == wire.KindIntV3 && d.major == 2:
		return errs.ErrInvalidType
	case k == wire.KindNull && d.major == 1:
		return errs.ErrUnknownType
	default:
		return nil
	}
}

func datetimeWidth(major byte) int {
	if major == 3 {
		return datetime.V3PayloadLen
	}

	return datetime.V1V2PayloadLen
}

// startInt begins reading an integer's payload bytes. Width is determined
// by protocol version and tag kind: v1's int_v3 range encodes width
// directly as the tag parameter (0 bytes of payload means the value 0),
// while every other integer form uses parameter+1 bytes.
func (d *Decoder) startInt(cur *cursor.Cursor, tag wire.Tag) (bool, Status, error) {
	width := int(tag.Param) + 1
	if tag.Kind == wire.KindIntV3 && d.major == 1 {
		width = int(tag.Param)
	}

	d.intTagKind = tag.Kind
	d.pend.start(width)
	d.mode = modeValueIntBytes

	if width == 0 {
		return d.stepValueIntBytes(cur)
	}

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepValueIntBytes(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	b := d.pend.bytes()
	mag := leUint(b)

	var value int64

	switch {
	case d.intTagKind == wire.KindIntNeg:
		value = -int64(mag) //nolint:gosec
	case d.intTagKind == wire.KindIntPos:
		value = int64(mag) //nolint:gosec
	case d.major == 3:
		// zig-zag: n = (v << 1) ^ (v >> 63); decode back to signed.
		value = int64(mag>>1) ^ -int64(mag&1) //nolint:gosec
	default:
		// v1: plain two's-complement signed integer, sign-extended from
		// however many bytes were actually present.
		value = signExtend(mag, len(b))
	}

	if d.env == envFault && d.fault == faultNeedCode {
		d.faultCode = value
		d.fault = faultNeedMsg
		d.restrict = restrictString
		d.mode = modeValueTag

		return true, StatusNeedMore, nil
	}

	return d.finishValue(cur, func() error { return d.snk.ValueInt(value) })
}

// signExtend interprets the low n*8 bits of mag as a two's-complement
// signed integer of that width and sign-extends it to 64 bits.
func signExtend(mag uint64, n int) int64 {
	if n == 0 || n >= 8 {
		return int64(mag) //nolint:gosec
	}

	bits := uint(n * 8)
	signBit := uint64(1) << (bits - 1)

	if mag&signBit != 0 {
		mag |= ^uint64(0) << bits
	}

	return int64(mag) //nolint:gosec
}

func (d *Decoder) stepValueDoubleBytes(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	bits := leUint(d.pend.bytes())
	value := math.Float64frombits(bits)

	return d.finishValue(cur, func() error { return d.snk.ValueDouble(value) })
}

func (d *Decoder) finishBool(cur *cursor.Cursor, tag wire.Tag) (bool, Status, error) {
	if tag.Param&0x06 != 0 {
		return d.failByte(cur, errs.ErrInvalidBoolValue)
	}

	value := tag.Param&0x01 != 0

	return d.finishValue(cur, func() error { return d.snk.ValueBool(value) })
}

func (d *Decoder) finishNull(cur *cursor.Cursor, tag wire.Tag) (bool, Status, error) {
	if tag.Param != 0 {
		return d.failByte(cur, errs.ErrInvalidValue)
	}

	return d.finishValue(cur, d.snk.ValueNull)
}

func (d *Decoder) stepValueDatetimeBytes(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	dt := datetime.Unpack(d.pend.bytes(), d.major == 3)

	return d.finishValue(cur, func() error { return d.snk.ValueDatetime(dt) })
}

// startBulkLength begins reading a string or binary value's length field.
// v1 always uses a single length byte regardless of the tag parameter;
// v2/v3 use parameter+1 length-of-length bytes, same convention as
// array/struct counts.
func (d *Decoder) startBulkLength(cur *cursor.Cursor, tag wire.Tag, kind bulkKind) (bool, Status, error) {
	width := int(tag.Param) + 1
	if d.major == 1 {
		width = 1
	}

	d.bulkKind = kind
	d.pend.start(width)
	d.mode = modeValueLenOfLen

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepValueLenOfLen(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	length := leUint(d.pend.bytes())
	if length > uint64(d.cfg.MaxBulkLength) {
		if d.bulkKind == bulkBinary {
			return d.fail(cur, errs.ErrTooLargeBinary)
		}

		return d.fail(cur, errs.ErrTooLargeString)
	}

	d.bulkRemaining = length
	d.mode = modeValueBulkStream

	return d.stepBulkStream(cur)
}

// startCount begins reading an array/struct's count field. v1 always uses
// a single count byte regardless of the tag parameter, the same
// exception startBulkLength applies to strings/binaries; v2/v3 use
// parameter+1 bytes. It then pushes the corresponding frame once the
// count is known.
func (d *Decoder) startCount(cur *cursor.Cursor, tag wire.Tag, kind stack.FrameKind) (bool, Status, error) {
	width := int(tag.Param) + 1
	if d.major == 1 {
		width = 1
	}

	d.pend.start(width)
	d.containerKind = kind
	d.mode = modeValueCount

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepValueCount(cur *cursor.Cursor) (bool, Status, error) {
	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	count := leUint(d.pend.bytes())
	if count > uint64(d.cfg.MaxBulkLength) {
		return d.fail(cur, errs.ErrTooLargeArray)
	}

	if count == 0 {
		return d.openEmptyContainer(cur, d.containerKind)
	}

	if !d.stk.Push(stack.Frame{Kind: d.containerKind, Remaining: uint32(count), Expecting: stack.ExpectingKey}) { //nolint:gosec
		return d.fail(cur, errs.ErrRecursionLimit)
	}

	d.stats.FramesPushed++
	if d.stk.Len() > int(d.stats.MaxStackDepth) {
		d.stats.MaxStackDepth = uint32(d.stk.Len()) //nolint:gosec
	}

	if d.containerKind == stack.FrameArray {
		d.mode = modeValueTag
		d.restrict = restrictNone

		return d.openContainerEvent(cur, d.snk.OpenArray)
	}

	d.mode = modeStructKeyLen

	return d.openContainerEvent(cur, d.snk.OpenStruct)
}

// openEmptyContainer handles a zero-length array/struct: no frame is
// pushed since there is nothing to iterate, but open/close must both
// still be emitted before control returns to whatever is next.
func (d *Decoder) openEmptyContainer(cur *cursor.Cursor, kind stack.FrameKind) (bool, Status, error) {
	open, closeFn := d.snk.OpenArray, d.snk.CloseArray
	if kind == stack.FrameStruct {
		open, closeFn = d.snk.OpenStruct, d.snk.CloseStruct
	}

	if err := open(); err != nil {
		return d.sinkErr(cur, err)
	}

	if err := closeFn(); err != nil {
		return d.sinkErr(cur, err)
	}

	return d.onValueCompleted(cur)
}

func (d *Decoder) openContainerEvent(cur *cursor.Cursor, open func() error) (bool, Status, error) {
	if err := open(); err != nil {
		return d.sinkErr(cur, err)
	}

	return true, StatusNeedMore, nil
}

// finishValue emits a completed scalar value to the sink and hands control
// to the generic container/envelope continuation. A fault's code slot is
// intercepted earlier, directly in stepValueIntBytes, since it needs the
// decoded value itself rather than a sink event; its message slot is
// intercepted in the bulk-stream completion path for the same reason.
func (d *Decoder) finishValue(cur *cursor.Cursor, emit func() error) (bool, Status, error) {
	if err := emit(); err != nil {
		return d.sinkErr(cur, err)
	}

	return d.onValueCompleted(cur)
}
