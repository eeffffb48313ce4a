package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/wire"
)

const (
	magicByte0 byte = 0xCA
	magicByte1 byte = 0x11
)

func (d *Decoder) stepPreambleMagic(cur *cursor.Cursor) (bool, Status, error) {
	if d.pend.need == 0 {
		d.pend.start(2)
	}

	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	b := d.pend.bytes()
	if b[0] != magicByte0 || b[1] != magicByte1 {
		return d.failByte(cur, errs.ErrBadMagic)
	}

	d.mode = modePreambleVersion
	d.pend.start(0)

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepPreambleVersion(cur *cursor.Cursor) (bool, Status, error) {
	if d.pend.need == 0 {
		d.pend.start(2)
	}

	if !d.pend.fill(cur) {
		return false, StatusNeedMore, nil
	}

	b := d.pend.bytes()
	major, minor := b[0], b[1]

	if major != 1 && major != 2 && major != 3 {
		return d.failByte(cur, errs.ErrUnsupportedVersion)
	}

	d.major, d.minor = major, minor
	d.mode = modeEnvelopeTag
	d.pend.start(0)

	return true, StatusNeedMore, nil
}

func (d *Decoder) stepEnvelopeTag(cur *cursor.Cursor) (bool, Status, error) {
	b, ok := cur.Next()
	if !ok {
		return false, StatusNeedMore, nil
	}

	tag, ok := wire.Decode(b)
	if !ok {
		return d.failByte(cur, errs.ErrUnknownType)
	}

	switch tag.Kind {
	case wire.KindCall:
		d.env = envCall
		d.mode = modeCallNameLen
		d.pend.start(0)
	case wire.KindResponse:
		d.env = envResponse
		d.response = responseNeedBody
		d.mode = modeValueTag
		d.restrict = restrictNone

		if err := d.snk.MethodResponse(); err != nil {
			return d.sinkErr(cur, err)
		}
	case wire.KindFault:
		d.env = envFault
		d.fault = faultNeedCode
		d.mode = modeValueTag
		d.restrict = restrictInt
	default:
		return d.failByte(cur, errs.ErrUnknownType)
	}

	return true, StatusNeedMore, nil
}
