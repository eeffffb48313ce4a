// Package datetime unpacks the FastRPC datetime payload.
//
// The payload is 10 bytes in v1/v2 and 14 bytes in v3: a signed timezone
// offset, a little-endian signed unix timestamp (4 or 8 bytes), and 5
// bytes of bit-packed calendar fields. The unix timestamp is the
// authoritative value; the packed fields are informational and are
// decoded only for completeness, into a plain data-carrying struct whose
// only method, Time, converts the unix timestamp.
package datetime

import (
	"time"

	"github.com/frpsgo/frps/endian"
)

var le = endian.GetLittleEndianEngine()

// V1V2PayloadLen and V3PayloadLen are the two valid payload widths.
const (
	V1V2PayloadLen = 10
	V3PayloadLen   = 14
)

// DateTime is the decoded FastRPC datetime record.
type DateTime struct {
	// TZOffsetQuarterHours is the timezone offset in units of 15 minutes.
	TZOffsetQuarterHours int8
	// Unix is the authoritative unix timestamp.
	Unix int64
	// WeekDay is 0-6, informational only (3 bits on the wire).
	WeekDay uint8
	// Second is 0-63, informational only (6 bits on the wire).
	Second uint8
	// Minute is 0-63, informational only (6 bits on the wire).
	Minute uint8
	// Hour is 0-31, informational only (5 bits on the wire).
	Hour uint8
	// Day is 0-31, informational only (5 bits on the wire).
	Day uint8
	// Month is 0-15, informational only (4 bits on the wire).
	Month uint8
	// Year is the packed year field plus the 1600 offset already applied.
	Year uint16
}

// Time returns the authoritative moment in UTC, derived from Unix.
func (d DateTime) Time() time.Time {
	return time.Unix(d.Unix, 0).UTC()
}

// yearBase is added to the wire's packed year field, which stores
// (year - 1600).
const yearBase = 1600

// Unpack decodes a datetime payload. payload must be exactly
// V1V2PayloadLen (v1/v2) or V3PayloadLen (v3) bytes.
func Unpack(payload []byte, v3 bool) DateTime {
	tz := int8(payload[0]) //nolint:gosec

	var unix int64
	var packedOffset int

	if v3 {
		unix = int64(le.Uint64(payload[1:9])) //nolint:gosec
		packedOffset = 9
	} else {
		unix = int64(int32(le.Uint32(payload[1:5]))) //nolint:gosec
		packedOffset = 5
	}

	packed := le40(payload[packedOffset : packedOffset+5])

	return DateTime{
		TZOffsetQuarterHours: tz,
		Unix:                 unix,
		WeekDay:              uint8(packed & 0x7),          //nolint:gosec
		Second:               uint8((packed >> 3) & 0x3F),  //nolint:gosec
		Minute:               uint8((packed >> 9) & 0x3F),  //nolint:gosec
		Hour:                 uint8((packed >> 15) & 0x1F), //nolint:gosec
		Day:                  uint8((packed >> 20) & 0x1F), //nolint:gosec
		Month:                uint8((packed >> 25) & 0xF),  //nolint:gosec
		Year:                 uint16((packed>>29)&0x7FF) + yearBase,
	}
}

// le40 reads 5 little-endian bytes into the low 40 bits of a uint64, the
// bit-packed calendar field region. There is no fixed-width EndianEngine
// method for a 5-byte field, so this one stays hand-rolled.
func le40(b []byte) uint64 {
	var v uint64
	for i := 4; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v
}
