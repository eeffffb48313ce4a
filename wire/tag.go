// Package wire decodes the FastRPC tag byte into a (Kind, parameter) pair
// and holds the wire-format constants. It has no notion of cursors or
// state; it is pure functions over already-available bytes, the same
// role bit-packed header decoding plays elsewhere in this codebase.
package wire

// Kind is the high-5-bit portion of a FastRPC tag byte.
type Kind uint8

// Recognized kinds. Values are the tag byte with its low 3 bits masked off.
const (
	KindIntV3    Kind = 0x08
	KindBool     Kind = 0x10
	KindDouble   Kind = 0x18
	KindString   Kind = 0x20
	KindDatetime Kind = 0x28
	KindBinary   Kind = 0x30
	KindIntPos   Kind = 0x38
	KindIntNeg   Kind = 0x40
	KindStruct   Kind = 0x50
	KindArray    Kind = 0x58
	KindNull     Kind = 0x60
	KindCall     Kind = 0x68
	KindResponse Kind = 0x70
	KindFault    Kind = 0x78

	// Data chunks have no Kind here: they are not part of the high-5-bit tag
	// space. A data chunk tag is the single byte range 0x01..0x08 in its
	// entirety (length-width is the low 3 bits plus one, no separate
	// high/low split). It is recognized by IsDataTag, not Decode.
)

func (k Kind) String() string {
	switch k {
	case KindIntV3:
		return "int_v3"
	case KindBool:
		return "bool"
	case KindDouble:
		return "double"
	case KindString:
		return "string"
	case KindDatetime:
		return "datetime"
	case KindBinary:
		return "binary"
	case KindIntPos:
		return "int_pos"
	case KindIntNeg:
		return "int_neg"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindNull:
		return "null"
	case KindCall:
		return "call"
	case KindResponse:
		return "response"
	case KindFault:
		return "fault"
	default:
		return "unknown"
	}
}

// kindMask isolates the high 5 bits of a tag byte.
const kindMask = 0xF8

// paramMask isolates the low 3 bits of a tag byte.
const paramMask = 0x07

// dataTagMin and dataTagMax bound the single-byte tag range reserved for
// data chunks: 0x01..=0x08.
const (
	dataTagMin byte = 0x01
	dataTagMax byte = 0x08
)

// Tag is a decoded (kind, parameter) pair.
type Tag struct {
	Kind  Kind
	Param uint8
}

// known reports whether k is one of the Kind constants above.
func known(k Kind) bool {
	switch k {
	case KindIntV3, KindBool, KindDouble, KindString, KindDatetime, KindBinary,
		KindIntPos, KindIntNeg, KindStruct, KindArray, KindNull, KindCall,
		KindResponse, KindFault:
		return true
	default:
		return false
	}
}

// Decode splits a tag byte into its Kind and low-3-bit parameter. ok is
// false if the high-5-bit value is not a recognized kind (unknown_type).
func Decode(b byte) (Tag, bool) {
	k := Kind(b & kindMask)
	if !known(k) {
		return Tag{}, false
	}

	return Tag{Kind: k, Param: b & paramMask}, true
}

// IsDataTag reports whether b is a data-chunk tag byte (0x01..=0x08), as
// opposed to a (kind, parameter) value tag.
func IsDataTag(b byte) bool {
	return b >= dataTagMin && b <= dataTagMax
}

// DataLengthWidth returns the number of length bytes that follow a
// data-chunk tag: low 3 bits + 1.
func DataLengthWidth(b byte) int {
	return int(b&paramMask) + 1
}
