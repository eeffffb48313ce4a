// Package endian provides the byte-order abstraction used to decode
// FastRPC's fixed-width fields.
//
// FastRPC is little-endian on the wire, so this package is deliberately
// smaller than a general-purpose byte-order toolkit: it exposes
// EndianEngine, a single interface, and a constructor for the one engine
// the protocol ever uses. Keeping the interface, rather than calling
// binary.LittleEndian directly at each call site, leaves room for a
// future wire revision without touching callers.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used by all FastRPC
// wire versions.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
