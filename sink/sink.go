// Package sink defines the decoder's outward event contract.
//
// A Sink is the only way decoded data leaves the decoder: the decoder
// itself owns no decoded values and never builds its own value tree.
// Every method may return an error, which the decoder wraps with
// errs.Sink and surfaces from Feed, halting decoding.
package sink

import "github.com/frpsgo/frps/datetime"

// Sink receives decoded FastRPC tokens in wire order, synchronously within
// a single Feed call. Implementations must not call back into the decoder
// that is driving them.
type Sink interface {
	OpenStruct() error
	CloseStruct() error
	StructKey(key string) error

	OpenArray() error
	CloseArray() error

	ValueInt(v int64) error
	ValueStringChunk(b []byte) error
	ValueStringEnd() error
	ValueBinaryChunk(b []byte) error
	ValueBinaryEnd() error
	ValueBool(v bool) error
	ValueDouble(v float64) error
	ValueDatetime(dt datetime.DateTime) error
	ValueNull() error

	MethodCall(name string) error
	MethodResponse() error
	Fault(code int64, msg string) error

	DataChunk(b []byte) error
	DataEnd() error
}
