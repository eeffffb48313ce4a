package sink

import "github.com/frpsgo/frps/datetime"

// Discard is a Sink that accepts every event and does nothing with it. It
// is useful for tests that only care whether decoding succeeds, and for
// benchmarking decode throughput without tree-building overhead.
type Discard struct{}

var _ Sink = Discard{}

func (Discard) OpenStruct() error                      { return nil }
func (Discard) CloseStruct() error                     { return nil }
func (Discard) StructKey(string) error                 { return nil }
func (Discard) OpenArray() error                       { return nil }
func (Discard) CloseArray() error                      { return nil }
func (Discard) ValueInt(int64) error                   { return nil }
func (Discard) ValueStringChunk([]byte) error          { return nil }
func (Discard) ValueStringEnd() error                  { return nil }
func (Discard) ValueBinaryChunk([]byte) error          { return nil }
func (Discard) ValueBinaryEnd() error                  { return nil }
func (Discard) ValueBool(bool) error                   { return nil }
func (Discard) ValueDouble(float64) error              { return nil }
func (Discard) ValueDatetime(datetime.DateTime) error  { return nil }
func (Discard) ValueNull() error                       { return nil }
func (Discard) MethodCall(string) error                { return nil }
func (Discard) MethodResponse() error                  { return nil }
func (Discard) Fault(int64, string) error               { return nil }
func (Discard) DataChunk([]byte) error                 { return nil }
func (Discard) DataEnd() error                          { return nil }
