// Package decoder implements the FastRPC wire-format state machine and
// envelope driver: an incremental decoder that consumes arbitrarily-chunked
// input and drives a caller-supplied sink.Sink as soon as each token
// completes.
//
// String, binary and data chunk payloads reach the sink as slices of the
// input buffer, without copying. Struct keys and call method names are
// handed to the sink as new strings, and a fault's message is collected
// into a growing byte slice before Sink.Fault receives it, so those
// tokens allocate.
//
// Decoder owns no decoded values, only parse state: a bounded explicit
// stack of array/struct frames (internal/stack), a small inline scratch
// buffer for whichever fixed-width field is currently being assembled
// across feed boundaries, and the envelope-level phase (call/response/
// fault). One Decoder handles all three protocol versions by branching
// at the two points where they differ, rather than one decoder type per
// wire dialect; it is resumable because FastRPC has no length-prefixed
// envelope to read fully before parsing.
package decoder
