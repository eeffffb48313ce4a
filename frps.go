// Package frps provides a push-style decoder for the FastRPC (FRPS)
// binary RPC wire format. String, binary and data chunk payloads reach
// the sink as slices of the input without copying; struct keys, call
// method names and fault messages reach it as newly allocated strings.
//
// The decoder never owns a value tree and never recurses on the Go call
// stack: callers feed it byte slices as they arrive (over a socket, a
// pipe, a test fixture split at arbitrary points) and it drives a
// caller-supplied Sink with decode events in wire order. Decoding a call
// argument by argument, a response's single body value, or a fault's
// code and message is all the same Feed/EndOfInput loop.
//
// # Basic usage
//
//	dec, err := frps.NewDecoder(mySink)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for {
//	    chunk := readSomeBytes()
//	    if len(chunk) == 0 {
//	        break
//	    }
//
//	    n, status, err := dec.Feed(chunk)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if status == decoder.StatusComplete {
//	        break
//	    }
//	    _ = n
//	}
//
//	if err := dec.EndOfInput(); err != nil {
//	    log.Fatal(err)
//	}
//
// A call envelope and a response envelope both need EndOfInput to confirm
// the stream ended at a legal boundary; a fault envelope completes on its
// own the moment its message arrives, since it has no optional trailing
// data.
//
// # Package structure
//
// This package is a thin top-level convenience wrapper around decoder:
// use frps.NewDecoder for the common case, or construct a decoder.Decoder
// directly for anything that needs the lower-level *decoder.Decoder type
// in a function signature.
package frps

import (
	"github.com/frpsgo/frps/decoder"
	"github.com/frpsgo/frps/internal/config"
	"github.com/frpsgo/frps/sink"
)

// Option configures resource limits on a Decoder. See WithMaxStackDepth
// and WithMaxBulkLength.
type Option = config.Option

// WithMaxStackDepth overrides the default maximum array/struct nesting
// depth (64). Exceeding it raises errs.ErrRecursionLimit.
func WithMaxStackDepth(n uint32) Option {
	return config.WithMaxStackDepth(n)
}

// WithMaxBulkLength overrides the default maximum string, binary, array,
// and struct length (2^31-1). Exceeding it raises one of
// errs.ErrTooLargeString / ErrTooLargeBinary / ErrTooLargeArray.
func WithMaxBulkLength(n uint32) Option {
	return config.WithMaxBulkLength(n)
}

// NewDecoder constructs a Decoder that drives snk with decode events as
// bytes are fed to it. snk must not call back into the Decoder it is
// receiving events from.
func NewDecoder(snk sink.Sink, opts ...Option) (*decoder.Decoder, error) {
	return decoder.New(snk, opts...)
}
