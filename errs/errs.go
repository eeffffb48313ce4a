// Package errs defines the closed set of errors the FastRPC decoder can
// return. Every failure mode of the decoder maps to exactly one sentinel
// below; callers should compare with errors.Is rather than string matching.
package errs

import "errors"

var (
	// ErrBadMagic is returned when the 2-byte preamble magic does not match 0xCA 0x11.
	ErrBadMagic = errors.New("frps: bad magic")
	// ErrUnsupportedVersion is returned for a major version outside {1, 2, 3}.
	ErrUnsupportedVersion = errors.New("frps: unsupported version")

	// ErrUnknownType is returned when a tag's high-5-bit kind is not recognized at all.
	ErrUnknownType = errors.New("frps: unknown type")
	// ErrInvalidTypeID is returned when a tag is recognized but not allowed in the current context.
	ErrInvalidTypeID = errors.New("frps: invalid type id in this context")
	// ErrInvalidType is returned when a tag is recognized but forbidden for the active protocol version.
	ErrInvalidType = errors.New("frps: invalid type for protocol version")

	// ErrBadSize is returned for an out-of-range size field, e.g. a call's name length.
	ErrBadSize = errors.New("frps: bad size")
	// ErrBadKeyLength is returned for a struct member key length outside 1..=255.
	ErrBadKeyLength = errors.New("frps: bad struct key length")

	// ErrInvalidBoolValue is returned when a bool tag's reserved bits are set.
	ErrInvalidBoolValue = errors.New("frps: invalid bool value")
	// ErrInvalidValue is returned when a null tag carries a nonzero parameter.
	ErrInvalidValue = errors.New("frps: invalid value")

	// ErrTooLargeString is returned when a decoded string length exceeds the configured maximum.
	ErrTooLargeString = errors.New("frps: string length too large")
	// ErrTooLargeBinary is returned when a decoded binary length exceeds the configured maximum.
	ErrTooLargeBinary = errors.New("frps: binary length too large")
	// ErrTooLargeArray is returned when a decoded array/struct count exceeds the configured maximum.
	ErrTooLargeArray = errors.New("frps: array length too large")

	// ErrUnexpectedDataEnd is returned by EndOfInput when the stream stopped mid-token or mid-envelope.
	ErrUnexpectedDataEnd = errors.New("frps: unexpected end of data")
	// ErrDataAfterEnd is returned when bytes arrive after the envelope has already completed.
	ErrDataAfterEnd = errors.New("frps: data after envelope end")

	// ErrRecursionLimit is returned when the parse stack would grow past Config.MaxStackDepth.
	ErrRecursionLimit = errors.New("frps: recursion limit exceeded")

	// ErrSink wraps an error value returned by the caller-supplied Sink.
	ErrSink = errors.New("frps: sink error")
)

// DecodeError carries a sentinel error together with the byte offset (from
// the start of the envelope) at which it was raised.
type DecodeError struct {
	Err    error
	Offset int64
}

func (e *DecodeError) Error() string {
	return e.Err.Error()
}

// Unwrap allows errors.Is/errors.As to reach the wrapped sentinel (or, for
// ErrSink, the caller's own error type nested one level deeper).
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// At wraps err with the offset at which it occurred. err is typically one
// of the sentinels above, or an ErrSink-wrapped caller error.
func At(offset int64, err error) *DecodeError {
	return &DecodeError{Err: err, Offset: offset}
}

// Sink wraps a sink-returned error so it is recognizable via errors.Is(err,
// ErrSink) while errors.As still reaches the caller's concrete error type.
func Sink(inner error) error {
	if inner == nil {
		return nil
	}

	return &sinkError{inner: inner}
}

type sinkError struct {
	inner error
}

func (e *sinkError) Error() string {
	return "frps: sink error: " + e.inner.Error()
}

func (e *sinkError) Unwrap() []error {
	return []error{ErrSink, e.inner}
}
