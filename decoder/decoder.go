package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/config"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/internal/methodcache"
	"github.com/frpsgo/frps/internal/stack"
	"github.com/frpsgo/frps/sink"
	"github.com/frpsgo/frps/wire"
)

// Status is the outcome of a single Feed call.
type Status uint8

const (
	// StatusNeedMore means the decoder consumed everything it could and is
	// waiting for more bytes.
	StatusNeedMore Status = iota
	// StatusComplete means the envelope finished during this Feed call
	// (only possible for a fault, which needs no explicit EndOfInput).
	StatusComplete
	// StatusError means decoding failed; the Decoder is unusable until Reset.
	StatusError
)

// mode names the next structural thing the decoder expects.
type mode uint8

const (
	modePreambleMagic mode = iota
	modePreambleVersion
	modeEnvelopeTag

	modeCallNameLen
	modeCallNameBytes
	modeCallNext

	modeResponseNext

	modeValueTag
	modeValueLenOfLen
	modeValueCount
	modeValueIntBytes
	modeValueDoubleBytes
	modeValueDatetimeBytes
	modeValueBulkStream

	modeStructKeyLen
	modeStructKeyBytes

	modeDataLen
	modeDataStream

	modeDone
)

// restrict narrows which tag kinds modeValueTag will accept, used for the
// two fixed-grammar slots inside a fault.
type restrict uint8

const (
	restrictNone restrict = iota
	restrictInt
	restrictString
)

// bulkKind identifies what a streaming byte run (modeValueBulkStream /
// modeDataStream) is delivering to the sink.
type bulkKind uint8

const (
	bulkString bulkKind = iota
	bulkBinary
	bulkData
)

// envKind identifies which top-level envelope grammar is active.
type envKind uint8

const (
	envNone envKind = iota
	envCall
	envResponse
	envFault
)

// faultPhase tracks progress through a fault's fixed int-then-string grammar.
type faultPhase uint8

const (
	faultNeedCode faultPhase = iota
	faultNeedMsg
	faultDone
)

// responsePhase tracks progress through a response's single-value-then-data grammar.
type responsePhase uint8

const (
	responseNeedBody responsePhase = iota
	responseTrailing
)

// Stats is a snapshot of decode-cost counters, useful for callers that want
// to observe cost without instrumenting the sink themselves.
type Stats struct {
	FramesPushed  uint64
	FramesPopped  uint64
	BytesConsumed uint64
	MaxStackDepth uint32
}

// Decoder is the FastRPC push-style state machine and envelope driver.
// A Decoder is single-use per envelope: call Reset before decoding another.
type Decoder struct {
	cfg config.Config
	snk sink.Sink
	stk *stack.Stack
	mc  methodcache.Cache

	major, minor byte

	mode     mode
	pend     pending
	restrict restrict

	intTagKind    wire.Kind        // which integer tag started the in-flight modeValueIntBytes read
	containerKind stack.FrameKind // which container kind started the in-flight modeValueCount read

	bulkKind      bulkKind
	bulkRemaining uint64

	dataThenMode mode // mode to resume after a data chunk finishes streaming
	dataOpen     bool // a run of one or more consecutive data chunks is in progress

	env           envKind
	fault         faultPhase
	faultCode     int64
	faultMsg      []byte
	response      responsePhase

	consumedTotal int64
	errored       bool
	lastErr       error
	complete      bool

	stats Stats
}

// New constructs a Decoder that drives snk. opts configure resource limits
// (internal/config); an invalid configuration is reported immediately
// rather than deep inside the first Feed call. Call Close when the
// Decoder is no longer needed so its parse stack returns to the shared
// pool instead of being dropped to the GC.
func New(snk sink.Sink, opts ...config.Option) (*Decoder, error) {
	cfg := config.New(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Decoder{
		cfg:  cfg,
		snk:  snk,
		stk:  stack.New(cfg.MaxStackDepth),
		mode: modePreambleMagic,
	}, nil
}

// Stats returns a snapshot of the decoder's cost counters.
func (d *Decoder) Stats() Stats {
	return d.stats
}

// Reset discards all parser state; the next Feed begins a new envelope.
func (d *Decoder) Reset() {
	d.stk.Reset()
	d.mc.Reset()
	*d = Decoder{
		cfg:  d.cfg,
		snk:  d.snk,
		stk:  d.stk,
		mode: modePreambleMagic,
	}
}

// Close returns the Decoder's parse stack to the shared pool. The Decoder
// must not be used afterward; construct a new one with New instead of
// calling Close and then Reset.
func (d *Decoder) Close() {
	d.stk.Release()
	d.stk = nil
}

// Feed consumes as much of data as it can, driving sink events, and
// reports how many bytes were consumed and whether the decoder needs
// more input, has completed, or has failed.
//
// Feed is idempotent on a zero-length slice: it performs no state change
// and returns StatusNeedMore unless the decoder already completed.
func (d *Decoder) Feed(data []byte) (int, Status, error) {
	if d.errored {
		return 0, StatusError, d.lastErr
	}

	if d.complete {
		if len(data) == 0 {
			return 0, StatusComplete, nil
		}

		err := errs.At(d.consumedTotal, errs.ErrDataAfterEnd)
		d.errored = true
		d.lastErr = err

		return 0, StatusError, err
	}

	if len(data) == 0 {
		return 0, StatusNeedMore, nil
	}

	cur := cursor.New(data)

	for {
		progressed, status, err := d.step(&cur)
		if err != nil {
			d.errored = true
			d.lastErr = err
			d.consumedTotal += int64(cur.Pos())
			d.stats.BytesConsumed += uint64(cur.Pos())

			return cur.Pos(), StatusError, err
		}

		if status == StatusComplete {
			d.consumedTotal += int64(cur.Pos())
			d.stats.BytesConsumed += uint64(cur.Pos())

			return cur.Pos(), StatusComplete, nil
		}

		if !progressed {
			d.consumedTotal += int64(cur.Pos())
			d.stats.BytesConsumed += uint64(cur.Pos())

			return cur.Pos(), StatusNeedMore, nil
		}
	}
}

// absOffset returns the byte offset, measured from the start of the
// envelope, of whatever the cursor is about to read.
func (d *Decoder) absOffset(cur *cursor.Cursor) int64 {
	return d.consumedTotal + int64(cur.Pos())
}

func (d *Decoder) fail(cur *cursor.Cursor, err error) (bool, Status, error) {
	return false, StatusError, errs.At(d.absOffset(cur), err)
}

// failByte reports err at the offset of the byte most recently consumed
// from cur, rather than the cursor's current (post-increment) position.
// Used wherever a single already-consumed byte is what failed validation
// (a tag, a length, a key length): fail reports the offset of the byte
// after it instead.
func (d *Decoder) failByte(cur *cursor.Cursor, err error) (bool, Status, error) {
	return false, StatusError, errs.At(d.absOffset(cur)-1, err)
}

func (d *Decoder) sinkErr(cur *cursor.Cursor, err error) (bool, Status, error) {
	if err == nil {
		return true, StatusNeedMore, nil
	}

	return false, StatusError, errs.At(d.absOffset(cur), errs.Sink(err))
}

// failSink records a sink-returned error as the Decoder's terminal state,
// for call sites with no in-flight Cursor (EndOfInput runs between Feed
// calls).
func (d *Decoder) failSink(err error) error {
	wrapped := errs.At(d.consumedTotal, errs.Sink(err))
	d.errored = true
	d.lastErr = wrapped

	return wrapped
}

// step performs one unit of work: either it makes definite progress
// (consumes at least one byte, or completes/opens/closes something) and
// returns progressed=true, or it determines the cursor cannot satisfy the
// current need and returns progressed=false (StatusNeedMore), or it
// raises a terminal error.
func (d *Decoder) step(cur *cursor.Cursor) (bool, Status, error) {
	switch d.mode {
	case modePreambleMagic:
		return d.stepPreambleMagic(cur)
	case modePreambleVersion:
		return d.stepPreambleVersion(cur)
	case modeEnvelopeTag:
		return d.stepEnvelopeTag(cur)

	case modeCallNameLen:
		return d.stepCallNameLen(cur)
	case modeCallNameBytes:
		return d.stepCallNameBytes(cur)
	case modeCallNext:
		return d.stepCallNext(cur)

	case modeResponseNext:
		return d.stepResponseNext(cur)

	case modeValueTag:
		return d.stepValueTag(cur)
	case modeValueLenOfLen:
		return d.stepValueLenOfLen(cur)
	case modeValueCount:
		return d.stepValueCount(cur)
	case modeValueIntBytes:
		return d.stepValueIntBytes(cur)
	case modeValueDoubleBytes:
		return d.stepValueDoubleBytes(cur)
	case modeValueDatetimeBytes:
		return d.stepValueDatetimeBytes(cur)
	case modeValueBulkStream:
		return d.stepBulkStream(cur)

	case modeStructKeyLen:
		return d.stepStructKeyLen(cur)
	case modeStructKeyBytes:
		return d.stepStructKeyBytes(cur)

	case modeDataLen:
		return d.stepDataLen(cur)
	case modeDataStream:
		return d.stepBulkStream(cur)

	case modeDone:
		return false, StatusComplete, nil

	default:
		return d.fail(cur, errs.ErrUnknownType)
	}
}
