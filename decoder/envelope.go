package decoder

import (
	"github.com/frpsgo/frps/errs"
	"github.com/frpsgo/frps/internal/cursor"
	"github.com/frpsgo/frps/internal/stack"
)

// EndOfInput asserts that no more bytes will ever arrive. It succeeds only
// if the parse stack is empty and the active envelope reached a state
// where ending is legal: a call waiting for its next argument/data token,
// or a response that has delivered its body value and is only waiting on
// optional trailing data. Anything else is unexpected_data_end.
func (d *Decoder) EndOfInput() error {
	if d.errored {
		return d.lastErr
	}

	if d.complete {
		return nil
	}

	if d.stk.Len() == 0 {
		switch {
		case d.env == envCall && d.mode == modeCallNext:
			if err := d.closeDataRun(); err != nil {
				return d.failSink(err)
			}

			d.complete = true
			d.mode = modeDone

			return nil
		case d.env == envResponse && d.mode == modeResponseNext:
			if err := d.closeDataRun(); err != nil {
				return d.failSink(err)
			}

			d.complete = true
			d.mode = modeDone

			return nil
		}
	}

	err := errs.At(d.consumedTotal, errs.ErrUnexpectedDataEnd)
	d.errored = true
	d.lastErr = err

	return err
}

// onValueCompleted is invoked whenever a scalar value finishes, or a
// container (array/struct) just closed, outside of a fault's own
// code/message slots (the code in value.go's stepValueIntBytes and the
// message in data.go's finishBulk, because completing them requires the
// decoded value itself, not just a signal).
// It walks back up the frame stack exactly as far as containers are
// closing, then hands control to whichever envelope-level grammar is
// waiting: another call argument, or the response's trailing-data phase.
func (d *Decoder) onValueCompleted(cur *cursor.Cursor) (bool, Status, error) {
	top := d.stk.Top()
	if top == nil {
		switch d.env {
		case envCall:
			d.mode = modeCallNext
		case envResponse:
			d.response = responseTrailing
			d.mode = modeResponseNext
		default:
			// Fault code/message completions never reach here; see value.go and data.go.
			return d.fail(cur, errs.ErrUnexpectedDataEnd)
		}

		return true, StatusNeedMore, nil
	}

	switch top.Kind {
	case stack.FrameArray:
		top.Remaining--
		if top.Remaining == 0 {
			d.stk.Pop()
			d.stats.FramesPopped++

			if err := d.snk.CloseArray(); err != nil {
				return d.sinkErr(cur, err)
			}

			return d.onValueCompleted(cur)
		}

		d.mode = modeValueTag
		d.restrict = restrictNone

		return true, StatusNeedMore, nil

	case stack.FrameStruct:
		top.Remaining--
		if top.Remaining == 0 {
			d.stk.Pop()
			d.stats.FramesPopped++

			if err := d.snk.CloseStruct(); err != nil {
				return d.sinkErr(cur, err)
			}

			return d.onValueCompleted(cur)
		}

		top.Expecting = stack.ExpectingKey
		d.mode = modeStructKeyLen

		return true, StatusNeedMore, nil

	default:
		return d.fail(cur, errs.ErrUnexpectedDataEnd)
	}
}

// abandonOpenContainers clears the stack without emitting synthetic close
// events: a fault discovered anywhere discards the enclosing partial
// structure from the result, while the events already emitted for it
// stand.
func (d *Decoder) abandonOpenContainers() {
	d.stk.Reset()
}
