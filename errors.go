package circbuf

import "fmt"

// The closed failure taxonomy. Full and empty are expected steady-state
// outcomes for a bounded buffer, not exceptional conditions; compare
// with errors.Is and keep going.
var (
	ErrNilStorage       = fmt.Errorf("circbuf: storage is not bound")
	ErrInvalidSize      = fmt.Errorf("circbuf: invalid buffer size")
	ErrFull             = fmt.Errorf("circbuf: buffer is full")
	ErrEmpty            = fmt.Errorf("circbuf: buffer is empty")
	ErrInvalidOffset    = fmt.Errorf("circbuf: offset is beyond available data")
	ErrInvalidCount     = fmt.Errorf("circbuf: invalid count")
	ErrCorrupted        = fmt.Errorf("circbuf: buffer integrity check failed")
	ErrTimeout          = fmt.Errorf("circbuf: operation timed out")
	ErrInvalidParameter = fmt.Errorf("circbuf: invalid parameter")
)

// ErrorInfo describes the most recent failed operation on a buffer:
// which operation failed, the offending parameter if one applies, and
// the error itself. It exists for diagnostics only and never changes
// operation behavior.
type ErrorInfo struct {
	Op    string
	Param string
	Err   error
}

// LastError returns the most recently recorded failure, or a zero
// ErrorInfo if none was recorded since construction or ClearLastError.
//
// Either side may record a failure concurrently; the record is published
// atomically and reflects one of the racing failures.
func (b *Buffer[T]) LastError() ErrorInfo {
	if p := b.lastErr.Load(); p != nil {
		return *p
	}
	return ErrorInfo{}
}

// ClearLastError resets the last-error record.
func (b *Buffer[T]) ClearLastError() {
	b.lastErr.Store(nil)
}

// fail records the failure and hands the error back to the caller.
func (b *Buffer[T]) fail(op, param string, err error) error {
	b.lastErr.Store(&ErrorInfo{Op: op, Param: param, Err: err})
	return err
}
