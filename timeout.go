package circbuf

import (
	"context"
	"errors"
	"time"
)

// pollInterval is the sleep between retries in the bounded-wait layer.
const pollInterval = time.Millisecond

// InsertTimeout attempts Insert and, if the buffer is full, keeps
// retrying at a fixed poll interval until the element goes in or the
// timeout budget is exhausted, in which case it fails with ErrTimeout.
//
// A timeout of zero or less makes it equivalent to Insert. Any failure
// other than ErrFull aborts immediately without waiting.
func (b *Buffer[T]) InsertTimeout(v T, timeout time.Duration) error {
	err := b.Insert(v)
	if err == nil || timeout <= 0 || !errors.Is(err, ErrFull) {
		return err
	}

	deadline := time.Now().Add(timeout)
	for {
		time.Sleep(pollInterval)

		err = b.Insert(v)
		if err == nil || !errors.Is(err, ErrFull) {
			return err
		}
		if !time.Now().Before(deadline) {
			return b.fail("InsertTimeout", "timeout", ErrTimeout)
		}
	}
}

// RemoveTimeout attempts Remove and, if the buffer is empty, keeps
// retrying at a fixed poll interval until an element arrives or the
// timeout budget is exhausted, in which case it fails with ErrTimeout.
//
// A timeout of zero or less makes it equivalent to Remove. Any failure
// other than ErrEmpty aborts immediately without waiting.
func (b *Buffer[T]) RemoveTimeout(timeout time.Duration) (T, error) {
	v, err := b.Remove()
	if err == nil || timeout <= 0 || !errors.Is(err, ErrEmpty) {
		return v, err
	}

	deadline := time.Now().Add(timeout)
	for {
		time.Sleep(pollInterval)

		v, err = b.Remove()
		if err == nil || !errors.Is(err, ErrEmpty) {
			return v, err
		}
		if !time.Now().Before(deadline) {
			var zero T
			return zero, b.fail("RemoveTimeout", "timeout", ErrTimeout)
		}
	}
}

// InsertContext is InsertTimeout with the deadline carried by a
// context: it polls until the element goes in or ctx is done, reporting
// ErrTimeout on expiry or cancellation.
func (b *Buffer[T]) InsertContext(ctx context.Context, v T) error {
	if ctx == nil {
		return b.fail("InsertContext", "ctx", ErrInvalidParameter)
	}
	for {
		err := b.Insert(v)
		if err == nil || !errors.Is(err, ErrFull) {
			return err
		}
		select {
		case <-ctx.Done():
			return b.fail("InsertContext", "ctx", ErrTimeout)
		default:
		}
		time.Sleep(pollInterval)
	}
}

// RemoveContext is RemoveTimeout with the deadline carried by a
// context.
func (b *Buffer[T]) RemoveContext(ctx context.Context) (T, error) {
	var zero T
	if ctx == nil {
		return zero, b.fail("RemoveContext", "ctx", ErrInvalidParameter)
	}
	for {
		v, err := b.Remove()
		if err == nil || !errors.Is(err, ErrEmpty) {
			return v, err
		}
		select {
		case <-ctx.Done():
			return zero, b.fail("RemoveContext", "ctx", ErrTimeout)
		default:
		}
		time.Sleep(pollInterval)
	}
}
