// Package circbuf implements a fixed-capacity circular buffer for one
// producer and one consumer running concurrently without locks.
//
// The producer exclusively advances the write cursor, the consumer
// exclusively advances the read cursor; each side only reads the other's
// cursor. One slot is always kept empty so that equal cursors mean
// "empty" and never "full": a buffer of capacity N holds at most N-1
// elements. Capacity does not have to be a power of two.
//
// All operations are non-blocking and return synchronously. The timeout
// and context variants are a polling convenience layer built on top of
// the non-blocking primitives.
package circbuf

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Buffer is a single-producer/single-consumer circular buffer over a
// contiguous element array.
//
// Exactly one goroutine may insert and exactly one may remove at any
// time. A Buffer must not be copied while in use.
type Buffer[T any] struct {
	storage  []T
	capacity uint64

	// The cursors live on separate cache lines so the producer and the
	// consumer do not invalidate each other's line on every publish.
	_   cpu.CacheLinePad
	in  atomic.Uint64 // next slot to write, advanced only by the producer
	_   cpu.CacheLinePad
	out atomic.Uint64 // next slot to read, advanced only by the consumer
	_   cpu.CacheLinePad

	overwrite atomic.Bool
	lastErr   atomic.Pointer[ErrorInfo]

	stats statsBlock
}

// New creates a buffer with self-owned storage for the given total slot
// count. Usable capacity is capacity-1.
//
// A capacity below one yields a permanently degenerate buffer: New still
// returns it together with ErrInvalidSize, and every later operation on
// it fails with ErrInvalidSize.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity < 1 {
		return &Buffer[T]{storage: make([]T, 0)}, ErrInvalidSize
	}
	return &Buffer[T]{
		storage:  make([]T, capacity),
		capacity: uint64(capacity),
	}, nil
}

// NewWithStorage creates a buffer over caller-owned storage. The buffer
// never reallocates or resizes it; len(storage) is the total slot count.
// Nil storage yields a degenerate buffer and ErrNilStorage, empty
// storage a degenerate buffer and ErrInvalidSize.
func NewWithStorage[T any](storage []T) (*Buffer[T], error) {
	if storage == nil {
		return &Buffer[T]{}, ErrNilStorage
	}
	if len(storage) == 0 {
		return &Buffer[T]{storage: storage}, ErrInvalidSize
	}
	return &Buffer[T]{
		storage:  storage,
		capacity: uint64(len(storage)),
	}, nil
}

// MustNew is New but panics on an invalid capacity.
func MustNew[T any](capacity int) *Buffer[T] {
	b, err := New[T](capacity)
	if err != nil {
		panic("circbuf: " + err.Error())
	}
	return b
}

// usable reports whether the buffer can service operations at all.
func (b *Buffer[T]) usable() error {
	if b.storage == nil {
		return ErrNilStorage
	}
	if b.capacity == 0 {
		return ErrInvalidSize
	}
	return nil
}

// next returns idx advanced by one slot with wrap-around.
func (b *Buffer[T]) next(idx uint64) uint64 {
	idx++
	if idx == b.capacity {
		idx = 0
	}
	return idx
}

// occupied computes the element count from a cursor snapshot.
func (b *Buffer[T]) occupied(in, out uint64) uint64 {
	if in >= out {
		return in - out
	}
	return b.capacity - out + in
}

// Capacity returns the total slot count, including the reserved slot.
// The buffer holds at most Capacity()-1 elements.
func (b *Buffer[T]) Capacity() int {
	return int(b.capacity)
}

// Len returns the number of elements currently stored.
//
// The result is a snapshot: it may be stale the instant it is returned
// and must be treated as advisory by the opposite side.
func (b *Buffer[T]) Len() int {
	if b.usable() != nil {
		return 0
	}
	return int(b.occupied(b.in.Load(), b.out.Load()))
}

// FreeSpace returns the number of elements that can still be inserted.
// Like Len, the result is advisory under concurrent use.
func (b *Buffer[T]) FreeSpace() int {
	if b.usable() != nil {
		return 0
	}
	return int(b.capacity - 1 - b.occupied(b.in.Load(), b.out.Load()))
}

// SetOverwrite enables or disables overwrite-on-full. With overwrite
// enabled a full-buffer insert evicts the oldest unread element instead
// of failing.
//
// The flag is intended to be configured before concurrent operation
// starts. Concurrent toggling is last-write-wins with no ordering
// guarantee relative to an in-flight full-buffer decision.
func (b *Buffer[T]) SetOverwrite(enable bool) {
	b.overwrite.Store(enable)
}

// Overwrite reports whether overwrite-on-full is enabled.
func (b *Buffer[T]) Overwrite() bool {
	return b.overwrite.Load()
}

// Validate checks the structural invariants: storage is bound, capacity
// is nonzero, both cursors are in range and the derived occupancy never
// reaches the capacity. It returns ErrNilStorage, ErrInvalidSize or
// ErrCorrupted accordingly.
//
// Validate takes no snapshot lock, so against a live producer/consumer
// pair it is a probably-valid check, not a proof. ErrCorrupted indicates
// a violated ownership discipline (e.g. a second writer) and should be
// treated as a programming error, not retried.
func (b *Buffer[T]) Validate() error {
	if err := b.usable(); err != nil {
		return err
	}
	in := b.in.Load()
	out := b.out.Load()
	if in >= b.capacity || out >= b.capacity {
		return ErrCorrupted
	}
	if b.occupied(in, out) >= b.capacity {
		return ErrCorrupted
	}
	return nil
}

// SanityCheck is the boolean form of Validate.
func (b *Buffer[T]) SanityCheck() bool {
	return b.Validate() == nil
}
