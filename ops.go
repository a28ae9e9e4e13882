package circbuf

// Insert stores one element.
//
// The element is written into the slot before the write cursor is
// published, so the consumer never observes a partially-written element.
// If the buffer is full, Insert fails with ErrFull unless overwrite is
// enabled, in which case the oldest unread element is evicted first and
// the insert succeeds.
//
// Must be called from the producer side only.
func (b *Buffer[T]) Insert(v T) error {
	if err := b.usable(); err != nil {
		return b.fail("Insert", "", err)
	}

	in := b.in.Load()
	next := b.next(in)
	out := b.out.Load()

	if next == out {
		if !b.overwrite.Load() {
			b.stats.overflowCount.Add(1)
			return b.fail("Insert", "", ErrFull)
		}
		// Evict the oldest element by advancing the read cursor. CAS so
		// a consumer that freed the slot in the meantime wins: either
		// way one slot is free afterwards.
		b.out.CompareAndSwap(out, b.next(out))
	}

	b.storage[in] = v
	b.in.Store(next)

	b.noteInsert()
	return nil
}

// TryInsert is the boolean form of Insert.
func (b *Buffer[T]) TryInsert(v T) bool {
	return b.Insert(v) == nil
}

// Remove takes the oldest element out of the buffer. On an empty buffer
// it fails with ErrEmpty and returns the zero value.
//
// Must be called from the consumer side only.
func (b *Buffer[T]) Remove() (T, error) {
	var zero T
	if err := b.usable(); err != nil {
		return zero, b.fail("Remove", "", err)
	}

	out := b.out.Load()
	in := b.in.Load()

	if in == out {
		b.stats.underflowCount.Add(1)
		return zero, b.fail("Remove", "", ErrEmpty)
	}

	v := b.storage[out]
	b.out.Store(b.next(out))

	b.stats.totalRemoves.Add(1)
	return v, nil
}

// TryRemove is the boolean form of Remove.
func (b *Buffer[T]) TryRemove() (T, bool) {
	v, err := b.Remove()
	return v, err == nil
}

// Peek returns the element offset slots past the read cursor without
// removing anything. Offset zero is the element Remove would return
// next. Fails with ErrInvalidOffset if offset is negative or at least
// Len().
//
// Peek only reads the cursors and is safe to call concurrently with
// producer activity; the result reflects some consistent snapshot, not
// necessarily the latest.
func (b *Buffer[T]) Peek(offset int) (T, error) {
	var zero T
	if err := b.usable(); err != nil {
		return zero, b.fail("Peek", "", err)
	}
	if offset < 0 {
		return zero, b.fail("Peek", "offset", ErrInvalidOffset)
	}

	out := b.out.Load()
	in := b.in.Load()

	if uint64(offset) >= b.occupied(in, out) {
		return zero, b.fail("Peek", "offset", ErrInvalidOffset)
	}

	pos := out + uint64(offset)
	if pos >= b.capacity {
		pos -= b.capacity
	}
	return b.storage[pos], nil
}

// TryPeek is the boolean form of Peek.
func (b *Buffer[T]) TryPeek(offset int) (T, bool) {
	v, err := b.Peek(offset)
	return v, err == nil
}

// InsertBulk inserts the items one by one in order and returns how many
// went in. It is not an atomic batch: each element becomes visible to
// the consumer individually, with the same ordering guarantees as
// Insert. On the first failure it stops and returns the partial count;
// the error is non-nil only when nothing was inserted. With overwrite
// enabled a full buffer never stops the transfer.
func (b *Buffer[T]) InsertBulk(items []T) (int, error) {
	if err := b.usable(); err != nil {
		return 0, b.fail("InsertBulk", "", err)
	}
	if len(items) == 0 {
		return 0, b.fail("InsertBulk", "items", ErrInvalidCount)
	}

	n := 0
	for n < len(items) {
		if err := b.Insert(items[n]); err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		n++
	}
	return n, nil
}

// RemoveBulk fills dst with up to len(dst) elements in FIFO order and
// returns how many were taken. Like InsertBulk it is a sequential
// application of Remove: it stops at the first failure and reports an
// error only when nothing was removed.
func (b *Buffer[T]) RemoveBulk(dst []T) (int, error) {
	if err := b.usable(); err != nil {
		return 0, b.fail("RemoveBulk", "", err)
	}
	if len(dst) == 0 {
		return 0, b.fail("RemoveBulk", "dst", ErrInvalidCount)
	}

	n := 0
	for n < len(dst) {
		v, err := b.Remove()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		dst[n] = v
		n++
	}
	return n, nil
}
