package circbuf

import "sync/atomic"

// Stats is a snapshot of a buffer's usage counters. The counters are
// eventually consistent under concurrent use: good enough to monitor,
// not guaranteed exact at any single instant.
type Stats struct {
	PeakUsage      uint64 // highest observed element count
	TotalInserts   uint64 // successful inserts, including eviction inserts
	TotalRemoves   uint64 // successful removes
	OverflowCount  uint64 // inserts rejected with ErrFull
	UnderflowCount uint64 // removes rejected with ErrEmpty
}

// Every buffer owns its counters; there is no shared registry.
type statsBlock struct {
	peakUsage      atomic.Uint64
	totalInserts   atomic.Uint64
	totalRemoves   atomic.Uint64
	overflowCount  atomic.Uint64
	underflowCount atomic.Uint64
}

// noteInsert accounts for a successful insert and lifts the peak if the
// current occupancy exceeds it.
func (b *Buffer[T]) noteInsert() {
	b.stats.totalInserts.Add(1)

	n := b.occupied(b.in.Load(), b.out.Load())
	for {
		peak := b.stats.peakUsage.Load()
		if n <= peak || b.stats.peakUsage.CompareAndSwap(peak, n) {
			return
		}
	}
}

// Stats returns a snapshot of the usage counters.
func (b *Buffer[T]) Stats() Stats {
	return Stats{
		PeakUsage:      b.stats.peakUsage.Load(),
		TotalInserts:   b.stats.totalInserts.Load(),
		TotalRemoves:   b.stats.totalRemoves.Load(),
		OverflowCount:  b.stats.overflowCount.Load(),
		UnderflowCount: b.stats.underflowCount.Load(),
	}
}

// ResetStats zeroes all usage counters.
func (b *Buffer[T]) ResetStats() {
	b.stats.peakUsage.Store(0)
	b.stats.totalInserts.Store(0)
	b.stats.totalRemoves.Store(0)
	b.stats.overflowCount.Store(0)
	b.stats.underflowCount.Store(0)
}
