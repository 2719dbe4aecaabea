package alloc

// Stats is the O(1) statistics view backed by running counters; nothing is
// scanned to produce it.
type Stats struct {
	// BytesUsed is the carved byte count (the bump cursor). This is what
	// a snapshot persists.
	BytesUsed int64

	// LiveAllocs is the number of allocations not yet freed.
	LiveAllocs int64

	Counters Counters
}

// Counters are cumulative operation counts for instrumentation and tests.
// Reset() zeroes the live state but Counters keep accumulating.
type Counters struct {
	AllocCalls   int64
	FreeCalls    int64
	ReallocCalls int64
	Reuses       int64
	Resets       int64
}

// Stats returns the current statistics.
func (a *Allocator) Stats() Stats {
	return Stats{
		BytesUsed:  int64(a.used),
		LiveAllocs: a.live,
		Counters:   a.counters,
	}
}
