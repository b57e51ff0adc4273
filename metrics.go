package arena

// SizeInUse returns the number of bytes handed out since the last Reset,
// including padding inserted for alignment. It equals Offset().
func (a *Arena) SizeInUse() int {
	return a.currOffset
}

// Capacity returns the length of the backing buffer in bytes.
func (a *Arena) Capacity() int {
	return len(a.buf)
}

// Remaining returns the number of bytes past the bump pointer. An
// allocation may still fail with fewer bytes requested if its alignment
// needs padding.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.currOffset
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	if len(a.buf) == 0 {
		return 0
	}
	return float64(a.currOffset) / float64(len(a.buf))
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:      a.SizeInUse(),
		PrevOffset:     a.prevOffset,
		Capacity:       a.Capacity(),
		Remaining:      a.Remaining(),
		Utilization:    a.Utilization(),
		Allocs:         a.stats.allocs,
		InPlaceResizes: a.stats.inPlace,
		CopyResizes:    a.stats.copies,
		Failures:       a.stats.failures,
		Resets:         a.stats.resets,
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes up to the bump pointer
	PrevOffset  int     // Start of the most recent allocation
	Capacity    int     // Length of the backing buffer
	Remaining   int     // Bytes past the bump pointer
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)

	Allocs         uint64 // Successful allocations, including resize copies
	InPlaceResizes uint64 // Resizes that moved only the bump pointer
	CopyResizes    uint64 // Resizes that copied into a new allocation
	Failures       uint64 // Requests that failed with ErrOutOfMemory
	Resets         uint64 // Calls to Reset
}

// Thread-safe metrics for SafeArena

// SizeInUse thread-safely returns the number of bytes in use.
func (s *SafeArena) SizeInUse() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.SizeInUse()
}

// Capacity thread-safely returns the length of the backing buffer.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Remaining thread-safely returns the number of bytes past the bump pointer.
func (s *SafeArena) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Remaining()
}

// Utilization thread-safely returns the ratio of bytes in use to capacity.
func (s *SafeArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() ArenaMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}
