package arena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// The lock covers the arena's offsets only: a returned slice belongs to the
// goroutine that received it until the next Reset.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a thread-safe arena over buf.
func NewSafeArena(buf []byte, opts ...Option) *SafeArena {
	return &SafeArena{a: New(buf, opts...)}
}

// AllocBytes thread-safely allocates n zeroed bytes.
func (s *SafeArena) AllocBytes(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocBytes(n)
}

// AllocAligned thread-safely allocates n zeroed bytes aligned to align.
func (s *SafeArena) AllocAligned(n, align int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocAligned(n, align)
}

// Resize thread-safely resizes old. Another goroutine's allocation between
// the caller's allocation and this call turns an in-place resize into a
// copy.
func (s *SafeArena) Resize(old []byte, n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Resize(old, n)
}

// ResizeAligned thread-safely resizes old, aligning a fresh allocation to
// align. See Arena.ResizeAligned.
func (s *SafeArena) ResizeAligned(old []byte, n, align int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.ResizeAligned(old, n, align)
}

// Reset thread-safely releases every allocation.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Generic allocation functions for SafeArena

// SafeAlloc thread-safely returns a pointer to a zeroed T stored inside the arena.
func SafeAlloc[T any](s *SafeArena) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a zeroed slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeResizeSlice thread-safely resizes sl to n elements. See ResizeSlice.
func SafeResizeSlice[T any](s *SafeArena, sl []T, n int) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ResizeSlice(s.a, sl, n)
}
