// Package arena implements a linear (bump pointer) allocator for Go over a
// single, fixed-size buffer owned by the caller.
//
// # Overview
//
// A linear allocator hands out consecutive, aligned pieces of one buffer
// and frees them all at once. It suits memory whose lifetime is a phase:
//
//   - Request-scoped scratch space in servers
//   - Per-frame or per-pass buffers that are thrown away together
//   - Token and node storage for a single parse
//
// Individual allocations cannot be freed; Reset releases everything.
// The arena never grows its buffer: when space runs out, allocation fails
// with ErrOutOfMemory.
//
// # Basic Usage
//
//	buf := make([]byte, 64<<10)      // or mem.Heap / mem.Map
//	a := arena.New(buf)
//
//	// Allocate raw bytes (zeroed, 16-byte aligned on 64-bit)
//	b, err := a.AllocBytes(1024)
//	if errors.Is(err, arena.ErrOutOfMemory) {
//		// retry after Reset, or use a bigger buffer
//	}
//
//	// Allocate typed values
//	ptr, err := arena.Alloc[MyStruct](a)
//	nums, err := arena.AllocSlice[int](a, 100)
//
//	// Grow the most recent allocation without copying
//	b, err = a.Resize(b, 4096)
//
//	// Reuse the whole buffer (O(1))
//	a.Reset()
//
// # Resizing
//
// Resize extends or shrinks the most recent allocation in place by moving
// the bump pointer, zeroing only the bytes it adds. Resizing an older
// allocation allocates a new region and copies the common prefix; the old
// region stays intact until Reset.
//
// # Contract Violations
//
// A non power-of-two alignment, a negative size, or a slice passed to
// Resize that does not start inside the arena's buffer is a programming
// error. These panic with a value for which IsContractViolation reports
// true; they are never returned as errors.
//
// # Thread Safety
//
// Arena is not thread-safe. Use one arena per goroutine, or SafeArena,
// which serializes every call with a mutex:
//
//	s := arena.NewSafeArena(buf)
//	b, err := s.AllocBytes(1024)
//
// # Memory Contents
//
//   - Every allocation is zeroed when it is handed out
//   - Reset and shrinking do not clear memory; stale slices read
//     unspecified data, not zeros
//   - Types stored with Alloc or AllocSlice must not contain Go pointers,
//     since the garbage collector does not scan the buffer
//
// # Metrics and Monitoring
//
//	m := a.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("In place resizes: %d, copies: %d\n", m.InPlaceResizes, m.CopyResizes)
package arena
