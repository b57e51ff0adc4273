package arena_test

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	arena "github.com/pavanmanishd/go-arena"
	"github.com/pavanmanishd/go-arena/mem"
)

var sink []byte

// BenchmarkAllocationSizes compares bump allocation against make for
// small, medium and large requests.
func BenchmarkAllocationSizes(b *testing.B) {
	sizes := []int{8, 64, 512, 4096, 64 * 1024}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Arena_%dB", size), func(b *testing.B) {
			a := arena.New(mem.Heap(1 << 20).Bytes())
			b.SetBytes(int64(size))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				buf, err := a.AllocBytes(size)
				if err != nil {
					a.Reset()
					buf, _ = a.AllocBytes(size)
				}
				buf[0] = byte(i)
			}
		})

		b.Run(fmt.Sprintf("Builtin_%dB", size), func(b *testing.B) {
			b.SetBytes(int64(size))
			for i := 0; i < b.N; i++ {
				sink = make([]byte, size)
				sink[0] = byte(i)
			}
		})
	}
}

// BenchmarkResizePatterns measures growing a buffer by doubling: in place
// when it stays the latest allocation, copied when it has been overtaken.
func BenchmarkResizePatterns(b *testing.B) {
	b.Run("Arena_InPlace", func(b *testing.B) {
		a := arena.New(mem.Heap(1 << 16).Bytes())
		for i := 0; i < b.N; i++ {
			buf, _ := a.AllocBytes(16)
			for n := 32; n <= 1<<14; n *= 2 {
				buf, _ = a.Resize(buf, n)
			}
			a.Reset()
		}
	})

	b.Run("Arena_Copy", func(b *testing.B) {
		a := arena.New(mem.Heap(1 << 16).Bytes())
		for i := 0; i < b.N; i++ {
			buf, _ := a.AllocBytes(16)
			for n := 32; n <= 1<<14; n *= 2 {
				a.AllocBytes(1) // buf is no longer the latest
				buf, _ = a.Resize(buf, n)
			}
			a.Reset()
		}
	})

	b.Run("Builtin_Append", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			buf := make([]byte, 16)
			for n := 32; n <= 1<<14; n *= 2 {
				buf = append(buf, make([]byte, n-len(buf))...)
			}
			sink = buf
		}
	})
}

// BenchmarkRealisticUsage tests scenarios where arena should excel
func BenchmarkRealisticUsage(b *testing.B) {
	type record struct {
		ID    int64
		Score float64
		Data  [48]byte // Total 64 bytes
	}

	// Many small allocations with periodic cleanup
	b.Run("ManySmallAllocs/Arena", func(b *testing.B) {
		a := arena.New(mem.Heap(64 * 1024).Bytes())
		for i := 0; i < b.N; i++ {
			for j := 0; j < 100; j++ {
				a.AllocBytes(64)
			}
			// simulates request cleanup
			a.Reset()
		}
	})

	b.Run("ManySmallAllocs/Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			objects := make([][]byte, 100)
			for j := range objects {
				objects[j] = make([]byte, 64)
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	b.Run("StructAllocs/Arena", func(b *testing.B) {
		a := arena.New(mem.Heap(64 * 1024).Bytes())
		for i := 0; i < b.N; i++ {
			for j := 0; j < 50; j++ {
				r, _ := arena.Alloc[record](a)
				r.ID = int64(j)
			}
			a.Reset()
		}
	})

	b.Run("StructAllocs/Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			records := make([]*record, 50)
			for j := range records {
				records[j] = &record{ID: int64(j)}
			}
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})

	// Request handler: headers, body, response and scratch space per request
	b.Run("RequestHandler/Arena", func(b *testing.B) {
		a := arena.New(mem.Heap(8192).Bytes())
		for i := 0; i < b.N; i++ {
			offsets, _ := arena.AllocSlice[int32](a, 20)
			body, _ := a.AllocBytes(1024)
			resp, _ := a.AllocBytes(2048)
			scratch, _ := arena.AllocSlice[int64](a, 50)
			offsets[0], body[0], resp[0], scratch[0] = 1, 2, 3, 4
			a.Reset()
		}
	})

	b.Run("RequestHandler/Builtin", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			offsets := make([]int32, 20)
			body := make([]byte, 1024)
			resp := make([]byte, 2048)
			scratch := make([]int64, 50)
			offsets[0], body[0], resp[0], scratch[0] = 1, 2, 3, 4
			if i%10 == 0 {
				runtime.GC()
			}
		}
	})
}

// BenchmarkConcurrencyPatterns compares a shared SafeArena with one arena
// per goroutine.
func BenchmarkConcurrencyPatterns(b *testing.B) {
	b.Run("SafeArena_Parallel", func(b *testing.B) {
		s := arena.NewSafeArena(mem.Heap(1 << 20).Bytes())
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := s.AllocBytes(64); err != nil {
					s.Reset()
				}
			}
		})
	})

	b.Run("Arena_PerGoroutine", func(b *testing.B) {
		pool := sync.Pool{New: func() any {
			return arena.New(mem.Heap(64 * 1024).Bytes())
		}}
		b.RunParallel(func(pb *testing.PB) {
			a := pool.Get().(*arena.Arena)
			defer pool.Put(a)
			for pb.Next() {
				if _, err := a.AllocBytes(64); err != nil {
					a.Reset()
				}
			}
		})
	})

	b.Run("Builtin_Parallel", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			var local []byte
			for pb.Next() {
				local = make([]byte, 64)
			}
			_ = local
		})
	})
}

// BenchmarkWorstCase covers patterns a bump allocator handles poorly.
func BenchmarkWorstCase(b *testing.B) {
	// Large alignment wastes most of each stride
	b.Run("SparseAlignment", func(b *testing.B) {
		a := arena.New(mem.Heap(1 << 20).Bytes())
		for i := 0; i < b.N; i++ {
			if _, err := a.AllocAligned(1, 4096); err != nil {
				a.Reset()
			}
		}
	})

	// Allocations that barely fit exhaust the buffer every time
	b.Run("NearCapacity", func(b *testing.B) {
		a := arena.New(mem.Heap(4096).Bytes())
		for i := 0; i < b.N; i++ {
			a.AllocBytes(4000)
			if _, err := a.AllocBytes(4000); err == nil {
				b.Fatal("second allocation fit")
			}
			a.Reset()
		}
	})
}
