// Package mem acquires backing buffers for arenas. An arena borrows its
// buffer; a Region owns one and releases it on Close.
package mem

import (
	"math"
	"unsafe"
)

// Alignment of the first byte of every Region.
const Alignment = 64

// Region is a block of memory with an explicit owner.
type Region interface {
	// Bytes returns the region's memory, or nil after Close.
	Bytes() []byte
	// Close releases the memory. Slices obtained from Bytes, and any arena
	// built over them, must not be used afterwards. Close is idempotent.
	Close() error
}

type heapRegion struct {
	buf []byte
}

// Heap returns a Region of n bytes on the Go heap whose first byte is
// aligned to Alignment. A size that cannot be padded for alignment without
// overflowing int yields an empty region.
func Heap(n int) Region {
	if n <= 0 || n > math.MaxInt-(Alignment-1) {
		return &heapRegion{}
	}
	raw := make([]byte, n+Alignment-1)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := int(roundUp(addr, Alignment) - addr)
	return &heapRegion{buf: raw[off : off+n : off+n]}
}

func (r *heapRegion) Bytes() []byte { return r.buf }

func (r *heapRegion) Close() error {
	r.buf = nil
	return nil
}

func roundUp(v, align uintptr) uintptr {
	return (v + align - 1) &^ (align - 1)
}
