//go:build unix

package mem

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// PageSize is the alignment of the first byte of a region returned by Map.
func PageSize() int { return unix.Getpagesize() }

type mappedRegion struct {
	buf []byte
}

// Map returns a Region of n bytes backed by an anonymous private mapping.
// The memory is page aligned, zeroed by the kernel, and outside the Go
// heap.
func Map(n int) (Region, error) {
	if n <= 0 {
		return &mappedRegion{}, nil
	}
	buf, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mem: mmap %d bytes", n)
	}
	return &mappedRegion{buf: buf}, nil
}

func (r *mappedRegion) Bytes() []byte { return r.buf }

func (r *mappedRegion) Close() error {
	if r.buf == nil {
		return nil
	}
	buf := r.buf
	r.buf = nil
	if err := unix.Munmap(buf); err != nil {
		return errors.Wrap(err, "mem: munmap")
	}
	return nil
}
