package arena

import (
	"unsafe"

	"golang.org/x/exp/slog"
)

// Arena is a linear allocator over a borrowed buffer. It never grows and
// never frees the buffer. Not goroutine-safe; use SafeArena or one arena
// per goroutine for concurrent access.
//
// The zero Arena is a valid arena of length zero.
type Arena struct {
	buf        []byte
	prevOffset int // start of the most recent allocation
	currOffset int // next free byte
	align      int
	log        *slog.Logger
	stats      stats
}

type stats struct {
	allocs   uint64
	inPlace  uint64
	copies   uint64
	failures uint64
	resets   uint64
}

// New returns an Arena that carves allocations out of buf.
// buf may be nil or empty, in which case every non-empty allocation fails.
func New(buf []byte, opts ...Option) *Arena {
	a := &Arena{align: DefaultAlignment}
	for _, opt := range opts {
		opt(a)
	}
	a.Init(buf)
	return a
}

// Init binds the arena to buf and zeroes both offsets. Options and
// counters are kept.
func (a *Arena) Init(buf []byte) {
	a.buf = buf[:len(buf):len(buf)]
	a.prevOffset = 0
	a.currOffset = 0
}

// AllocBytes returns n zeroed bytes aligned to the arena's default
// alignment, or an error matching ErrOutOfMemory.
func (a *Arena) AllocBytes(n int) ([]byte, error) {
	return a.AllocAligned(n, a.Alignment())
}

// AllocAligned returns n zeroed bytes whose address is a multiple of
// align. On failure neither offset moves.
func (a *Arena) AllocAligned(n, align int) ([]byte, error) {
	checkAlign(align)
	if n < 0 {
		violation("arena: negative allocation size %d", n)
	}

	base := a.base()
	off := int(AlignForward(base+uintptr(a.currOffset), uintptr(align)) - base)
	if off > len(a.buf) || n > len(a.buf)-off {
		return nil, a.fail(n, align, a.currOffset)
	}

	b := a.buf[off : off+n : off+n]
	clear(b)
	a.prevOffset = off
	a.currOffset = off + n
	a.stats.allocs++
	return b, nil
}

// Resize changes the size of old using the default alignment.
// See ResizeAligned.
func (a *Arena) Resize(old []byte, n int) ([]byte, error) {
	return a.ResizeAligned(old, n, a.Alignment())
}

// ResizeAligned returns a slice of n bytes holding the leading contents
// of old.
//
// An empty old is a plain allocation. If old is the most recent
// allocation, it is grown or shrunk in place and the same address is
// returned; bytes added by growing are zeroed, bytes released by
// shrinking are left as they are. Any other old is copied into a fresh
// allocation and stays valid, unchanged, at its original address.
//
// old must start inside the arena's buffer; anything else panics.
func (a *Arena) ResizeAligned(old []byte, n, align int) ([]byte, error) {
	checkAlign(align)
	if n < 0 {
		violation("arena: negative resize size %d", n)
	}
	if len(old) == 0 {
		return a.AllocAligned(n, align)
	}

	base := a.base()
	p := uintptr(unsafe.Pointer(unsafe.SliceData(old)))
	if p < base || p >= base+uintptr(len(a.buf)) {
		violation("arena: resize of %d bytes at %#x outside arena [%#x, %#x)",
			len(old), p, base, base+uintptr(len(a.buf)))
	}

	if p == base+uintptr(a.prevOffset) {
		return a.resizeInPlace(len(old), n, align)
	}

	b, err := a.AllocAligned(n, align)
	if err != nil {
		return nil, err
	}
	copy(b, old)
	a.stats.copies++
	if a.log != nil {
		a.log.Debug("arena: resize copied", "from", int(p-base), "to", a.prevOffset, "old", len(old), "new", n)
	}
	return b, nil
}

func (a *Arena) resizeInPlace(oldSize, n, align int) ([]byte, error) {
	prev := a.prevOffset
	if n > len(a.buf)-prev {
		return nil, a.fail(n, align, prev)
	}

	a.currOffset = prev + n
	if n > oldSize {
		clear(a.buf[prev+oldSize : prev+n])
	}
	a.stats.inPlace++
	return a.buf[prev : prev+n : prev+n], nil
}

// Reset makes the whole buffer available again. Contents are not cleared;
// bytes are zeroed when they are handed out next. Slices obtained before
// Reset must not be used afterwards.
func (a *Arena) Reset() {
	if a.log != nil {
		a.log.Debug("arena: reset", "released", a.currOffset, "capacity", len(a.buf))
	}
	a.prevOffset = 0
	a.currOffset = 0
	a.stats.resets++
}

// Offset returns the bump pointer: the offset of the next free byte.
func (a *Arena) Offset() int { return a.currOffset }

// PrevOffset returns the offset of the most recent allocation, or 0 if
// none was made since the last Reset.
func (a *Arena) PrevOffset() int { return a.prevOffset }

// Len returns the length of the backing buffer.
func (a *Arena) Len() int { return len(a.buf) }

// Alignment returns the default alignment used by AllocBytes and Resize.
func (a *Arena) Alignment() int {
	if a.align == 0 {
		return DefaultAlignment
	}
	return a.align
}

// OffsetOf returns the offset of b's first byte within the arena's buffer.
// ok is false if b is empty or does not start inside the buffer.
func (a *Arena) OffsetOf(b []byte) (off int, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	base := a.base()
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < base || p >= base+uintptr(len(a.buf)) {
		return 0, false
	}
	return int(p - base), true
}

func (a *Arena) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))
}

func (a *Arena) fail(n, align, off int) error {
	a.stats.failures++
	if a.log != nil {
		a.log.Debug("arena: out of memory", "size", n, "align", align, "offset", off, "capacity", len(a.buf))
	}
	return outOfMemory(n, align, off, len(a.buf))
}
