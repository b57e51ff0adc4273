package arena

import "unsafe"

// DefaultAlignment is the alignment used when none is given: twice the
// pointer width, 16 bytes on 64-bit targets.
const DefaultAlignment = int(2 * unsafe.Sizeof(uintptr(0)))

// IsPowerOfTwo reports whether n&(n-1) == 0. It is also true for 0, which
// is never a valid alignment.
func IsPowerOfTwo(n uintptr) bool {
	return n&(n-1) == 0
}

// AlignForward returns the smallest multiple of align that is >= addr.
// align must be a non-zero power of two.
func AlignForward(addr, align uintptr) uintptr {
	if align == 0 || !IsPowerOfTwo(align) {
		violation("arena: alignment %d is not a power of two", align)
	}
	// same as addr % align, without the division
	if mod := addr & (align - 1); mod != 0 {
		addr += align - mod
	}
	return addr
}

// checkAlign validates a caller supplied alignment.
func checkAlign(align int) {
	if align <= 0 || !IsPowerOfTwo(uintptr(align)) {
		violation("arena: alignment %d is not a power of two", align)
	}
}
