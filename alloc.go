package arena

import (
	"math"
	"unsafe"
)

// Alloc returns a pointer to a zeroed T stored inside the arena, aligned
// for T. T must not contain Go pointers: the garbage collector does not
// scan the arena's buffer.
func Alloc[T any](a *Arena) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	b, err := a.AllocAligned(size, alignOf[T]())
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return &zero, nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice allocates a zeroed slice of n elements of type T inside the
// arena. Returns nil, nil if n == 0.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	if n < 0 {
		violation("arena: negative slice length %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	size, ok := sizeOf[T](n)
	if !ok {
		return nil, a.fail(math.MaxInt, alignOf[T](), a.currOffset)
	}
	b, err := a.AllocAligned(size, alignOf[T]())
	if err != nil {
		return nil, err
	}
	return bytesAs[T](b, n), nil
}

// ResizeSlice resizes s, which must come from the arena, to n elements.
// It follows the rules of Arena.ResizeAligned: s is extended in place if
// it is the most recent allocation and copied otherwise.
func ResizeSlice[T any](a *Arena, s []T, n int) ([]T, error) {
	if n < 0 {
		violation("arena: negative slice length %d", n)
	}
	size, ok := sizeOf[T](n)
	if !ok {
		return nil, a.fail(math.MaxInt, alignOf[T](), a.currOffset)
	}
	var old []byte
	if oldSize, _ := sizeOf[T](len(s)); oldSize > 0 {
		old = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), oldSize)
	}
	b, err := a.ResizeAligned(old, size, alignOf[T]())
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return bytesAs[T](b, n), nil
}

// AllocString copies s into the arena and returns the copy.
func AllocString(a *Arena, s string) (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	b, err := a.AllocAligned(len(s), 1)
	if err != nil {
		return "", err
	}
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

func alignOf[T any]() int {
	var zero T
	if al := int(unsafe.Alignof(zero)); al > 0 {
		return al
	}
	return 1
}

// sizeOf returns the byte size of n elements of T, or false on overflow.
func sizeOf[T any](n int) (int, bool) {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem > 0 && n > math.MaxInt/elem {
		return 0, false
	}
	return elem * n, true
}

func bytesAs[T any](b []byte, n int) []T {
	if len(b) == 0 {
		// zero-sized element type
		return make([]T, n)
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
