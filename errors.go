package arena

import "github.com/cockroachdb/errors"

// ErrOutOfMemory is returned when a request does not fit in the space left
// in the arena. It is recoverable: the arena is unchanged, and the caller
// may Reset or fall back to a larger arena.
var ErrOutOfMemory = errors.New("arena: out of memory")

// IsContractViolation reports whether v, typically a value obtained from
// recover(), is a contract violation raised by this package: a bad
// alignment, a negative size, or a slice that does not belong to the arena.
func IsContractViolation(v any) bool {
	err, ok := v.(error)
	return ok && errors.HasAssertionFailure(err)
}

// violation panics with an assertion failure. Contract violations are
// programming errors and are never returned as ordinary errors.
func violation(format string, args ...any) {
	panic(errors.AssertionFailedf(format, args...))
}

func outOfMemory(n, align, off, capacity int) error {
	return errors.Wrapf(ErrOutOfMemory, "alloc %d bytes (align %d) at offset %d of %d", n, align, off, capacity)
}
