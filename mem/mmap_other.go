//go:build !unix

package mem

// Map falls back to Heap where anonymous mappings are unavailable.
func Map(n int) (Region, error) {
	return Heap(n), nil
}

// PageSize is the alignment of the first byte of a region returned by Map.
func PageSize() int { return Alignment }
