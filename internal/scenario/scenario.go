// Package scenario holds end-to-end checks of the linear allocator that can
// run against any arena, whatever its buffer and default alignment.
package scenario

import (
	"bytes"

	"github.com/cockroachdb/errors"

	arena "github.com/pavanmanishd/go-arena"
)

// Scenario is a named sequence of arena operations with expectations.
// Scenarios run in order over one arena; each resets it as needed.
type Scenario struct {
	Name string
	Run  func(a *arena.Arena) error
}

// Result is the outcome of one scenario.
type Result struct {
	Name   string
	Err    error
	Offset int // bump pointer after the run
}

// MinCapacity is the smallest arena length All can run on for alignment u.
func MinCapacity(u int) int {
	return 17*u + 1
}

// Run executes every scenario in All against a and collects the results.
// A contract violation panic inside a scenario is reported as its error.
func Run(a *arena.Arena) []Result {
	all := All()
	results := make([]Result, 0, len(all))
	for _, sc := range all {
		err := runOne(sc, a)
		results = append(results, Result{Name: sc.Name, Err: err, Offset: a.Offset()})
	}
	return results
}

// Failed reports whether any result carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

func runOne(sc Scenario, a *arena.Arena) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if !arena.IsContractViolation(r) {
				panic(r)
			}
			err = errors.Wrapf(r.(error), "%s", sc.Name)
		}
	}()
	return sc.Run(a)
}

// All returns the scenarios in execution order.
func All() []Scenario {
	var first []byte

	return []Scenario{
		{"basic-alloc", func(a *arena.Arena) error {
			a.Reset()
			u := a.Alignment()
			b, err := a.AllocBytes(5 * u)
			if err != nil {
				return err
			}
			if err := expectOffset(a, b, 0); err != nil {
				return err
			}
			first = b
			return expectCurr(a, 5*u)
		}},
		{"grow-in-place", func(a *arena.Arena) error {
			u := a.Alignment()
			b, err := a.Resize(first, 10*u)
			if err != nil {
				return err
			}
			if !sameStart(b, first) {
				return errors.New("grow moved the allocation")
			}
			first = b
			return expectCurr(a, 10*u)
		}},
		{"shrink-in-place", func(a *arena.Arena) error {
			u := a.Alignment()
			b, err := a.Resize(first, 9*u)
			if err != nil {
				return err
			}
			if !sameStart(b, first) {
				return errors.New("shrink moved the allocation")
			}
			return expectCurr(a, 9*u)
		}},
		{"misaligned-shrink", func(a *arena.Arena) error {
			a.Reset()
			u := a.Alignment()
			b, err := a.AllocBytes(5*u + 1)
			if err != nil {
				return err
			}
			c, err := a.Resize(b, 5*u)
			if err != nil {
				return err
			}
			if !sameStart(b, c) {
				return errors.New("shrink moved the allocation")
			}
			return expectCurr(a, 5*u)
		}},
		{"multiple-alloc", func(a *arena.Arena) error {
			a.Reset()
			u := a.Alignment()
			var offs [3]int
			for i := range offs {
				b, err := a.AllocBytes(5*u + 1)
				if err != nil {
					return err
				}
				offs[i], _ = a.OffsetOf(b)
			}
			if d := offs[1] - offs[0]; d != 6*u {
				return errors.Newf("allocations %d bytes apart, want %d", d, 6*u)
			}
			return expectCurr(a, 17*u+1)
		}},
		{"over-allocation", func(a *arena.Arena) error {
			a.Reset()
			n := a.Len()
			if _, err := a.AllocBytes(n + 1); !errors.Is(err, arena.ErrOutOfMemory) {
				return errors.Newf("alloc of %d bytes: got %v, want out of memory", n+1, err)
			}
			b, err := a.AllocBytes(n)
			if err != nil {
				return err
			}
			prev, curr := a.PrevOffset(), a.Offset()
			if _, err := a.Resize(b, n+1); !errors.Is(err, arena.ErrOutOfMemory) {
				return errors.Newf("resize to %d bytes: got %v, want out of memory", n+1, err)
			}
			if a.PrevOffset() != prev || a.Offset() != curr {
				return errors.Newf("failed resize moved offsets to (%d, %d), want (%d, %d)",
					a.PrevOffset(), a.Offset(), prev, curr)
			}
			return nil
		}},
		{"stale-resize-copy", func(a *arena.Arena) error {
			a.Reset()
			want := []byte("123456789\x00")
			b, err := a.AllocBytes(len(want))
			if err != nil {
				return err
			}
			copy(b, want)
			if _, err := a.AllocBytes(1); err != nil {
				return err
			}
			c, err := a.Resize(b, 8)
			if err != nil {
				return err
			}
			if sameStart(b, c) {
				return errors.New("stale resize returned the original address")
			}
			if !bytes.Equal(c, want[:8]) {
				return errors.Newf("copied prefix %q, want %q", c, want[:8])
			}
			if !bytes.Equal(b, want) {
				return errors.Newf("original changed to %q", b)
			}
			return nil
		}},
		{"reset", func(a *arena.Arena) error {
			a.Reset()
			if a.Offset() != 0 || a.PrevOffset() != 0 {
				return errors.Newf("offsets (%d, %d) after reset", a.PrevOffset(), a.Offset())
			}
			b, err := a.AllocBytes(a.Len())
			if err != nil {
				return err
			}
			return expectOffset(a, b, 0)
		}},
	}
}

func expectCurr(a *arena.Arena, want int) error {
	if got := a.Offset(); got != want {
		return errors.Newf("offset %d, want %d", got, want)
	}
	return nil
}

func expectOffset(a *arena.Arena, b []byte, want int) error {
	off, ok := a.OffsetOf(b)
	if !ok {
		return errors.New("allocation outside the arena")
	}
	if off != want {
		return errors.Newf("allocated at offset %d, want %d", off, want)
	}
	return nil
}

func sameStart(a, b []byte) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
