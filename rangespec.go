package segtree

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Range selects a contiguous window of tree positions. The zero value selects
// everything; use the package-level constructors for anything narrower.
//
// A Range is half-open unless built with an *Incl constructor, and either
// bound may be left off to extend to the edge of the tree's domain. Ranges
// whose bounds land outside the domain are rejected by the receiving
// operation with ErrInvalidRange; ranges that are merely inverted (lower
// bound not below upper bound) are valid and empty.
type Range[I constraints.Signed] struct {
	lo, hi       I
	hasLo, hasHi bool
	inclHi       bool
}

// Span selects [lo, hi).
func Span[I constraints.Signed](lo, hi I) Range[I] {
	return Range[I]{lo: lo, hi: hi, hasLo: true, hasHi: true}
}

// SpanIncl selects [lo, hi].
func SpanIncl[I constraints.Signed](lo, hi I) Range[I] {
	return Range[I]{lo: lo, hi: hi, hasLo: true, hasHi: true, inclHi: true}
}

// From selects [lo, end of domain).
func From[I constraints.Signed](lo I) Range[I] {
	return Range[I]{lo: lo, hasLo: true}
}

// UpTo selects [start of domain, hi).
func UpTo[I constraints.Signed](hi I) Range[I] {
	return Range[I]{hi: hi, hasHi: true}
}

// UpToIncl selects [start of domain, hi].
func UpToIncl[I constraints.Signed](hi I) Range[I] {
	return Range[I]{hi: hi, hasHi: true, inclHi: true}
}

// All selects the whole domain.
func All[I constraints.Signed]() Range[I] {
	return Range[I]{}
}

func (r Range[I]) String() string {
	s := ".."
	if r.hasLo {
		s = fmt.Sprintf("%d..", r.lo)
	}
	if r.hasHi {
		if r.inclHi {
			s += fmt.Sprintf("=%d", r.hi)
		} else {
			s += fmt.Sprintf("%d", r.hi)
		}
	}
	return s
}

// clip resolves r against the domain [outerLo, outerHi) and returns the
// normalized half-open bounds. Missing bounds snap to the domain edges.
// Bounds outside the domain panic with ErrInvalidRange; an inverted result
// is returned as is and means empty.
func (r Range[I]) clip(outerLo, outerHi I) (I, I) {
	start := outerLo
	if r.hasLo {
		start = r.lo
	}
	end := outerHi
	if r.hasHi {
		end = r.hi
		if r.inclHi {
			if end+1 < end {
				panic(fmt.Errorf("%w: inclusive bound %d cannot be represented", ErrInvalidRange, end))
			}
			end++
		}
	}
	if start < outerLo || end > outerHi {
		panic(fmt.Errorf("%w: %s outside %d..%d", ErrInvalidRange, r, outerLo, outerHi))
	}
	return start, end
}
