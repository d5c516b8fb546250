package segtree

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"math/bits"
)

// Tree is a segment tree over a fixed domain [0,n) with point updates and
// range queries. It aggregates under any Monoid, commutative or not.
//
// The zero Tree is a valid empty tree; every query on it returns the
// identity element of the (zero) algebra.
//
// Nodes live in a flat buffer of length 2n: leaves occupy [n,2n), inner node
// i summarizes its children 2i and 2i+1, and slot 0 is never read. No padding
// to a power of two takes place. For sizes that are not powers of two a few
// inner slots near the root summarize a wrapped span of leaves; the cursor
// walks below never visit such a slot in a position where its value could
// leak into a result.
type Tree[V any, M Monoid[V]] struct {
	alg  M
	data []V
	n    int
}

// New creates a Tree of the given size with every position holding the
// identity element. The element type has to be named explicitly,
//
//	tree := segtree.New[int](ops.Add[int]{}, 7)
//
// while the algebra is inferred from the argument. Negative sizes panic with
// ErrInvalidSize.
func New[V any, M Monoid[V]](alg M, size int) *Tree[V, M] {
	if size < 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidSize, size))
	}
	data := make([]V, size<<1)
	for i := range data {
		data[i] = alg.Identity()
	}
	return &Tree[V, M]{alg: alg, data: data, n: size}
}

// FromSlice creates a Tree holding the given values at positions 0,1,2,...
// The values slice is not retained.
func FromSlice[V any, M Monoid[V]](alg M, values []V) *Tree[V, M] {
	n := len(values)
	data := make([]V, n<<1)
	for i := 0; i < n; i++ {
		data[i] = alg.Identity()
	}
	copy(data[n:], values)
	t := &Tree[V, M]{alg: alg, data: data, n: n}
	t.build()
	return t
}

// build recomputes every inner node bottom-up. Blindly walking i from n-1
// down to 1 also fills the wrapped slots; their values are never read in a
// context where wrapping matters.
func (t *Tree[V, M]) build() {
	for i := t.n - 1; i >= 1; i-- {
		t.data[i] = t.alg.Combine(t.data[i<<1], t.data[i<<1|1])
	}
}

// Len returns the number of elements.
func (t *Tree[V, M]) Len() int {
	return t.n
}

// PointQuery returns the element at position i.
func (t *Tree[V, M]) PointQuery(i int) V {
	t.checkIndex(i)
	return t.data[t.n+i]
}

// PointUpdate replaces the element at position i, then recombines every
// ancestor bottom-up. O(log N).
func (t *Tree[V, M]) PointUpdate(i int, v V) {
	t.checkIndex(i)
	j := t.n + i
	t.data[j] = v
	for j >>= 1; j >= 1; j >>= 1 {
		t.data[j] = t.alg.Combine(t.data[j<<1], t.data[j<<1|1])
	}
}

// PointUpdateWith replaces the element at position i with fn applied to the
// current element.
func (t *Tree[V, M]) PointUpdateWith(i int, fn func(V) V) {
	t.PointUpdate(i, fn(t.PointQuery(i)))
}

// RangeQuery folds the elements of rng with the algebra's Combine and
// returns the result; the fold respects document order, so non-commutative
// algebras are safe. An empty range yields the identity element. O(log N).
//
// The walk strips trailing zero bits off both cursors and then moves the left
// cursor up-and-right and the right cursor up-and-left, collecting a left and
// a right partial that are only joined at the very end.
func (t *Tree[V, M]) RangeQuery(rng Range[int]) V {
	start, end := rng.clip(0, t.n)
	if start >= end {
		return t.alg.Identity()
	}
	l := t.n + start
	r := t.n + end
	l >>= bits.TrailingZeros(uint(l))
	r >>= bits.TrailingZeros(uint(r))
	accL, accR := t.alg.Identity(), t.alg.Identity()
	for {
		if l >= r {
			accL = t.alg.Combine(accL, t.data[l])
			l++
			l >>= bits.TrailingZeros(uint(l))
		} else {
			r--
			accR = t.alg.Combine(t.data[r], accR)
			r >>= bits.TrailingZeros(uint(r))
		}
		if l == r {
			break
		}
	}
	return t.alg.Combine(accL, accR)
}

// PartitionEnd returns the largest index end such that
//
//	pred(t.RangeQuery(Span(start, i))) == true   for all i in [start, end]
//	pred(t.RangeQuery(Span(start, i))) == false  for all i in (end, N]
//
// It is the segment tree analogue of a partition-point search on prefix
// folds, in O(log N) instead of O(N log N).
//
// pred must hold for the identity element and must be monotone: once false
// for some prefix it stays false for every longer one. The result is
// unspecified if either is violated.
//
// The search first extends the window greedily by the largest aligned
// power-of-two segment for which pred still holds, then descends into the
// first segment where it fails, halving the step width.
func (t *Tree[V, M]) PartitionEnd(start int, pred func(V) bool) int {
	if start < 0 || start > t.n {
		panic(fmt.Errorf("%w: start %d of %d", ErrIndexOutOfBounds, start, t.n))
	}
	if start == t.n {
		return t.n
	}

	i := t.n + start
	segment := 1 << bits.TrailingZeros(uint(i))
	i >>= bits.TrailingZeros(uint(i))
	combined := t.alg.Identity()

	var tmp V
	for start+segment <= t.n {
		tmp = t.alg.Combine(combined, t.data[i])
		if !pred(tmp) {
			break
		}
		combined = tmp
		start += segment
		i++
		segment <<= bits.TrailingZeros(uint(i))
		i >>= bits.TrailingZeros(uint(i))
	}
	if start == t.n {
		return t.n
	}

	i = t.n + start
	shift := min(ilog2(t.n-start), bits.TrailingZeros(uint(i)))
	i >>= shift
	segment = 1 << shift
	for {
		tmp = t.alg.Combine(combined, t.data[i])
		if start+segment <= t.n && pred(tmp) {
			combined = tmp
			start += segment
			i++
		}
		i <<= 1
		segment >>= 1
		if i >= t.n<<1 {
			break
		}
	}
	return start
}

// PartitionStart returns the smallest index start such that
//
//	pred(t.RangeQuery(Span(i, end))) == true   for all i in [start, end]
//	pred(t.RangeQuery(Span(i, end))) == false  for all i in [0, start)
//
// the mirror image of PartitionEnd, searching suffix folds that grow
// leftwards from end. The same preconditions on pred apply. O(log N).
func (t *Tree[V, M]) PartitionStart(end int, pred func(V) bool) int {
	if end < 0 || end > t.n {
		panic(fmt.Errorf("%w: end %d of %d", ErrIndexOutOfBounds, end, t.n))
	}
	if end == 0 {
		return 0
	}

	i := t.n + end
	segment := 1 << bits.TrailingZeros(uint(i))
	i >>= bits.TrailingZeros(uint(i))
	combined := t.alg.Identity()

	var tmp V
	for end >= segment {
		tmp = t.alg.Combine(t.data[i-1], combined)
		if !pred(tmp) {
			break
		}
		combined = tmp
		end -= segment
		i--
		segment <<= bits.TrailingZeros(uint(i))
		i >>= bits.TrailingZeros(uint(i))
	}
	if end == 0 {
		return 0
	}

	i = t.n + end
	shift := min(ilog2(end), bits.TrailingZeros(uint(i)))
	i >>= shift
	segment = 1 << shift
	for {
		tmp = t.alg.Combine(t.data[i-1], combined)
		if end >= segment && pred(tmp) {
			combined = tmp
			end -= segment
			i--
		}
		i <<= 1
		segment >>= 1
		if i > t.n<<1 {
			break
		}
	}
	return end
}

// Each calls fn for every (position, element) pair in document order until fn
// returns false.
func (t *Tree[V, M]) Each(fn func(i int, v V) bool) {
	for i := 0; i < t.n; i++ {
		if !fn(i, t.data[t.n+i]) {
			return
		}
	}
}

// Values returns a copy of all elements in document order.
func (t *Tree[V, M]) Values() []V {
	values := make([]V, t.n)
	copy(values, t.data[t.n:])
	return values
}

func (t *Tree[V, M]) checkIndex(i int) {
	if i < 0 || i >= t.n {
		panic(fmt.Errorf("%w: %d of %d", ErrIndexOutOfBounds, i, t.n))
	}
}

// ilog2 is the floored base-2 logarithm; x must be positive.
func ilog2(x int) int {
	return bits.Len(uint(x)) - 1
}
