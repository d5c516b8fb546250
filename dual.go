package segtree

import (
	"fmt"
	"math/bits"
)

// DualTree is a segment tree over a fixed domain [0,n) with range updates
// and point queries. It is the mirror image of Tree: instead of aggregating
// values upwards it scatters update maps downwards, and never recombines.
//
// The algebra is a monoid of update maps; Combine(prev, next) composes two
// maps with prev applied first. RangeUpdate deposits the map on the O(log N)
// buffer nodes covering the range, and PointQuery composes everything stored
// on the leaf-to-root path of a position. A non-commutative map monoid works
// because pending maps are flushed to the children of every boundary ancestor
// before a new deposit, keeping maps ordered oldest-deepest along every path.
type DualTree[F any, M Monoid[F]] struct {
	alg  M
	data []F
	n    int
}

// NewDual creates a DualTree of the given size with every position holding
// the identity map. The map type has to be named explicitly, the algebra is
// inferred. Negative sizes panic with ErrInvalidSize.
func NewDual[F any, M Monoid[F]](alg M, size int) *DualTree[F, M] {
	if size < 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidSize, size))
	}
	data := make([]F, size<<1)
	for i := range data {
		data[i] = alg.Identity()
	}
	return &DualTree[F, M]{alg: alg, data: data, n: size}
}

// DualFromSlice creates a DualTree whose positions hold the given maps.
// No aggregation takes place; inner nodes start out with the identity map.
func DualFromSlice[F any, M Monoid[F]](alg M, values []F) *DualTree[F, M] {
	n := len(values)
	data := make([]F, n<<1)
	for i := 0; i < n; i++ {
		data[i] = alg.Identity()
	}
	copy(data[n:], values)
	return &DualTree[F, M]{alg: alg, data: data, n: n}
}

// Len returns the number of elements.
func (t *DualTree[F, M]) Len() int {
	return t.n
}

// propagateAt flushes the pending map of inner node i to both children and
// resets the slot to the identity map. The parent's map is the newer one on
// both paths, so it composes on the right.
func (t *DualTree[F, M]) propagateAt(i int) {
	assert(i<<1|1 < len(t.data), "dual propagate: node has no children")
	f := t.data[i]
	t.data[i] = t.alg.Identity()
	t.data[i<<1] = t.alg.Combine(t.data[i<<1], f)
	t.data[i<<1|1] = t.alg.Combine(t.data[i<<1|1], f)
}

func (t *DualTree[F, M]) propagateAll() {
	for i := 1; i < t.n; i++ {
		t.propagateAt(i)
	}
}

// RangeUpdate composes f onto every position of rng, i.e. a[i] <- a[i]·f for
// i in rng. O(log N).
//
// The map is deposited on the covering buffer nodes. If the map monoid is not
// commutative, all ancestors of the two stripped boundary cursors are flushed
// top-down first; every node the deposit walk touches sits below one of those
// chains, so deposits always land on slots with no pending ancestor.
func (t *DualTree[F, M]) RangeUpdate(rng Range[int], f F) {
	start, end := rng.clip(0, t.n)
	if start >= end {
		return
	}
	l := t.n + start
	r := t.n + end
	l >>= bits.TrailingZeros(uint(l))
	r >>= bits.TrailingZeros(uint(r))

	if !t.alg.Commutative() {
		for d := bits.Len(uint(l)) - 1; d >= 1; d-- {
			t.propagateAt(l >> d)
		}
		for d := bits.Len(uint(r)) - 1; d >= 1; d-- {
			t.propagateAt(r >> d)
		}
	}

	for {
		if l >= r {
			t.data[l] = t.alg.Combine(t.data[l], f)
			l++
			l >>= bits.TrailingZeros(uint(l))
		} else {
			r--
			t.data[r] = t.alg.Combine(t.data[r], f)
			r >>= bits.TrailingZeros(uint(r))
		}
		if l == r {
			break
		}
	}
}

// PointUpdate composes f onto the single position i: a[i] <- a[i]·f.
// O(1) for commutative map monoids, O(log N) otherwise.
func (t *DualTree[F, M]) PointUpdate(i int, f F) {
	t.checkIndex(i)
	j := t.n + i
	if !t.alg.Commutative() {
		for d := bits.Len(uint(j)) - 1; d >= 1; d-- {
			t.propagateAt(j >> d)
		}
	}
	t.data[j] = t.alg.Combine(t.data[j], f)
}

// PointQuery returns the map accumulated at position i: the composition of
// every update whose range covered i, oldest first.
//
// Deposits with clean ancestors plus top-down flushing order pending maps
// oldest-deepest along each path, so the fold walks leaf to root.
func (t *DualTree[F, M]) PointQuery(i int) F {
	t.checkIndex(i)
	res := t.alg.Identity()
	for j := t.n + i; j >= 1; j >>= 1 {
		res = t.alg.Combine(res, t.data[j])
	}
	return res
}

// Each calls fn for every (position, map) pair in document order until fn
// returns false. All pending maps are flushed down to the leaves first.
func (t *DualTree[F, M]) Each(fn func(i int, f F) bool) {
	t.propagateAll()
	for i := 0; i < t.n; i++ {
		if !fn(i, t.data[t.n+i]) {
			return
		}
	}
}

// Values returns a copy of all accumulated maps in document order. All
// pending maps are flushed down to the leaves first.
func (t *DualTree[F, M]) Values() []F {
	t.propagateAll()
	values := make([]F, t.n)
	copy(values, t.data[t.n:])
	return values
}

func (t *DualTree[F, M]) checkIndex(i int) {
	if i < 0 || i >= t.n {
		panic(fmt.Errorf("%w: %d of %d", ErrIndexOutOfBounds, i, t.n))
	}
}

// PointQueryWith returns fn applied to the map accumulated at position i.
// It exists for deriving a result of a different type in one call, say
// evaluating an affine map at a probe value.
func PointQueryWith[F any, M Monoid[F], R any](t *DualTree[F, M], i int, fn func(F) R) R {
	return fn(t.PointQuery(i))
}
