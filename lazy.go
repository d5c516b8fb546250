package segtree

import (
	"fmt"
	"math/bits"
)

// LazyTree is a segment tree over a fixed domain [0,n) with range updates
// and range queries, both in O(log N). Updates are maps from the Action's
// map monoid; they are applied to a node's aggregate immediately but pushed
// to descendants only when a later operation needs to look inside, the usual
// lazy propagation arrangement.
//
// Buffer layout matches Tree: values in a flat buffer of length 2n, leaves
// at [n,2n). Pending maps live in a parallel buffer of length n covering the
// inner nodes, and a size table of the same length records how many real
// positions each inner node summarizes, which is what size-aware actions
// receive. Leaves always summarize exactly one position.
type LazyTree[F, V any, A Action[F, V]] struct {
	act  A
	data []V
	lazy []F
	size []int
	n    int
}

// NewLazy creates a LazyTree of the given size with every position holding
// the identity element. Map and element type have to be named explicitly,
//
//	lt := segtree.NewLazy[int, int](acts.SumAdd[int]{}, 100)
//
// the action is inferred. Negative sizes panic with ErrInvalidSize.
func NewLazy[F, V any, A Action[F, V]](act A, size int) *LazyTree[F, V, A] {
	if size < 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidSize, size))
	}
	data := make([]V, size<<1)
	for i := range data {
		data[i] = act.Identity()
	}
	t := &LazyTree[F, V, A]{act: act, data: data, n: size}
	t.initAux()
	return t
}

// LazyFromSlice creates a LazyTree holding the given values at positions
// 0,1,2,... The map type has to be named explicitly, the rest is inferred.
func LazyFromSlice[F, V any, A Action[F, V]](act A, values []V) *LazyTree[F, V, A] {
	n := len(values)
	data := make([]V, n<<1)
	for i := 0; i < n; i++ {
		data[i] = act.Identity()
	}
	copy(data[n:], values)
	t := &LazyTree[F, V, A]{act: act, data: data, n: n}
	t.initAux()
	for i := n - 1; i >= 1; i-- {
		t.data[i] = t.act.Combine(t.data[i<<1], t.data[i<<1|1])
	}
	return t
}

// initAux fills the pending buffer with identity maps and computes the size
// table bottom-up. Like the value buffer, slots of wrapped inner nodes get
// filled blindly; they are never read where their value could matter.
func (t *LazyTree[F, V, A]) initAux() {
	t.lazy = make([]F, t.n)
	for i := range t.lazy {
		t.lazy[i] = t.act.MapIdentity()
	}
	t.size = make([]int, t.n)
	for i := t.n - 1; i >= 1; i-- {
		t.size[i] = t.sizeOf(i<<1) + t.sizeOf(i<<1|1)
	}
}

// Len returns the number of elements.
func (t *LazyTree[F, V, A]) Len() int {
	return t.n
}

func (t *LazyTree[F, V, A]) sizeOf(i int) int {
	if i >= t.n {
		return 1
	}
	return t.size[i]
}

// sizeArg is what Apply receives for node i: the true segment size for
// size-aware actions, -1 for the rest.
func (t *LazyTree[F, V, A]) sizeArg(i int) int {
	if t.act.SizeAware() {
		return t.sizeOf(i)
	}
	return -1
}

// applyAt acts f on node i's aggregate and, for inner nodes, composes it
// into the pending slot for later pushing.
func (t *LazyTree[F, V, A]) applyAt(i int, f F) {
	t.data[i] = t.act.Apply(f, t.data[i], t.sizeArg(i))
	if i < t.n {
		t.lazy[i] = t.act.Compose(t.lazy[i], f)
	}
}

// propagateAt pushes the pending map of inner node i down to both children
// and resets the slot to the identity map.
func (t *LazyTree[F, V, A]) propagateAt(i int) {
	f := t.lazy[i]
	t.lazy[i] = t.act.MapIdentity()
	t.applyAt(i<<1, f)
	t.applyAt(i<<1|1, f)
}

func (t *LazyTree[F, V, A]) propagateAll() {
	for i := 1; i < t.n; i++ {
		t.propagateAt(i)
	}
}

// recombineAt refreshes inner node i from its children. The node's own
// pending map is re-applied on top, so recombination stays correct even when
// ancestors were deliberately not flushed beforehand.
func (t *LazyTree[F, V, A]) recombineAt(i int) {
	t.data[i] = t.act.Apply(t.lazy[i], t.act.Combine(t.data[i<<1], t.data[i<<1|1]), t.sizeArg(i))
}

// propagateBoundary flushes the ancestor chains of the boundary node indices
// l and r (half-open, in buffer coordinates) top-down, stopping above each
// cursor's alignment level; deeper ancestors are walk fringe, not ancestors.
func (t *LazyTree[F, V, A]) propagateBoundary(l, r int) {
	for d := bits.Len(uint(l)) - 1; d > bits.TrailingZeros(uint(l)); d-- {
		t.propagateAt(l >> d)
	}
	for d := bits.Len(uint(r)) - 1; d > bits.TrailingZeros(uint(r)); d-- {
		t.propagateAt((r - 1) >> d)
	}
}

// recombineBoundary refreshes the same two chains bottom-up after deposits.
func (t *LazyTree[F, V, A]) recombineBoundary(l, r int) {
	for d := bits.TrailingZeros(uint(l)) + 1; d < bits.Len(uint(l)); d++ {
		t.recombineAt(l >> d)
	}
	for d := bits.TrailingZeros(uint(r)) + 1; d < bits.Len(uint(r)); d++ {
		t.recombineAt((r - 1) >> d)
	}
}

// RangeUpdate acts f on every position of rng. O(log N).
//
// The map is deposited on the covering buffer nodes. For a non-commutative
// map monoid the boundary ancestor chains are flushed first so deposits
// compose in chronological order; commutative maps skip the flush, and the
// re-applying recombination keeps ancestor aggregates exact regardless.
func (t *LazyTree[F, V, A]) RangeUpdate(rng Range[int], f F) {
	start, end := rng.clip(0, t.n)
	if start >= end {
		return
	}
	lb := t.n + start
	rb := t.n + end

	if !t.act.MapCommutative() {
		t.propagateBoundary(lb, rb)
	}

	for l, r := lb, rb; l < r; l, r = l>>1, r>>1 {
		if l&1 == 1 {
			t.applyAt(l, f)
			l++
		}
		if r&1 == 1 {
			r--
			t.applyAt(r, f)
		}
	}

	t.recombineBoundary(lb, rb)
}

// RangeQuery folds the elements of rng in document order and returns the
// result. An empty range yields the identity element. O(log N).
//
// Boundary ancestor chains are always flushed first: partial folds read
// node aggregates whose positions extend beyond the query range, and stale
// pending maps above them cannot be factored out of such a read.
func (t *LazyTree[F, V, A]) RangeQuery(rng Range[int]) V {
	start, end := rng.clip(0, t.n)
	if start >= end {
		return t.act.Identity()
	}
	l := t.n + start
	r := t.n + end
	t.propagateBoundary(l, r)

	l >>= bits.TrailingZeros(uint(l))
	r >>= bits.TrailingZeros(uint(r))
	accL, accR := t.act.Identity(), t.act.Identity()
	for {
		if l >= r {
			accL = t.act.Combine(accL, t.data[l])
			l++
			l >>= bits.TrailingZeros(uint(l))
		} else {
			r--
			accR = t.act.Combine(t.data[r], accR)
			r >>= bits.TrailingZeros(uint(r))
		}
		if l == r {
			break
		}
	}
	return t.act.Combine(accL, accR)
}

// PointUpdate acts f on the single position i, a one-position RangeUpdate.
func (t *LazyTree[F, V, A]) PointUpdate(i int, f F) {
	t.checkIndex(i)
	j := t.n + i
	if !t.act.MapCommutative() {
		t.propagateChain(j)
	}
	t.applyAt(j, f)
	for d := 1; d < bits.Len(uint(j)); d++ {
		t.recombineAt(j >> d)
	}
}

// PointUpdateWith replaces the element at position i with fn applied to the
// current element. The ancestor chain is always flushed first: fn sees the
// exact element, and its result must not have stale maps re-applied.
func (t *LazyTree[F, V, A]) PointUpdateWith(i int, fn func(V) V) {
	t.checkIndex(i)
	j := t.n + i
	t.propagateChain(j)
	t.data[j] = fn(t.data[j])
	for d := 1; d < bits.Len(uint(j)); d++ {
		t.recombineAt(j >> d)
	}
}

// PointQuery returns the element at position i. O(log N).
func (t *LazyTree[F, V, A]) PointQuery(i int) V {
	t.checkIndex(i)
	j := t.n + i
	t.propagateChain(j)
	return t.data[j]
}

// propagateChain flushes every strict ancestor of buffer index j, top-down.
func (t *LazyTree[F, V, A]) propagateChain(j int) {
	for d := bits.Len(uint(j)) - 1; d >= 1; d-- {
		t.propagateAt(j >> d)
	}
}

// Each calls fn for every (position, element) pair in document order until
// fn returns false. All pending maps are flushed down to the leaves first.
func (t *LazyTree[F, V, A]) Each(fn func(i int, v V) bool) {
	t.propagateAll()
	for i := 0; i < t.n; i++ {
		if !fn(i, t.data[t.n+i]) {
			return
		}
	}
}

// Values returns a copy of all elements in document order. All pending maps
// are flushed down to the leaves first.
func (t *LazyTree[F, V, A]) Values() []V {
	t.propagateAll()
	values := make([]V, t.n)
	copy(values, t.data[t.n:])
	return values
}

func (t *LazyTree[F, V, A]) checkIndex(i int) {
	if i < 0 || i >= t.n {
		panic(fmt.Errorf("%w: %d of %d", ErrIndexOutOfBounds, i, t.n))
	}
}
