package segtree

import (
	"fmt"
	"math/bits"
)

// AssignTree is a segment tree over a fixed domain [0,n) specializing in
// range assignment: RangeAssign overwrites every position of a range with a
// single value, RangeQuery folds a range, both in O(log N).
//
// Assignment does not go through a map monoid. The tree instead keeps a pool
// of doubled powers: every assignment of v appends v, v·v, (v·v)·(v·v), ...
// to the pool, one entry per tree level, and each covering node stores a
// pointer to the power matching its segment size. Propagating a node hands
// both children the preceding pool entry, which is exactly the half-size
// power. Once the pool holds bufLen entries the whole tree is flushed and
// recomputed and the pool is cleared, so pool memory stays proportional to
// the domain.
//
// Node aggregates are exact at all times; a pending pointer only marks the
// node's descendants as stale.
type AssignTree[V any, M Monoid[V]] struct {
	alg     M
	data    []V   // length bufLen + n + (n & 1)
	lazyPtr []int // length len(data) / 2, pool indices, nullPtr when clean
	pool    []V
	bufLen  int // next power of two >= n, the leaf base
	n       int
}

const nullPtr = -1

// NewAssign creates an AssignTree of the given size with every position
// holding the identity element. Negative sizes panic with ErrInvalidSize.
func NewAssign[V any, M Monoid[V]](alg M, size int) *AssignTree[V, M] {
	if size < 0 {
		panic(fmt.Errorf("%w: %d", ErrInvalidSize, size))
	}
	t := newAssignBuffers[V, M](alg, size)
	for i := range t.data {
		t.data[i] = alg.Identity()
	}
	return t
}

// AssignFromSlice creates an AssignTree holding the given values at
// positions 0,1,2,...
func AssignFromSlice[V any, M Monoid[V]](alg M, values []V) *AssignTree[V, M] {
	t := newAssignBuffers[V, M](alg, len(values))
	for i := 0; i < t.bufLen; i++ {
		t.data[i] = alg.Identity()
	}
	copy(t.data[t.bufLen:], values)
	if t.n&1 == 1 {
		t.data[len(t.data)-1] = alg.Identity()
	}
	t.recalculateAll()
	return t
}

// newAssignBuffers allocates the buffers for n elements. Leaves sit at
// [bufLen, bufLen+n); an identity pad leaf is appended when n is odd so that
// every leaf's parent has both children inside the buffer.
func newAssignBuffers[V any, M Monoid[V]](alg M, n int) *AssignTree[V, M] {
	bufLen := nextPow2(n)
	data := make([]V, bufLen+n+(n&1))
	lazyPtr := make([]int, len(data)>>1)
	for i := range lazyPtr {
		lazyPtr[i] = nullPtr
	}
	return &AssignTree[V, M]{
		alg:     alg,
		data:    data,
		lazyPtr: lazyPtr,
		pool:    make([]V, 0, bufLen+ilog2(n|1)),
		bufLen:  bufLen,
		n:       n,
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// Len returns the number of elements.
func (t *AssignTree[V, M]) Len() int {
	return t.n
}

// pushMap stamps node i with the pool entry at ptr. Leaves and dead slots
// have no pending slot of their own and just take the value.
func (t *AssignTree[V, M]) pushMap(i, ptr int) {
	if ptr == nullPtr {
		return
	}
	t.data[i] = t.pool[ptr]
	if i < len(t.lazyPtr) {
		t.lazyPtr[i] = ptr
	}
}

// propagateAt pushes the pending assignment of node i one level down. The
// children receive the preceding pool entry, the half-size power.
func (t *AssignTree[V, M]) propagateAt(i int) {
	ptr := t.lazyPtr[i]
	if ptr == nullPtr {
		return
	}
	t.lazyPtr[i] = nullPtr
	t.pushMap(i<<1, ptr-1)
	t.pushMap(i<<1|1, ptr-1)
}

func (t *AssignTree[V, M]) propagateAll() {
	for i := 1; i < len(t.data)>>1; i++ {
		t.propagateAt(i)
	}
}

func (t *AssignTree[V, M]) recalculateAt(i int) {
	t.data[i] = t.alg.Combine(t.data[i<<1], t.data[i<<1|1])
}

func (t *AssignTree[V, M]) recalculateAll() {
	for i := len(t.data)>>1 - 1; i >= 1; i-- {
		t.recalculateAt(i)
	}
}

// propagateBoundary flushes the ancestor chains of the boundary buffer
// indices l and r (half-open) top-down.
func (t *AssignTree[V, M]) propagateBoundary(l, r int) {
	for d := bits.Len(uint(l)) - 1; d > bits.TrailingZeros(uint(l)); d-- {
		t.propagateAt(l >> d)
	}
	for d := bits.Len(uint(r)) - 1; d > bits.TrailingZeros(uint(r)); d-- {
		t.propagateAt((r - 1) >> d)
	}
}

// recalculateBoundary refreshes the same two chains bottom-up.
func (t *AssignTree[V, M]) recalculateBoundary(l, r int) {
	for d := bits.TrailingZeros(uint(l)) + 1; d < bits.Len(uint(l)); d++ {
		t.recalculateAt(l >> d)
	}
	for d := bits.TrailingZeros(uint(r)) + 1; d < bits.Len(uint(r)); d++ {
		t.recalculateAt((r - 1) >> d)
	}
}

// RangeAssign overwrites every position of rng with v. O(log N) amortized;
// an assignment that fills the pool triggers an O(N) flush and rebuild.
func (t *AssignTree[V, M]) RangeAssign(rng Range[int], v V) {
	start, end := rng.clip(0, t.n)
	if start >= end {
		return
	}
	lb := t.bufLen + start
	rb := t.bufLen + end
	t.propagateBoundary(lb, rb)

	// Deposit the doubled powers on the covering nodes. One pool entry is
	// appended per level, then onward to the root, so that propagation
	// always finds the half-size power right below a node's own entry.
	pow := v
	l, r := lb, rb
	for l < r {
		t.pool = append(t.pool, pow)
		if l&1 == 1 {
			t.pushMap(l, len(t.pool)-1)
			l++
		}
		if r&1 == 1 {
			r--
			t.pushMap(r, len(t.pool)-1)
		}
		l >>= 1
		r >>= 1
		pow = t.alg.Combine(pow, pow)
	}
	for l > 1 {
		l >>= 1
		t.pool = append(t.pool, pow)
		pow = t.alg.Combine(pow, pow)
	}

	if len(t.pool) < t.bufLen {
		t.recalculateBoundary(lb, rb)
	} else {
		T().Debugf("assign pool filled (%d entries), flushing and rebuilding", len(t.pool))
		t.propagateAll()
		t.recalculateAll()
		t.pool = t.pool[:0]
	}
}

// RangeQuery folds the elements of rng in document order and returns the
// result. An empty range yields the identity element. O(log N).
func (t *AssignTree[V, M]) RangeQuery(rng Range[int]) V {
	start, end := rng.clip(0, t.n)
	if start >= end {
		return t.alg.Identity()
	}
	l := t.bufLen + start
	r := t.bufLen + end
	t.propagateBoundary(l, r)

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

// PointAssign overwrites the element at position i with v. O(log N).
func (t *AssignTree[V, M]) PointAssign(i int, v V) {
	t.checkIndex(i)
	j := t.bufLen + i
	t.propagateChain(j)
	t.data[j] = v
	for d := 1; d < bits.Len(uint(j)); d++ {
		t.recalculateAt(j >> d)
	}
}

// PointQuery returns the element at position i. O(log N).
func (t *AssignTree[V, M]) PointQuery(i int) V {
	t.checkIndex(i)
	j := t.bufLen + i
	t.propagateChain(j)
	return t.data[j]
}

// propagateChain flushes every strict ancestor of buffer index j, top-down.
func (t *AssignTree[V, M]) propagateChain(j int) {
	for d := bits.Len(uint(j)) - 1; d >= 1; d-- {
		t.propagateAt(j >> d)
	}
}

// Each calls fn for every (position, element) pair in document order until
// fn returns false. All pending assignments are flushed to the leaves first.
func (t *AssignTree[V, M]) Each(fn func(i int, v V) bool) {
	t.flush()
	for i := 0; i < t.n; i++ {
		if !fn(i, t.data[t.bufLen+i]) {
			return
		}
	}
}

// Values returns a copy of all elements in document order.
func (t *AssignTree[V, M]) Values() []V {
	t.flush()
	values := make([]V, t.n)
	copy(values, t.data[t.bufLen:t.bufLen+t.n])
	return values
}

// flush pushes all pending assignments to the leaves. No live pool pointers
// remain afterwards, so the pool is reclaimed as well.
func (t *AssignTree[V, M]) flush() {
	t.propagateAll()
	t.pool = t.pool[:0]
}

func (t *AssignTree[V, M]) checkIndex(i int) {
	if i < 0 || i >= t.n {
		panic(fmt.Errorf("%w: %d of %d", ErrIndexOutOfBounds, i, t.n))
	}
}
