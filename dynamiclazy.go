package segtree

import (
	"fmt"
	"math"
)

// DynamicLazyTree combines the sparse arena of DynamicTree with the lazy
// range updates of LazyTree: maps act on arbitrary sub-ranges of a signed
// integer domain [lo,hi) in O(log N) while memory grows only with the number
// of update operations. Unlike DynamicTree the arena nodes carry no
// positions; a node stands for its whole recursion interval, and an absent
// node stands for an interval still holding identity elements throughout.
//
// A node's aggregate is exact at all times. Its pending map has been applied
// to the aggregate already but not yet to the children, so recombination
// re-applies it on top and queries apply it to whatever part of the interval
// they fold. Queries never materialize nodes.
type DynamicLazyTree[F, V any, A Action[F, V]] struct {
	act    A
	nodes  []dlnode[F, V]
	lo, hi int64
}

// dlnode is an arena slot. Child links are arena indices; 0 means absent,
// since slot 0 is always the root and never anyone's child.
type dlnode[F, V any] struct {
	agg         V
	pending     F
	left, right int32
}

// NewDynamicLazy creates a DynamicLazyTree over the given domain. Every
// position initially holds the identity element. Returns nil if the domain
// is empty; the nil tree answers every query with the identity element,
// while updates on it panic. A size-aware action over a domain longer than the int range
// panics with ErrInvalidSize, since segment sizes could not be reported.
func NewDynamicLazy[F, V any, A Action[F, V]](act A, domain Range[int64]) *DynamicLazyTree[F, V, A] {
	return NewDynamicLazyWithCapacity[F, V, A](act, domain, 0)
}

// NewDynamicLazyWithCapacity creates a DynamicLazyTree with arena space for
// the expected number of updates, avoiding reallocation during use. Returns
// nil if the domain is empty.
func NewDynamicLazyWithCapacity[F, V any, A Action[F, V]](act A, domain Range[int64], capacity int) *DynamicLazyTree[F, V, A] {
	lo, hi := domain.clip(math.MinInt64, math.MaxInt64)
	if lo >= hi {
		return nil
	}
	if act.SizeAware() && uint64(hi)-uint64(lo) > math.MaxInt64 {
		panic(fmt.Errorf("%w: domain [%d,%d) too long for a size-aware action", ErrInvalidSize, lo, hi))
	}
	T().Debugf("new dynamic lazy tree over [%d,%d), arena capacity %d", lo, hi, capacity)
	t := &DynamicLazyTree[F, V, A]{
		act:   act,
		nodes: make([]dlnode[F, V], 0, capacity+1),
		lo:    lo,
		hi:    hi,
	}
	t.nodes = append(t.nodes, dlnode[F, V]{agg: act.Identity(), pending: act.MapIdentity()})
	return t
}

// Len returns the domain size, 0 for the nil tree.
func (t *DynamicLazyTree[F, V, A]) Len() uint64 {
	if t == nil {
		return 0
	}
	return uint64(t.hi) - uint64(t.lo)
}

func (t *DynamicLazyTree[F, V, A]) sizeArg(width int64) int {
	if t.act.SizeAware() {
		return int(width)
	}
	return -1
}

// leftOf returns node p's left child, materializing an identity node first
// if there is none yet.
func (t *DynamicLazyTree[F, V, A]) leftOf(p int32) int32 {
	if t.nodes[p].left == 0 {
		t.nodes[p].left = int32(len(t.nodes))
		t.nodes = append(t.nodes, dlnode[F, V]{agg: t.act.Identity(), pending: t.act.MapIdentity()})
	}
	return t.nodes[p].left
}

func (t *DynamicLazyTree[F, V, A]) rightOf(p int32) int32 {
	if t.nodes[p].right == 0 {
		t.nodes[p].right = int32(len(t.nodes))
		t.nodes = append(t.nodes, dlnode[F, V]{agg: t.act.Identity(), pending: t.act.MapIdentity()})
	}
	return t.nodes[p].right
}

// push hands node p's pending map down to both children, materializing them
// as needed. p covers [s,e).
func (t *DynamicLazyTree[F, V, A]) push(p int32, s, e int64) {
	m := midpoint(s, e)
	lp := t.leftOf(p)
	rp := t.rightOf(p)
	f := t.nodes[p].pending
	t.nodes[p].pending = t.act.MapIdentity()

	ln := &t.nodes[lp]
	ln.agg = t.act.Apply(f, ln.agg, t.sizeArg(m-s))
	ln.pending = t.act.Compose(ln.pending, f)
	rn := &t.nodes[rp]
	rn.agg = t.act.Apply(f, rn.agg, t.sizeArg(e-m))
	rn.pending = t.act.Compose(rn.pending, f)
}

// RangeUpdate acts f on every position of rng. O(log N); materializes at
// most O(log N) nodes.
func (t *DynamicLazyTree[F, V, A]) RangeUpdate(rng Range[int64], f F) {
	l, r := rng.clip(t.lo, t.hi)
	if l >= r {
		return
	}
	t.update(0, t.lo, t.hi, l, r, f)
}

// update acts f on [l,r), a non-empty sub-range of node p's interval [s,e).
func (t *DynamicLazyTree[F, V, A]) update(p int32, s, e, l, r int64, f F) {
	if l <= s && e <= r {
		nd := &t.nodes[p]
		nd.agg = t.act.Apply(f, nd.agg, t.sizeArg(e-s))
		nd.pending = t.act.Compose(nd.pending, f)
		return
	}

	// The deposit lands below this node. A non-commutative pending map has
	// to reach the children first, or it would end up composed after f.
	if !t.act.MapCommutative() {
		t.push(p, s, e)
	}
	m := midpoint(s, e)
	if l < m {
		t.update(t.leftOf(p), s, m, l, min(r, m), f)
	}
	if r > m {
		t.update(t.rightOf(p), m, e, max(l, m), r, f)
	}

	// re-take the pointer, the recursion may have grown the arena
	nd := &t.nodes[p]
	la, ra := t.act.Identity(), t.act.Identity()
	if nd.left != 0 {
		la = t.nodes[nd.left].agg
	}
	if nd.right != 0 {
		ra = t.nodes[nd.right].agg
	}
	nd.agg = t.act.Apply(nd.pending, t.act.Combine(la, ra), t.sizeArg(e-s))
}

// RangeQuery folds the elements of rng in document order and returns the
// result. An empty range yields the identity element. O(log N); never
// materializes nodes.
func (t *DynamicLazyTree[F, V, A]) RangeQuery(rng Range[int64]) V {
	if t == nil {
		var act A
		return act.Identity()
	}
	l, r := rng.clip(t.lo, t.hi)
	if l >= r {
		return t.act.Identity()
	}
	return t.query(0, t.lo, t.hi, l, r)
}

// PointQuery returns the element at position i. O(log N).
func (t *DynamicLazyTree[F, V, A]) PointQuery(i int64) V {
	if t == nil {
		var act A
		return act.Identity()
	}
	if i < t.lo || i >= t.hi {
		panic(fmt.Errorf("%w: %d of [%d,%d)", ErrIndexOutOfBounds, i, t.lo, t.hi))
	}
	return t.query(0, t.lo, t.hi, i, i+1)
}

// query folds [l,r), a non-empty sub-range of node p's interval [s,e).
func (t *DynamicLazyTree[F, V, A]) query(p int32, s, e, l, r int64) V {
	nd := &t.nodes[p]
	if l <= s && e <= r {
		return nd.agg
	}

	m := midpoint(s, e)
	var res V
	switch {
	case r <= m:
		res = t.childQuery(nd.left, s, m, l, r)
	case l >= m:
		res = t.childQuery(nd.right, m, e, l, r)
	default:
		res = t.act.Combine(t.childQuery(nd.left, s, m, l, m), t.childQuery(nd.right, m, e, m, r))
	}
	return t.act.Apply(nd.pending, res, t.sizeArg(r-l))
}

// childQuery folds [l,r) below a child link, which may be absent. An absent
// subtree holds identity elements throughout, so any sub-fold of it is the
// identity.
func (t *DynamicLazyTree[F, V, A]) childQuery(p int32, s, e, l, r int64) V {
	if p == 0 {
		return t.act.Identity()
	}
	return t.query(p, s, e, l, r)
}
