package segtree

import (
	"fmt"
	"math"
	"math/bits"
)

// DynamicTree is a segment tree over a signed integer domain [lo,hi) that
// materializes nodes on demand. A point update allocates at most one arena
// node, a range query folds existing nodes only, so memory grows with the
// number of distinct positions written and never with the domain size. This
// is the tree of choice when the domain is huge, negative or both and a flat
// buffer cannot exist.
//
// Every arena node owns a recursion interval and holds exactly one written
// position of it; children split the interval at its midpoint. Insertion
// swaps the carried pair with a node's pair whenever that keeps smaller
// positions on left paths and larger ones on right paths, so node positions
// are ordered left to right and queries can fold elements in document order.
type DynamicTree[V any, M Monoid[V]] struct {
	alg    M
	nodes  []dnode[V]
	lo, hi int64
	stack  []int32 // reused across operations to keep updates to one alloc
}

// dnode is an arena slot. Child links are arena indices; 0 means absent,
// since slot 0 is always the root and never anyone's child.
type dnode[V any] struct {
	pos         int64
	elem        V
	agg         V // fold of the subtree in document order
	left, right int32
}

// NewDynamic creates a DynamicTree over the given domain. Every position
// initially holds the identity element. Returns nil if the domain is empty;
// the nil tree answers every query with the identity element, while updates
// on it panic.
func NewDynamic[V any, M Monoid[V]](alg M, domain Range[int64]) *DynamicTree[V, M] {
	return NewDynamicWithCapacity[V, M](alg, domain, 0)
}

// NewDynamicWithCapacity creates a DynamicTree with arena space for the
// expected number of point updates, avoiding reallocation during use:
//
//	dt := segtree.NewDynamicWithCapacity[int](ops.Add[int]{}, segtree.Span[int64](-100, 100), 10_000)
//
// Returns nil if the domain is empty.
func NewDynamicWithCapacity[V any, M Monoid[V]](alg M, domain Range[int64], capacity int) *DynamicTree[V, M] {
	lo, hi := domain.clip(math.MinInt64, math.MaxInt64)
	if lo >= hi {
		return nil
	}
	depth := bits.Len64((uint64(hi) - uint64(lo)) | 1)
	T().Debugf("new dynamic tree over [%d,%d), arena capacity %d", lo, hi, capacity)
	return &DynamicTree[V, M]{
		alg:   alg,
		nodes: make([]dnode[V], 0, capacity),
		lo:    lo,
		hi:    hi,
		stack: make([]int32, 0, 2*depth),
	}
}

// Len returns the domain size, 0 for the nil tree.
func (t *DynamicTree[V, M]) Len() uint64 {
	if t == nil {
		return 0
	}
	return uint64(t.hi) - uint64(t.lo)
}

// midpoint halves [a,b) without overflowing, rounding towards negative
// infinity.
func midpoint(a, b int64) int64 {
	return (a & b) + (a^b)>>1
}

// PointUpdate replaces the element at position i with v. O(log N) with at
// most one node allocation.
func (t *DynamicTree[V, M]) PointUpdate(i int64, v V) {
	t.checkPos(i)
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, dnode[V]{pos: i, elem: v, agg: v})
		return
	}

	p := int32(0)
	start, end := t.lo, t.hi
	for {
		t.stack = append(t.stack, p)
		nd := &t.nodes[p]
		if nd.pos == i {
			nd.elem = v
			break
		}

		mid := midpoint(start, end)
		if i < mid {
			// keep the larger position here, send the smaller one left
			if i > nd.pos {
				i, nd.pos = nd.pos, i
				v, nd.elem = nd.elem, v
			}
			if nd.left != 0 {
				p = nd.left
				end = mid
				continue
			}
			nd.left = int32(len(t.nodes))
			t.nodes = append(t.nodes, dnode[V]{pos: i, elem: v, agg: v})
			break
		}
		// keep the smaller position here, send the larger one right
		if i < nd.pos {
			i, nd.pos = nd.pos, i
			v, nd.elem = nd.elem, v
		}
		if nd.right != 0 {
			p = nd.right
			start = mid
			continue
		}
		nd.right = int32(len(t.nodes))
		t.nodes = append(t.nodes, dnode[V]{pos: i, elem: v, agg: v})
		break
	}

	// refresh the path aggregates in bottom-to-top order
	for k := len(t.stack) - 1; k >= 0; k-- {
		nd := &t.nodes[t.stack[k]]
		agg := t.alg.Identity()
		if nd.left != 0 {
			agg = t.alg.Combine(agg, t.nodes[nd.left].agg)
		}
		agg = t.alg.Combine(agg, nd.elem)
		if nd.right != 0 {
			agg = t.alg.Combine(agg, t.nodes[nd.right].agg)
		}
		nd.agg = agg
	}
	t.stack = t.stack[:0]
}

// RangeQuery folds the elements of rng in document order and returns the
// result. Positions never written contribute the identity element, so only
// existing nodes are visited. An empty range yields the identity element.
// O(log N).
func (t *DynamicTree[V, M]) RangeQuery(rng Range[int64]) V {
	if t == nil {
		var alg M
		return alg.Identity()
	}
	l, r := rng.clip(t.lo, t.hi)
	if l >= r || len(t.nodes) == 0 {
		return t.alg.Identity()
	}

	// Step 1: descend while the range lies within one existing child.
	// On-path nodes inside the range are deferred on the stack; a plain
	// index marks a node left of everything still to come, a negated index
	// one right of it.
	p := int32(0)
	start, end := t.lo, t.hi
	for {
		nd := &t.nodes[p]
		mid := midpoint(start, end)
		if l >= mid && nd.right != 0 {
			if l <= nd.pos && nd.pos < r {
				t.stack = append(t.stack, p)
			}
			p = nd.right
			start = mid
		} else if r <= mid && nd.left != 0 {
			if l <= nd.pos && nd.pos < r {
				t.stack = append(t.stack, ^p)
			}
			p = nd.left
			end = mid
		} else {
			break
		}
	}
	split := p
	mid := midpoint(start, end)
	res := t.alg.Identity()

	// Step 2a: walk the left boundary below the split node, folding the
	// parts right of it as prefixes of res.
	if lp := t.nodes[split].left; lp != 0 {
		p, s, e := lp, start, mid
		for {
			nd := &t.nodes[p]
			if l <= s && e <= r {
				res = t.alg.Combine(nd.agg, res)
				break
			}
			m := midpoint(s, e)
			if l < m {
				if nd.right != 0 {
					res = t.alg.Combine(t.nodes[nd.right].agg, res)
				}
				if l <= nd.pos && nd.pos < r {
					res = t.alg.Combine(nd.elem, res)
				}
				if nd.left == 0 {
					break
				}
				p = nd.left
				e = m
			} else {
				if l <= nd.pos && nd.pos < r {
					t.stack = append(t.stack, p)
				}
				if nd.right == 0 {
					break
				}
				p = nd.right
				s = m
			}
		}
	}

	// Step 2b: the split node's own element.
	if nd := &t.nodes[split]; l <= nd.pos && nd.pos < r {
		res = t.alg.Combine(res, nd.elem)
	}

	// Step 2c: walk the right boundary, folding as suffixes of res.
	if rp := t.nodes[split].right; rp != 0 {
		p, s, e := rp, mid, end
		for {
			nd := &t.nodes[p]
			if l <= s && e <= r {
				res = t.alg.Combine(res, nd.agg)
				break
			}
			m := midpoint(s, e)
			if r > m {
				if nd.left != 0 {
					res = t.alg.Combine(res, t.nodes[nd.left].agg)
				}
				if l <= nd.pos && nd.pos < r {
					res = t.alg.Combine(res, nd.elem)
				}
				if nd.right == 0 {
					break
				}
				p = nd.right
				s = m
			} else {
				if l <= nd.pos && nd.pos < r {
					t.stack = append(t.stack, ^p)
				}
				if nd.left == 0 {
					break
				}
				p = nd.left
				e = m
			}
		}
	}

	// Step 3: drain the deferred on-path elements, deepest first.
	for k := len(t.stack) - 1; k >= 0; k-- {
		if ptr := t.stack[k]; ptr >= 0 {
			res = t.alg.Combine(t.nodes[ptr].elem, res)
		} else {
			res = t.alg.Combine(res, t.nodes[^ptr].elem)
		}
	}
	t.stack = t.stack[:0]
	return res
}

// PointQuery returns the element at position i, the identity element if the
// position was never written. O(log N).
func (t *DynamicTree[V, M]) PointQuery(i int64) V {
	if t == nil {
		var alg M
		return alg.Identity()
	}
	t.checkPos(i)
	if len(t.nodes) == 0 {
		return t.alg.Identity()
	}
	p := int32(0)
	start, end := t.lo, t.hi
	for {
		nd := &t.nodes[p]
		if nd.pos == i {
			return nd.elem
		}
		mid := midpoint(start, end)
		if i < mid && nd.left != 0 {
			p = nd.left
			end = mid
		} else if i >= mid && nd.right != 0 {
			p = nd.right
			start = mid
		} else {
			return t.alg.Identity()
		}
	}
}

// Each calls fn for every explicitly written (position, element) pair in
// document order until fn returns false. Positions still holding the
// identity element implicitly are not reported.
func (t *DynamicTree[V, M]) Each(fn func(pos int64, v V) bool) {
	if t != nil && len(t.nodes) != 0 {
		t.each(0, fn)
	}
}

func (t *DynamicTree[V, M]) each(p int32, fn func(pos int64, v V) bool) bool {
	nd := &t.nodes[p]
	if nd.left != 0 && !t.each(nd.left, fn) {
		return false
	}
	if !fn(nd.pos, nd.elem) {
		return false
	}
	if nd.right != 0 && !t.each(nd.right, fn) {
		return false
	}
	return true
}

func (t *DynamicTree[V, M]) checkPos(i int64) {
	if i < t.lo || i >= t.hi {
		panic(fmt.Errorf("%w: %d of [%d,%d)", ErrIndexOutOfBounds, i, t.lo, t.hi))
	}
}
