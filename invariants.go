package segtree

import "fmt"

// Structural invariant checkers, one per engine.
//
// The checkers are intentionally strict and meant for tests: every property
// test calls them after its mutation phase. They validate buffer geometry,
// pool and arena links and position ordering; value-level correctness (a
// node's aggregate matching its children) cannot be checked here, since
// element types carry no equality, and is covered by the model-based tests
// instead.

// Check validates the structural invariants of the tree.
func (t *Tree[V, M]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidStructure)
	}
	if t.n < 0 || len(t.data) != t.n<<1 {
		return fmt.Errorf("%w: buffer length %d for %d elements", ErrInvalidStructure, len(t.data), t.n)
	}
	return nil
}

// Check validates the structural invariants of the tree.
func (t *LazyTree[F, V, A]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidStructure)
	}
	if t.n < 0 || len(t.data) != t.n<<1 {
		return fmt.Errorf("%w: buffer length %d for %d elements", ErrInvalidStructure, len(t.data), t.n)
	}
	if len(t.lazy) != t.n || len(t.size) != t.n {
		return fmt.Errorf("%w: auxiliary buffer lengths %d/%d for %d elements",
			ErrInvalidStructure, len(t.lazy), len(t.size), t.n)
	}
	for i := 1; i < t.n; i++ {
		if want := t.sizeOf(i<<1) + t.sizeOf(i<<1|1); t.size[i] != want {
			return fmt.Errorf("%w: size table at %d is %d, children sum to %d",
				ErrInvalidStructure, i, t.size[i], want)
		}
	}
	return nil
}

// Check validates the structural invariants of the tree.
func (t *DualTree[F, M]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidStructure)
	}
	if t.n < 0 || len(t.data) != t.n<<1 {
		return fmt.Errorf("%w: buffer length %d for %d elements", ErrInvalidStructure, len(t.data), t.n)
	}
	return nil
}

// Check validates the structural invariants of the tree: arena links must
// form a tree, every node's position must lie in its recursion interval, and
// positions must be ordered left to right. A nil tree (empty domain) is
// valid.
func (t *DynamicTree[V, M]) Check() error {
	if t == nil {
		return nil
	}
	if t.lo >= t.hi {
		return fmt.Errorf("%w: empty domain [%d,%d)", ErrInvalidStructure, t.lo, t.hi)
	}
	if len(t.stack) != 0 {
		return fmt.Errorf("%w: scratch stack not drained (%d entries)", ErrInvalidStructure, len(t.stack))
	}
	if len(t.nodes) == 0 {
		return nil
	}
	seen := make([]bool, len(t.nodes))
	var walk func(p int32, start, end int64) error
	walk = func(p int32, start, end int64) error {
		if p < 0 || int(p) >= len(t.nodes) {
			return fmt.Errorf("%w: arena link %d out of bounds", ErrInvalidStructure, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: arena slot %d linked twice", ErrInvalidStructure, p)
		}
		seen[p] = true
		nd := &t.nodes[p]
		if nd.pos < start || nd.pos >= end {
			return fmt.Errorf("%w: position %d outside node interval [%d,%d)",
				ErrInvalidStructure, nd.pos, start, end)
		}
		mid := midpoint(start, end)
		if nd.left != 0 {
			if err := walk(nd.left, start, mid); err != nil {
				return err
			}
			if lc := &t.nodes[nd.left]; lc.pos >= nd.pos {
				return fmt.Errorf("%w: left child position %d not below %d",
					ErrInvalidStructure, lc.pos, nd.pos)
			}
		}
		if nd.right != 0 {
			if err := walk(nd.right, mid, end); err != nil {
				return err
			}
			if rc := &t.nodes[nd.right]; rc.pos <= nd.pos {
				return fmt.Errorf("%w: right child position %d not above %d",
					ErrInvalidStructure, rc.pos, nd.pos)
			}
		}
		return nil
	}
	if err := walk(0, t.lo, t.hi); err != nil {
		return err
	}
	for p := range seen {
		if !seen[p] {
			return fmt.Errorf("%w: arena slot %d unreachable", ErrInvalidStructure, p)
		}
	}
	return nil
}

// Check validates the structural invariants of the tree: arena links must
// form a tree reaching every slot, and no materialized node may sit below a
// single-position interval. A nil tree (empty domain) is valid.
func (t *DynamicLazyTree[F, V, A]) Check() error {
	if t == nil {
		return nil
	}
	if t.lo >= t.hi {
		return fmt.Errorf("%w: empty domain [%d,%d)", ErrInvalidStructure, t.lo, t.hi)
	}
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: missing root slot", ErrInvalidStructure)
	}
	seen := make([]bool, len(t.nodes))
	var walk func(p int32, start, end int64) error
	walk = func(p int32, start, end int64) error {
		if p < 0 || int(p) >= len(t.nodes) {
			return fmt.Errorf("%w: arena link %d out of bounds", ErrInvalidStructure, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: arena slot %d linked twice", ErrInvalidStructure, p)
		}
		seen[p] = true
		nd := &t.nodes[p]
		if (nd.left != 0 || nd.right != 0) && end-start < 2 {
			return fmt.Errorf("%w: node over [%d,%d) has children", ErrInvalidStructure, start, end)
		}
		mid := midpoint(start, end)
		if nd.left != 0 {
			if err := walk(nd.left, start, mid); err != nil {
				return err
			}
		}
		if nd.right != 0 {
			if err := walk(nd.right, mid, end); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, t.lo, t.hi); err != nil {
		return err
	}
	for p := range seen {
		if !seen[p] {
			return fmt.Errorf("%w: arena slot %d unreachable", ErrInvalidStructure, p)
		}
	}
	return nil
}

// Check validates the structural invariants of the tree: buffer geometry,
// pool pointer validity, and the pool staying below the rebuild threshold
// between operations.
func (t *AssignTree[V, M]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidStructure)
	}
	if t.n < 0 || t.bufLen != nextPow2(t.n) {
		return fmt.Errorf("%w: leaf base %d for %d elements", ErrInvalidStructure, t.bufLen, t.n)
	}
	if len(t.data) != t.bufLen+t.n+(t.n&1) {
		return fmt.Errorf("%w: buffer length %d for %d elements", ErrInvalidStructure, len(t.data), t.n)
	}
	if len(t.lazyPtr) != len(t.data)>>1 {
		return fmt.Errorf("%w: pointer buffer length %d for buffer %d",
			ErrInvalidStructure, len(t.lazyPtr), len(t.data))
	}
	if len(t.pool) >= t.bufLen && t.bufLen > 1 {
		return fmt.Errorf("%w: pool holds %d entries, rebuild threshold is %d",
			ErrInvalidStructure, len(t.pool), t.bufLen)
	}
	for i, ptr := range t.lazyPtr {
		if ptr == nullPtr {
			continue
		}
		if ptr < 0 || ptr >= len(t.pool) {
			return fmt.Errorf("%w: pool pointer %d at node %d, pool size %d",
				ErrInvalidStructure, ptr, i, len(t.pool))
		}
		if ptr == 0 && i<<1 < len(t.lazyPtr) {
			return fmt.Errorf("%w: node %d has descendants below pool entry 0", ErrInvalidStructure, i)
		}
	}
	return nil
}
