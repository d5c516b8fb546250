/*
Package acts provides ready-made monoid actions for the lazy segtree
engines, pairing a query monoid with an update-map monoid: range-sum under
additive, multiplicative and affine updates, range-max/min under additive
and add-or-assign updates, and range-gcd/lcm under multiplicative updates.

Like the instances of package ops, actions are stateless zero-size structs
(SumAffineMod, which carries its modulus, is the exception) and specialize
the consuming tree at compile time. Size-aware actions convert the segment
size into the element type through FromSize, which panics with
segtree.ErrSizeConversion when the type cannot hold the size.
*/
package acts

import (
	"fmt"

	"github.com/npillmayer/segtree"
	"github.com/npillmayer/segtree/ops"
)

// FromSize converts a segment size to the element type of an action.
// Sizes that do not survive the round trip — too large for the type, or
// negative because a size-unaware call path was used with a size-aware
// action — panic with segtree.ErrSizeConversion.
func FromSize[T ops.Numeric](size int) T {
	s := T(size)
	if int(s) != size || size < 0 {
		panic(fmt.Errorf("%w: %d", segtree.ErrSizeConversion, size))
	}
	return s
}
