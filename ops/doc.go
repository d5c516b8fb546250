/*
Package ops provides ready-made monoid instances for the segtree engines:
arithmetic folds (Add, Mul, Gcd, Lcm), bitwise folds (BitAnd, BitOr, BitXor),
order folds over optional values (Max, Min), last-write-wins assignment
(Assign), affine map composition (Affine) and a three-state add-or-assign
update monoid (AddOrAssign).

All instances are stateless zero-size structs; a tree specializes on the
instance type and the inner Combine call compiles down to the raw operation.
Every instance documents its identity element and whether it commutes. The
monoid laws are the caller contract of package segtree and are exercised by
this package's tests.
*/
package ops

import "golang.org/x/exp/constraints"

// Numeric constrains the element types of the arithmetic monoids.
type Numeric interface {
	constraints.Integer | constraints.Float
}
