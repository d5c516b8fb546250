package segtree

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

// Monoid describes the algebra a segment tree aggregates with: an associative
// binary operation together with its identity element.
//
// Implementations must satisfy the monoid laws for all a, b, c:
//
//	Combine(Identity(), a) == a
//	Combine(a, Identity()) == a
//	Combine(Combine(a, b), c) == Combine(a, Combine(b, c))
//
// Combine need not be commutative. Trees call Combine(lhs, rhs) with lhs
// always taken from positions left of rhs, so document order is preserved.
// For monoids of update maps the same signature is read on the time axis
// instead: lhs is the older map, rhs the newer one, and the combined map
// means "apply lhs first, then rhs".
//
// Commutative reports whether argument order is irrelevant. It is consulted
// only to skip work (a commutative DualTree update is O(1), lazy engines skip
// pre-propagation); answering false for a commutative operation is safe,
// answering true for a non-commutative one silently corrupts results.
//
// Methods must be pure: no retained references, no dependence on call order.
// The zero value of an implementation should be ready to use, since trees
// store and copy algebra values freely.
type Monoid[V any] interface {
	Identity() V
	Combine(lhs, rhs V) V
	Commutative() bool
}

// Action describes a monoid of update maps acting on a monoid of values. It
// is the algebra of LazyTree and DynamicLazyTree: the embedded Monoid[V]
// aggregates stored values, while maps of type F are composed with each other
// and applied to aggregated values.
//
// Apply(f, v, size) returns f acted on v, where v summarizes size positions.
// Size-respecting actions (range-add under range-sum, for instance, where
// adding d to a segment of size s adds s*d to its sum) answer true from
// SizeAware and receive the true segment size; actions that answer false
// receive -1 and must not look at the argument.
//
// Implementations must satisfy, beyond the monoid laws of both algebras,
// the action laws for all maps f, g and values a, b:
//
//	Apply(MapIdentity(), a, s) == a
//	Apply(Compose(f, g), a, s) == Apply(g, Apply(f, a, s), s)
//	Apply(f, Combine(a, b), sa+sb) == Combine(Apply(f, a, sa), Apply(f, b, sb))
//
// Compose(prev, next) means "apply prev first, then next", mirroring the
// time-axis reading of Combine. MapCommutative reports commutativity of
// Compose and gates the same shortcuts Commutative does.
type Action[F, V any] interface {
	Monoid[V]

	MapIdentity() F
	Compose(prev, next F) F
	MapCommutative() bool
	SizeAware() bool
	Apply(f F, v V, size int) V
}
