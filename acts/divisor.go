package acts

import (
	"golang.org/x/exp/constraints"

	"github.com/npillmayer/segtree/ops"
)

// GcdMul is range-gcd under range-multiply: gcd(f·a, f·b) == f·gcd(a, b)
// for non-negative f. No segment size is needed.
type GcdMul[T constraints.Integer] struct{}

func (GcdMul[T]) Identity() T {
	return 0
}

func (GcdMul[T]) Combine(lhs, rhs T) T {
	return ops.Gcd[T]{}.Combine(lhs, rhs)
}

func (GcdMul[T]) Commutative() bool {
	return true
}

func (GcdMul[T]) MapIdentity() T {
	return 1
}

func (GcdMul[T]) Compose(prev, next T) T {
	return prev * next
}

func (GcdMul[T]) MapCommutative() bool {
	return true
}

func (GcdMul[T]) SizeAware() bool {
	return false
}

func (GcdMul[T]) Apply(f, v T, _ int) T {
	return f * v
}

// LcmMul is range-lcm under range-multiply: lcm(f·a, f·b) == f·lcm(a, b)
// for positive f. Meant for dense trees only — the lcm identity 1 is not a
// fixed point under multiplication, so positions never written to would be
// scaled as if they held a real 1.
type LcmMul[T constraints.Integer] struct{}

func (LcmMul[T]) Identity() T {
	return 1
}

func (LcmMul[T]) Combine(lhs, rhs T) T {
	return ops.Lcm[T]{}.Combine(lhs, rhs)
}

func (LcmMul[T]) Commutative() bool {
	return true
}

func (LcmMul[T]) MapIdentity() T {
	return 1
}

func (LcmMul[T]) Compose(prev, next T) T {
	return prev * next
}

func (LcmMul[T]) MapCommutative() bool {
	return true
}

func (LcmMul[T]) SizeAware() bool {
	return false
}

func (LcmMul[T]) Apply(f, v T, _ int) T {
	return f * v
}
