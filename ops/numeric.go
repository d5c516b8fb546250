package ops

import "golang.org/x/exp/constraints"

// Add is the monoid of numbers under addition, identity 0. Commutative.
type Add[T Numeric] struct{}

func (Add[T]) Identity() T {
	var zero T
	return zero
}

func (Add[T]) Combine(lhs, rhs T) T {
	return lhs + rhs
}

func (Add[T]) Commutative() bool {
	return true
}

// Mul is the monoid of numbers under multiplication, identity 1. Commutative.
type Mul[T Numeric] struct{}

func (Mul[T]) Identity() T {
	return 1
}

func (Mul[T]) Combine(lhs, rhs T) T {
	return lhs * rhs
}

func (Mul[T]) Commutative() bool {
	return true
}

// gcd is Euclid's algorithm on non-negative arguments.
func gcd[T constraints.Integer](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Gcd is the monoid of non-negative integers under the greatest common
// divisor, identity 0 (every number divides 0). Commutative. Negative
// elements are outside the contract.
type Gcd[T constraints.Integer] struct{}

func (Gcd[T]) Identity() T {
	return 0
}

func (Gcd[T]) Combine(lhs, rhs T) T {
	return gcd(lhs, rhs)
}

func (Gcd[T]) Commutative() bool {
	return true
}

// Lcm is the monoid of positive integers under the least common multiple,
// identity 1. Commutative. Folding a 0 yields 0; negative elements are
// outside the contract. Overflow is the caller's concern, as everywhere.
type Lcm[T constraints.Integer] struct{}

func (Lcm[T]) Identity() T {
	return 1
}

func (Lcm[T]) Combine(lhs, rhs T) T {
	if lhs == 0 || rhs == 0 {
		return 0
	}
	return lhs / gcd(lhs, rhs) * rhs
}

func (Lcm[T]) Commutative() bool {
	return true
}

// BitAnd is the monoid of unsigned integers under bitwise AND, identity the
// all-ones pattern. Commutative.
type BitAnd[T constraints.Unsigned] struct{}

func (BitAnd[T]) Identity() T {
	var zero T
	return ^zero
}

func (BitAnd[T]) Combine(lhs, rhs T) T {
	return lhs & rhs
}

func (BitAnd[T]) Commutative() bool {
	return true
}

// BitOr is the monoid of integers under bitwise OR, identity 0. Commutative.
type BitOr[T constraints.Integer] struct{}

func (BitOr[T]) Identity() T {
	var zero T
	return zero
}

func (BitOr[T]) Combine(lhs, rhs T) T {
	return lhs | rhs
}

func (BitOr[T]) Commutative() bool {
	return true
}

// BitXor is the monoid of integers under bitwise XOR, identity 0.
// Commutative.
type BitXor[T constraints.Integer] struct{}

func (BitXor[T]) Identity() T {
	var zero T
	return zero
}

func (BitXor[T]) Combine(lhs, rhs T) T {
	return lhs ^ rhs
}

func (BitXor[T]) Commutative() bool {
	return true
}
