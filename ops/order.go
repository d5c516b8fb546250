package ops

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Opt is an optional value, the element type of the Max, Min and Assign
// monoids. The zero Opt is "none" and serves as their identity; "none"
// positions behave as if they were absent from the fold.
type Opt[T any] struct {
	Val T
	Ok  bool
}

// Some wraps a present value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Val: v, Ok: true}
}

// None is the absent value.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

func (o Opt[T]) String() string {
	if !o.Ok {
		return "·"
	}
	return fmt.Sprintf("%v", o.Val)
}

// Max is the monoid of optional ordered values under the maximum, identity
// "none". Commutative.
type Max[T constraints.Ordered] struct{}

func (Max[T]) Identity() Opt[T] {
	return Opt[T]{}
}

func (Max[T]) Combine(lhs, rhs Opt[T]) Opt[T] {
	switch {
	case !lhs.Ok:
		return rhs
	case !rhs.Ok:
		return lhs
	case lhs.Val >= rhs.Val:
		return lhs
	}
	return rhs
}

func (Max[T]) Commutative() bool {
	return true
}

// Min is the monoid of optional ordered values under the minimum, identity
// "none". Commutative.
type Min[T constraints.Ordered] struct{}

func (Min[T]) Identity() Opt[T] {
	return Opt[T]{}
}

func (Min[T]) Combine(lhs, rhs Opt[T]) Opt[T] {
	switch {
	case !lhs.Ok:
		return rhs
	case !rhs.Ok:
		return lhs
	case lhs.Val <= rhs.Val:
		return lhs
	}
	return rhs
}

func (Min[T]) Commutative() bool {
	return true
}

// Assign is the last-write-wins monoid over optional values: the newer
// operand replaces the older unless it is "none". Identity "none". Not
// commutative. It is the map monoid of choice for a DualTree that models
// range overwrites.
type Assign[T any] struct{}

func (Assign[T]) Identity() Opt[T] {
	return Opt[T]{}
}

func (Assign[T]) Combine(lhs, rhs Opt[T]) Opt[T] {
	if rhs.Ok {
		return rhs
	}
	return lhs
}

func (Assign[T]) Commutative() bool {
	return false
}
