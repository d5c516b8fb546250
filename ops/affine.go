package ops

import "fmt"

// AffineMap is the function x ↦ A·x + B, the element type of the Affine
// monoid.
type AffineMap[T Numeric] struct {
	A, B T
}

// Eval applies the map to x.
func (m AffineMap[T]) Eval(x T) T {
	return m.A*x + m.B
}

func (m AffineMap[T]) String() string {
	return fmt.Sprintf("[%v,%v]", m.A, m.B)
}

// Affine is the monoid of affine maps under composition. Identity is x ↦ x.
// Not commutative. Combine(prev, next) is "prev first, then next":
//
//	Combine(prev, next).Eval(x) == next.Eval(prev.Eval(x))
type Affine[T Numeric] struct{}

func (Affine[T]) Identity() AffineMap[T] {
	return AffineMap[T]{A: 1}
}

func (Affine[T]) Combine(prev, next AffineMap[T]) AffineMap[T] {
	return AffineMap[T]{A: next.A * prev.A, B: next.A*prev.B + next.B}
}

func (Affine[T]) Commutative() bool {
	return false
}

// AddOrAssignMap is a deferred update that either adds to a position or
// overwrites it, the element type of the AddOrAssign monoid. The identity is
// the empty overwrite AddOrAssignMap{Assign: true}: an overwrite without a
// value is a no-op.
type AddOrAssignMap[T Numeric] struct {
	Assign bool // overwrite instead of add
	Ok     bool // an Assign map without a value is a no-op
	Val    T
}

// AddOf is the map adding v to a position.
func AddOf[T Numeric](v T) AddOrAssignMap[T] {
	return AddOrAssignMap[T]{Val: v}
}

// AssignOf is the map overwriting a position with v.
func AssignOf[T Numeric](v T) AddOrAssignMap[T] {
	return AddOrAssignMap[T]{Assign: true, Ok: true, Val: v}
}

func (m AddOrAssignMap[T]) String() string {
	if m.Assign {
		if !m.Ok {
			return "≔·"
		}
		return fmt.Sprintf("≔%v", m.Val)
	}
	return fmt.Sprintf("+%v", m.Val)
}

// AddOrAssign is the monoid of AddOrAssignMap under composition: a later
// overwrite discards everything before it, a later addition folds into a
// preceding overwrite's value. Identity is the empty overwrite. Not
// commutative.
type AddOrAssign[T Numeric] struct{}

func (AddOrAssign[T]) Identity() AddOrAssignMap[T] {
	return AddOrAssignMap[T]{Assign: true}
}

func (AddOrAssign[T]) Combine(prev, next AddOrAssignMap[T]) AddOrAssignMap[T] {
	switch {
	case next.Assign && next.Ok:
		return next
	case next.Assign: // empty overwrite, a no-op
		return prev
	case prev.Assign && prev.Ok:
		return AddOrAssignMap[T]{Assign: true, Ok: true, Val: prev.Val + next.Val}
	case prev.Assign: // identity followed by an addition
		return next
	}
	return AddOrAssignMap[T]{Val: prev.Val + next.Val}
}

func (AddOrAssign[T]) Commutative() bool {
	return false
}
