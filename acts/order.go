package acts

import (
	"golang.org/x/exp/constraints"

	"github.com/npillmayer/segtree/ops"
)

// NumericOrdered constrains element types that the order-based actions can
// both compare and add.
type NumericOrdered interface {
	constraints.Integer | constraints.Float
}

// MaxAdd is range-max under range-add. Adding shifts every element alike, so
// it shifts the maximum; no segment size is needed. Absent positions stay
// absent.
type MaxAdd[T NumericOrdered] struct{}

func (MaxAdd[T]) Identity() ops.Opt[T] {
	return ops.Opt[T]{}
}

func (MaxAdd[T]) Combine(lhs, rhs ops.Opt[T]) ops.Opt[T] {
	return ops.Max[T]{}.Combine(lhs, rhs)
}

func (MaxAdd[T]) Commutative() bool {
	return true
}

func (MaxAdd[T]) MapIdentity() T {
	var zero T
	return zero
}

func (MaxAdd[T]) Compose(prev, next T) T {
	return prev + next
}

func (MaxAdd[T]) MapCommutative() bool {
	return true
}

func (MaxAdd[T]) SizeAware() bool {
	return false
}

func (MaxAdd[T]) Apply(f T, v ops.Opt[T], _ int) ops.Opt[T] {
	if !v.Ok {
		return v
	}
	return ops.Some(v.Val + f)
}

// MinAdd is range-min under range-add, the mirror image of MaxAdd.
type MinAdd[T NumericOrdered] struct{}

func (MinAdd[T]) Identity() ops.Opt[T] {
	return ops.Opt[T]{}
}

func (MinAdd[T]) Combine(lhs, rhs ops.Opt[T]) ops.Opt[T] {
	return ops.Min[T]{}.Combine(lhs, rhs)
}

func (MinAdd[T]) Commutative() bool {
	return true
}

func (MinAdd[T]) MapIdentity() T {
	var zero T
	return zero
}

func (MinAdd[T]) Compose(prev, next T) T {
	return prev + next
}

func (MinAdd[T]) MapCommutative() bool {
	return true
}

func (MinAdd[T]) SizeAware() bool {
	return false
}

func (MinAdd[T]) Apply(f T, v ops.Opt[T], _ int) ops.Opt[T] {
	if !v.Ok {
		return v
	}
	return ops.Some(v.Val + f)
}

// applyAddOrAssign is the shared Apply of Max/MinAddOrAssign: an overwrite
// makes every element of the segment equal, so its max and min become the
// assigned value; an addition shifts them. Absent positions stay absent.
func applyAddOrAssign[T ops.Numeric](f ops.AddOrAssignMap[T], v ops.Opt[T]) ops.Opt[T] {
	if !v.Ok {
		return v
	}
	if f.Assign {
		if f.Ok {
			return ops.Some(f.Val)
		}
		return v
	}
	return ops.Some(v.Val + f.Val)
}

// MaxAddOrAssign is range-max under updates that either add to a range or
// overwrite it. Map composition is not commutative.
type MaxAddOrAssign[T NumericOrdered] struct{}

func (MaxAddOrAssign[T]) Identity() ops.Opt[T] {
	return ops.Opt[T]{}
}

func (MaxAddOrAssign[T]) Combine(lhs, rhs ops.Opt[T]) ops.Opt[T] {
	return ops.Max[T]{}.Combine(lhs, rhs)
}

func (MaxAddOrAssign[T]) Commutative() bool {
	return true
}

func (MaxAddOrAssign[T]) MapIdentity() ops.AddOrAssignMap[T] {
	return ops.AddOrAssign[T]{}.Identity()
}

func (MaxAddOrAssign[T]) Compose(prev, next ops.AddOrAssignMap[T]) ops.AddOrAssignMap[T] {
	return ops.AddOrAssign[T]{}.Combine(prev, next)
}

func (MaxAddOrAssign[T]) MapCommutative() bool {
	return false
}

func (MaxAddOrAssign[T]) SizeAware() bool {
	return false
}

func (MaxAddOrAssign[T]) Apply(f ops.AddOrAssignMap[T], v ops.Opt[T], _ int) ops.Opt[T] {
	return applyAddOrAssign(f, v)
}

// MinAddOrAssign is range-min under updates that either add to a range or
// overwrite it, the mirror image of MaxAddOrAssign.
type MinAddOrAssign[T NumericOrdered] struct{}

func (MinAddOrAssign[T]) Identity() ops.Opt[T] {
	return ops.Opt[T]{}
}

func (MinAddOrAssign[T]) Combine(lhs, rhs ops.Opt[T]) ops.Opt[T] {
	return ops.Min[T]{}.Combine(lhs, rhs)
}

func (MinAddOrAssign[T]) Commutative() bool {
	return true
}

func (MinAddOrAssign[T]) MapIdentity() ops.AddOrAssignMap[T] {
	return ops.AddOrAssign[T]{}.Identity()
}

func (MinAddOrAssign[T]) Compose(prev, next ops.AddOrAssignMap[T]) ops.AddOrAssignMap[T] {
	return ops.AddOrAssign[T]{}.Combine(prev, next)
}

func (MinAddOrAssign[T]) MapCommutative() bool {
	return false
}

func (MinAddOrAssign[T]) SizeAware() bool {
	return false
}

func (MinAddOrAssign[T]) Apply(f ops.AddOrAssignMap[T], v ops.Opt[T], _ int) ops.Opt[T] {
	return applyAddOrAssign(f, v)
}
