package acts

import "github.com/npillmayer/segtree/ops"

// SumAdd is range-sum under range-add: adding d to a segment of size s adds
// s·d to its sum. Size-aware; both monoids commute.
type SumAdd[T ops.Numeric] struct{}

func (SumAdd[T]) Identity() T {
	var zero T
	return zero
}

func (SumAdd[T]) Combine(lhs, rhs T) T {
	return lhs + rhs
}

func (SumAdd[T]) Commutative() bool {
	return true
}

func (SumAdd[T]) MapIdentity() T {
	var zero T
	return zero
}

func (SumAdd[T]) Compose(prev, next T) T {
	return prev + next
}

func (SumAdd[T]) MapCommutative() bool {
	return true
}

func (SumAdd[T]) SizeAware() bool {
	return true
}

func (SumAdd[T]) Apply(f, v T, size int) T {
	return v + f*FromSize[T](size)
}

// SumMul is range-sum under range-multiply. Scaling distributes over the
// sum, so no segment size is needed.
type SumMul[T ops.Numeric] struct{}

func (SumMul[T]) Identity() T {
	var zero T
	return zero
}

func (SumMul[T]) Combine(lhs, rhs T) T {
	return lhs + rhs
}

func (SumMul[T]) Commutative() bool {
	return true
}

func (SumMul[T]) MapIdentity() T {
	return 1
}

func (SumMul[T]) Compose(prev, next T) T {
	return prev * next
}

func (SumMul[T]) MapCommutative() bool {
	return true
}

func (SumMul[T]) SizeAware() bool {
	return false
}

func (SumMul[T]) Apply(f, v T, _ int) T {
	return v * f
}

// SumAffine is range-sum under range-affine updates x ↦ A·x + B: a segment
// of size s and sum v moves to A·v + B·s. Size-aware; map composition is not
// commutative.
type SumAffine[T ops.Numeric] struct{}

func (SumAffine[T]) Identity() T {
	var zero T
	return zero
}

func (SumAffine[T]) Combine(lhs, rhs T) T {
	return lhs + rhs
}

func (SumAffine[T]) Commutative() bool {
	return true
}

func (SumAffine[T]) MapIdentity() ops.AffineMap[T] {
	return ops.Affine[T]{}.Identity()
}

func (SumAffine[T]) Compose(prev, next ops.AffineMap[T]) ops.AffineMap[T] {
	return ops.Affine[T]{}.Combine(prev, next)
}

func (SumAffine[T]) MapCommutative() bool {
	return false
}

func (SumAffine[T]) SizeAware() bool {
	return true
}

func (SumAffine[T]) Apply(f ops.AffineMap[T], v T, size int) T {
	return f.A*v + f.B*FromSize[T](size)
}

// SumAffineMod is SumAffine over the ring of integers modulo P, for use with
// the usual competitive-programming prime moduli. Elements and map
// coefficients must be reduced below P; P must stay below 2^32 so that
// products fit uint64.
type SumAffineMod struct {
	P uint64
}

func (SumAffineMod) Identity() uint64 {
	return 0
}

func (a SumAffineMod) Combine(lhs, rhs uint64) uint64 {
	return (lhs + rhs) % a.P
}

func (SumAffineMod) Commutative() bool {
	return true
}

func (SumAffineMod) MapIdentity() ops.AffineMap[uint64] {
	return ops.AffineMap[uint64]{A: 1}
}

func (a SumAffineMod) Compose(prev, next ops.AffineMap[uint64]) ops.AffineMap[uint64] {
	return ops.AffineMap[uint64]{
		A: next.A * prev.A % a.P,
		B: (next.A*prev.B + next.B) % a.P,
	}
}

func (SumAffineMod) MapCommutative() bool {
	return false
}

func (SumAffineMod) SizeAware() bool {
	return true
}

func (a SumAffineMod) Apply(f ops.AffineMap[uint64], v uint64, size int) uint64 {
	return (f.A*v + f.B*(uint64(FromSize[int64](size))%a.P)) % a.P
}
