package segtree

import (
	"testing"

	rng "github.com/leesper/go_rng"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// sumAdd is range-sum under range-add, defined locally to keep the root
// package tests free of the instance packages.
type sumAdd struct{}

func (sumAdd) Identity() int            { return 0 }
func (sumAdd) Combine(lhs, rhs int) int { return lhs + rhs }
func (sumAdd) Commutative() bool        { return true }
func (sumAdd) MapIdentity() int         { return 0 }
func (sumAdd) Compose(prev, next int) int {
	return prev + next
}
func (sumAdd) MapCommutative() bool { return true }
func (sumAdd) SizeAware() bool      { return true }
func (sumAdd) Apply(f, v, size int) int {
	return v + f*size
}

// affinePair is the map x ↦ a·x + b.
type affinePair struct {
	a, b int64
}

// sumAffine is range-sum under affine updates; map composition does not
// commute, which is what the propagation-order tests are after.
type sumAffine struct{}

func (sumAffine) Identity() int64              { return 0 }
func (sumAffine) Combine(lhs, rhs int64) int64 { return lhs + rhs }
func (sumAffine) Commutative() bool            { return true }
func (sumAffine) MapIdentity() affinePair      { return affinePair{a: 1} }
func (sumAffine) Compose(prev, next affinePair) affinePair {
	return affinePair{a: next.a * prev.a, b: next.a*prev.b + next.b}
}
func (sumAffine) MapCommutative() bool { return false }
func (sumAffine) SizeAware() bool      { return true }
func (sumAffine) Apply(f affinePair, v int64, size int) int64 {
	return f.a*v + f.b*int64(size)
}

func checkLazy[F, V any, A Action[F, V]](t *testing.T, tree *LazyTree[F, V, A]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree failed invariant check: %v", err)
	}
}

func TestLazyBasics(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := NewLazy[int, int](sumAdd{}, 10)
	checkLazy(t, tree)
	tree.RangeUpdate(Span(0, 10), 1)
	tree.RangeUpdate(Span(3, 7), 10)
	if got := tree.RangeQuery(All[int]()); got != 10+40 {
		t.Errorf("full fold = %d, want 50", got)
	}
	if got := tree.RangeQuery(Span(3, 5)); got != 22 {
		t.Errorf("fold [3,5) = %d, want 22", got)
	}
	if got := tree.PointQuery(6); got != 11 {
		t.Errorf("element 6 = %d, want 11", got)
	}
	if got := tree.RangeQuery(Span(5, 5)); got != 0 {
		t.Errorf("empty fold = %d, want 0", got)
	}
	checkLazy(t, tree)
}

func TestLazyFromSliceAndPointOps(t *testing.T) {
	tree := LazyFromSlice[int](sumAdd{}, []int{1, 2, 3, 4, 5})
	if got := tree.RangeQuery(All[int]()); got != 15 {
		t.Fatalf("full fold = %d, want 15", got)
	}
	tree.PointUpdate(2, 100) // acts the map, so adds 100
	if got := tree.PointQuery(2); got != 103 {
		t.Errorf("element 2 = %d, want 103", got)
	}
	tree.PointUpdateWith(0, func(v int) int { return -v })
	if got := tree.RangeQuery(Span(0, 2)); got != 1 {
		t.Errorf("fold [0,2) = %d, want 1", got)
	}
	checkLazy(t, tree)
}

// TestLazyRandomizedAgainstModel drives random range updates, point updates
// and range queries against a plain slice, for non-power-of-two sizes and a
// table of seeds.
func TestLazyRandomizedAgainstModel(t *testing.T) {
	for _, seed := range []int64{3, 17, 1001} {
		u := rng.NewUniformGenerator(seed)
		const n = 100
		tree := NewLazy[int, int](sumAdd{}, n)
		model := make([]int, n)
		for step := 0; step < 1500; step++ {
			l := int(u.Int32n(n + 1))
			r := int(u.Int32n(n + 1))
			if l > r {
				l, r = r, l
			}
			switch u.Int32n(3) {
			case 0:
				d := int(u.Int32Range(-50, 50))
				tree.RangeUpdate(Span(l, r), d)
				for i := l; i < r; i++ {
					model[i] += d
				}
			case 1:
				want := 0
				for _, v := range model[l:r] {
					want += v
				}
				if got := tree.RangeQuery(Span(l, r)); got != want {
					t.Fatalf("seed %d step %d: fold [%d,%d) = %d, want %d", seed, step, l, r, got, want)
				}
			case 2:
				i := int(u.Int32n(n))
				if got := tree.PointQuery(i); got != model[i] {
					t.Fatalf("seed %d step %d: element %d = %d, want %d", seed, step, i, got, model[i])
				}
			}
		}
		vals := tree.Values()
		for i, v := range vals {
			if v != model[i] {
				t.Fatalf("seed %d: Values()[%d] = %d, want %d", seed, i, v, model[i])
			}
		}
		checkLazy(t, tree)
	}
}

// TestLazyAffineAgainstModel exercises the non-commutative propagation path:
// affine maps must reach positions in chronological order.
func TestLazyAffineAgainstModel(t *testing.T) {
	u := rng.NewUniformGenerator(271828)
	const n = 64
	tree := NewLazy[affinePair, int64](sumAffine{}, n)
	model := make([]int64, n)
	for i := 0; i < n; i++ {
		tree.PointUpdateWith(i, func(int64) int64 { return int64(i) })
		model[i] = int64(i)
	}
	for step := 0; step < 800; step++ {
		l := int(u.Int32n(n + 1))
		r := int(u.Int32n(n + 1))
		if l > r {
			l, r = r, l
		}
		if u.Int32n(2) == 0 {
			f := affinePair{a: int64(u.Int32Range(-2, 3)), b: int64(u.Int32Range(-10, 10))}
			tree.RangeUpdate(Span(l, r), f)
			for i := l; i < r; i++ {
				model[i] = f.a*model[i] + f.b
			}
		} else {
			var want int64
			for _, v := range model[l:r] {
				want += v
			}
			if got := tree.RangeQuery(Span(l, r)); got != want {
				t.Fatalf("step %d: fold [%d,%d) = %d, want %d", step, l, r, got, want)
			}
		}
	}
	checkLazy(t, tree)
}

// modAffine is range-sum under affine updates modulo a prime.
type modAffine struct {
	p uint64
}

func (m modAffine) Identity() uint64 { return 0 }
func (m modAffine) Combine(lhs, rhs uint64) uint64 {
	return (lhs + rhs) % m.p
}
func (m modAffine) Commutative() bool { return true }
func (m modAffine) MapIdentity() affinePair {
	return affinePair{a: 1}
}
func (m modAffine) Compose(prev, next affinePair) affinePair {
	p := int64(m.p)
	return affinePair{a: next.a * prev.a % p, b: (next.a*prev.b + next.b) % p}
}
func (m modAffine) MapCommutative() bool { return false }
func (m modAffine) SizeAware() bool      { return true }
func (m modAffine) Apply(f affinePair, v uint64, size int) uint64 {
	return (uint64(f.a)*v + uint64(f.b)*uint64(size)) % m.p
}

// TestLazyModAffineScenario is the range-affine/range-sum acceptance case:
// values 0..99 mod 998244353, double everything, then x ↦ 3x on [50,75].
func TestLazyModAffineScenario(t *testing.T) {
	const p = 998244353
	values := make([]uint64, 100)
	for i := range values {
		values[i] = uint64(i)
	}
	tree := LazyFromSlice[affinePair](modAffine{p: p}, values)

	tree.RangeUpdate(All[int](), affinePair{a: 2, b: 0})
	tree.RangeUpdate(SpanIncl(50, 75), affinePair{a: 3, b: 0})

	var lower uint64 // Σ 2i for i in 0..49
	for i := uint64(0); i < 50; i++ {
		lower += 2 * i
	}
	if got := tree.RangeQuery(UpTo(50)); got != lower%p {
		t.Errorf("fold ..50 = %d, want %d", got, lower%p)
	}
	var mid uint64 // Σ 6i for i in 50..75
	for i := uint64(50); i <= 75; i++ {
		mid += 6 * i
	}
	if got := tree.RangeQuery(SpanIncl(50, 75)); got != mid%p {
		t.Errorf("fold 50..=75 = %d, want %d", got, mid%p)
	}
	checkLazy(t, tree)
}

// FuzzLazyAgainstModel drives a lazy tree and a plain slice with an op
// sequence decoded from fuzz data.
//
// How to run:
//   - go test . -run '^$' -fuzz FuzzLazyAgainstModel -fuzztime=10s
func FuzzLazyAgainstModel(f *testing.F) {
	f.Add([]byte{0, 1, 9, 5, 1, 0, 9, 0})
	f.Add([]byte{2, 0, 0, 0, 1, 3, 17, 200})
	f.Fuzz(func(t *testing.T, data []byte) {
		const n = 21
		tree := NewLazy[int, int](sumAdd{}, n)
		model := make([]int, n)
		for k := 0; k+3 < len(data); k += 4 {
			l := int(data[k+1]) % (n + 1)
			r := int(data[k+2]) % (n + 1)
			if l > r {
				l, r = r, l
			}
			switch data[k] % 2 {
			case 0:
				d := int(int8(data[k+3]))
				tree.RangeUpdate(Span(l, r), d)
				for i := l; i < r; i++ {
					model[i] += d
				}
			case 1:
				want := 0
				for _, v := range model[l:r] {
					want += v
				}
				if got := tree.RangeQuery(Span(l, r)); got != want {
					t.Fatalf("fold [%d,%d) = %d, want %d", l, r, got, want)
				}
			}
		}
		if err := tree.Check(); err != nil {
			t.Fatal(err)
		}
	})
}

func BenchmarkLazyRangeUpdate(b *testing.B) {
	tree := NewLazy[int, int](sumAdd{}, 1<<16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.RangeUpdate(Span(i&1023, 1<<16-(i&4095)), 3)
	}
}

func BenchmarkLazyRangeQuery(b *testing.B) {
	tree := NewLazy[int, int](sumAdd{}, 1<<16)
	tree.RangeUpdate(All[int](), 7)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.RangeQuery(Span(i&1023, 1<<16-(i&4095)))
	}
}
