package segtree

import (
	"sort"
	"testing"

	rng "github.com/leesper/go_rng"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"gonum.org/v1/gonum/stat/combin"
)

// lcmMonoid folds positive integers to their least common multiple.
type lcmMonoid struct{}

func (lcmMonoid) Identity() int64 { return 1 }
func (lcmMonoid) Combine(lhs, rhs int64) int64 {
	a, b := lhs, rhs
	for b != 0 {
		a, b = b, a%b
	}
	return lhs / a * rhs
}
func (lcmMonoid) Commutative() bool { return true }

type int64Add struct{}

func (int64Add) Identity() int64              { return 0 }
func (int64Add) Combine(lhs, rhs int64) int64 { return lhs + rhs }
func (int64Add) Commutative() bool            { return true }

func checkDynamic[V any, M Monoid[V]](t *testing.T, tree *DynamicTree[V, M]) {
	t.Helper()
	if err := tree.Check(); err != nil {
		t.Fatalf("tree failed invariant check: %v", err)
	}
}

// TestDynamicLcmScenario is the sparse-domain acceptance case: three writes
// into [-100,100) under the lcm fold.
func TestDynamicLcmScenario(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	tree := NewDynamic[int64](lcmMonoid{}, Span[int64](-100, 100))
	if tree == nil {
		t.Fatal("expected a tree over a non-empty domain")
	}
	tree.PointUpdate(-50, 9)
	tree.PointUpdate(-40, 3)
	tree.PointUpdate(-30, 7)

	if got := tree.RangeQuery(All[int64]()); got != 63 {
		t.Errorf("full fold = %d, want 63", got)
	}
	if got := tree.RangeQuery(UpToIncl[int64](-40)); got != 9 {
		t.Errorf("fold ..=-40 = %d, want 9", got)
	}
	if got := tree.RangeQuery(Span[int64](-40, 100)); got != 21 {
		t.Errorf("fold [-40,100) = %d, want 21", got)
	}
	checkDynamic(t, tree)
}

func TestDynamicEmptyDomain(t *testing.T) {
	if tree := NewDynamic[int64](lcmMonoid{}, Span[int64](5, 5)); tree != nil {
		t.Error("expected no tree over an empty domain")
	}
	if tree := NewDynamic[int64](lcmMonoid{}, Span[int64](7, 3)); tree != nil {
		t.Error("expected no tree over an inverted domain")
	}
	var tree *DynamicTree[int64, lcmMonoid]
	if err := tree.Check(); err != nil {
		t.Errorf("nil tree should check clean, got %v", err)
	}
	if got := tree.Len(); got != 0 {
		t.Errorf("nil tree length = %d", got)
	}
	if got := tree.RangeQuery(All[int64]()); got != 1 {
		t.Errorf("nil tree fold = %d, want identity", got)
	}
}

func TestDynamicPointQuery(t *testing.T) {
	tree := NewDynamic[int64](int64Add{}, Span[int64](-10, 10))
	if got := tree.PointQuery(3); got != 0 {
		t.Errorf("unwritten position = %d, want identity", got)
	}
	tree.PointUpdate(3, 42)
	tree.PointUpdate(-7, 11)
	if got := tree.PointQuery(3); got != 42 {
		t.Errorf("element 3 = %d, want 42", got)
	}
	if got := tree.PointQuery(-7); got != 11 {
		t.Errorf("element -7 = %d, want 11", got)
	}
	if got := tree.PointQuery(0); got != 0 {
		t.Errorf("unwritten position = %d, want identity", got)
	}
	tree.PointUpdate(3, 1) // overwrite, not accumulate
	if got := tree.RangeQuery(All[int64]()); got != 12 {
		t.Errorf("full fold = %d, want 12", got)
	}
	checkDynamic(t, tree)
}

// TestDynamicOrderIndependence applies the same point updates in every
// permutation and expects identical folds for every range.
func TestDynamicOrderIndependence(t *testing.T) {
	positions := []int64{-90, -17, 0, 1, 55, 89}
	values := []int64{3, 1, 4, 1, 5, 9}
	n := len(positions)

	bounds := append([]int64{-100, 100}, positions...)
	var want map[[2]int64]int64

	for _, perm := range combin.Permutations(n, n) {
		tree := NewDynamic[int64](int64Add{}, Span[int64](-100, 100))
		for _, k := range perm {
			tree.PointUpdate(positions[k], values[k])
		}
		checkDynamic(t, tree)
		got := make(map[[2]int64]int64)
		for _, l := range bounds {
			for _, r := range bounds {
				if l < r {
					got[[2]int64{l, r}] = tree.RangeQuery(Span(l, r))
				}
			}
		}
		if want == nil {
			want = got
			continue
		}
		for span, w := range want {
			if got[span] != w {
				t.Fatalf("permutation %v: fold %v = %d, want %d", perm, span, got[span], w)
			}
		}
	}
}

// TestDynamicRandomizedAgainstModel runs random writes and folds over a huge
// domain against a position→value map.
func TestDynamicRandomizedAgainstModel(t *testing.T) {
	for _, seed := range []int64{11, 222, 3333} {
		u := rng.NewUniformGenerator(seed)
		const lo, hi = -1 << 40, 1 << 40
		tree := NewDynamicWithCapacity[int64](int64Add{}, Span[int64](lo, hi), 512)
		model := make(map[int64]int64)
		for step := 0; step < 400; step++ {
			if u.Int32n(3) > 0 {
				pos := u.Int64Range(lo, hi)
				v := u.Int64Range(-1000, 1000)
				tree.PointUpdate(pos, v)
				model[pos] = v
			} else {
				l := u.Int64Range(lo, hi)
				r := u.Int64Range(lo, hi)
				if l > r {
					l, r = r, l
				}
				var want int64
				for pos, v := range model {
					if l <= pos && pos < r {
						want += v
					}
				}
				if got := tree.RangeQuery(Span(l, r)); got != want {
					t.Fatalf("seed %d step %d: fold [%d,%d) = %d, want %d", seed, step, l, r, got, want)
				}
			}
		}
		if len(tree.nodes) != len(model) {
			t.Errorf("seed %d: %d arena nodes for %d distinct positions", seed, len(tree.nodes), len(model))
		}
		checkDynamic(t, tree)
	}
}

// TestDynamicDocumentOrder folds a non-commutative monoid over sparse
// positions inserted in unsorted order; results must come out left to right.
func TestDynamicDocumentOrder(t *testing.T) {
	tree := NewDynamic[string](concat{}, Span[int64](-1000, 1000))
	inserts := []struct {
		pos int64
		s   string
	}{{500, "e"}, {-800, "a"}, {0, "c"}, {-100, "b"}, {999, "f"}, {3, "d"}}
	for _, in := range inserts {
		tree.PointUpdate(in.pos, in.s)
	}
	if got := tree.RangeQuery(All[int64]()); got != "abcdef" {
		t.Errorf("full fold = %q, want \"abcdef\"", got)
	}
	if got := tree.RangeQuery(Span[int64](-100, 500)); got != "bcd" {
		t.Errorf("fold [-100,500) = %q, want \"bcd\"", got)
	}
	checkDynamic(t, tree)
}

func TestDynamicEachOrder(t *testing.T) {
	u := rng.NewUniformGenerator(31415)
	tree := NewDynamic[int64](int64Add{}, Span[int64](-1<<30, 1<<30))
	model := make(map[int64]int64)
	for i := 0; i < 200; i++ {
		pos := u.Int64Range(-1<<30, 1<<30)
		tree.PointUpdate(pos, int64(i))
		model[pos] = int64(i)
	}
	var positions []int64
	tree.Each(func(pos, v int64) bool {
		if model[pos] != v {
			t.Fatalf("element at %d = %d, want %d", pos, v, model[pos])
		}
		positions = append(positions, pos)
		return true
	})
	if len(positions) != len(model) {
		t.Fatalf("Each visited %d positions, want %d", len(positions), len(model))
	}
	if !sort.SliceIsSorted(positions, func(i, j int) bool { return positions[i] < positions[j] }) {
		t.Error("Each did not visit positions in coordinate order")
	}
}

func TestDynamicBoundsPanic(t *testing.T) {
	tree := NewDynamic[int64](int64Add{}, Span[int64](0, 10))
	assertPanicsWith(t, ErrIndexOutOfBounds, func() { tree.PointUpdate(10, 1) })
	assertPanicsWith(t, ErrIndexOutOfBounds, func() { tree.PointQuery(-1) })
	assertPanicsWith(t, ErrInvalidRange, func() { tree.RangeQuery(Span[int64](0, 11)) })
}

func BenchmarkDynamicPointUpdate(b *testing.B) {
	u := rng.NewUniformGenerator(1)
	tree := NewDynamicWithCapacity[int64](int64Add{}, Span[int64](-1<<62, 1<<62), 1<<16)
	positions := make([]int64, 1<<16)
	for i := range positions {
		positions[i] = u.Int64Range(-1<<62, 1<<62)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.PointUpdate(positions[i&(1<<16-1)], int64(i))
	}
}

func BenchmarkDynamicRangeQuery(b *testing.B) {
	u := rng.NewUniformGenerator(2)
	tree := NewDynamicWithCapacity[int64](int64Add{}, Span[int64](-1<<62, 1<<62), 1<<14)
	for i := 0; i < 1<<14; i++ {
		tree.PointUpdate(u.Int64Range(-1<<62, 1<<62), int64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.RangeQuery(Span[int64](-1<<60, 1<<60))
	}
}
