package segtree

import (
	"bytes"
	"strings"
	"testing"
)

func TestDotOutput(t *testing.T) {
	tree := FromSlice(intAdd{}, []int{1, 2, 3, 4, 5})
	var buf bytes.Buffer
	Tree2Dot(tree, &buf)
	out := buf.String()
	if !strings.HasPrefix(out, "strict digraph {") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("not a DOT graph:\n%s", out)
	}
	if !strings.Contains(out, "@0") || !strings.Contains(out, "@4") {
		t.Errorf("leaf positions missing:\n%s", out)
	}

	dyn := NewDynamic[int64](int64Add{}, Span[int64](-8, 8))
	dyn.PointUpdate(-3, 7)
	dyn.PointUpdate(5, 2)
	buf.Reset()
	Dynamic2Dot(dyn, &buf)
	if !strings.Contains(buf.String(), "[-8,8)") {
		t.Errorf("root interval missing:\n%s", buf.String())
	}

	lt := NewLazy[int, int](sumAdd{}, 4)
	lt.RangeUpdate(Span(1, 3), 5)
	buf.Reset()
	Lazy2Dot(lt, &buf)
	if buf.Len() == 0 {
		t.Error("empty DOT output for lazy tree")
	}
}

// TestDotOutputAssignOddSize renders an AssignTree whose leaf base sits above
// half the buffer length; the slots between must not come out as leaves with
// negative positions.
func TestDotOutputAssignOddSize(t *testing.T) {
	at := AssignFromSlice(intAdd{}, []int{1, 2, 3, 4, 5})
	at.RangeAssign(Span(1, 4), 9)
	var buf bytes.Buffer
	Assign2Dot(at, &buf)
	out := buf.String()
	if strings.Contains(out, "@-") {
		t.Errorf("negative leaf position rendered:\n%s", out)
	}
	if !strings.Contains(out, "@0") || !strings.Contains(out, "@4") {
		t.Errorf("leaf positions missing:\n%s", out)
	}
}

func TestConsoleDump(t *testing.T) {
	tree := FromSlice(intAdd{}, []int{1, 2, 3, 4})
	var buf bytes.Buffer
	DumpTree(tree, &buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 { // root level, inner level, leaf level
		t.Errorf("expected 3 levels, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(buf.String(), "@0:1") {
		t.Errorf("leaf rendering missing:\n%s", buf.String())
	}

	at := NewAssign[int](intAdd{}, 6)
	at.RangeAssign(Span(1, 5), 9)
	buf.Reset()
	DumpAssign(at, &buf)
	if !strings.Contains(buf.String(), "pool:") {
		t.Errorf("pool line missing:\n%s", buf.String())
	}

	dl := NewDynamicLazy[int64, int64](sumAdd64{}, Span[int64](0, 1024))
	dl.RangeUpdate(Span[int64](100, 200), 3)
	buf.Reset()
	DumpDynamicLazy(dl, &buf)
	if !strings.Contains(buf.String(), "[0,1024)") {
		t.Errorf("root interval missing:\n%s", buf.String())
	}
	var nilDyn *DynamicTree[int64, int64Add]
	buf.Reset()
	DumpDynamic(nilDyn, &buf)
	if !strings.Contains(buf.String(), "<no tree>") {
		t.Errorf("nil tree rendering missing:\n%s", buf.String())
	}
}
