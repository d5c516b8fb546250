package segtree

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Console dumps render a tree level by level for debugging, one line per
// level, colored when the destination is a terminal. They complement the
// Graphviz output of the *2Dot functions for the quick-look case where
// firing up dot is overkill.

var (
	innerColor   = color.New(color.FgCyan)
	leafColor    = color.New(color.FgGreen)
	pendingColor = color.New(color.FgYellow, color.Bold)
)

// dumpWidth returns the line width to cut dump output at: the terminal width
// when w is one, otherwise a generous default.
func dumpWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return 200
}

// DumpTree writes a level-by-level rendering of a Tree to w.
func DumpTree[V any, M Monoid[V]](t *Tree[V, M], w io.Writer) {
	T().Debugf("dumping tree of size %d", t.n)
	dumpFlat(w, len(t.data), t.n, func(i int) (string, *color.Color) {
		if i >= t.n {
			return fmt.Sprintf("%v", t.data[i]), leafColor
		}
		return fmt.Sprintf("%v", t.data[i]), innerColor
	})
}

// DumpLazy writes a level-by-level rendering of a LazyTree to w. Inner nodes
// are shown as "aggregate|pending map", highlighted while a pending map
// waits to be pushed down.
func DumpLazy[F, V any, A Action[F, V]](t *LazyTree[F, V, A], w io.Writer) {
	T().Debugf("dumping lazy tree of size %d", t.n)
	dumpFlat(w, len(t.data), t.n, func(i int) (string, *color.Color) {
		if i >= t.n {
			return fmt.Sprintf("%v", t.data[i]), leafColor
		}
		return fmt.Sprintf("%v|%v", t.data[i], t.lazy[i]), pendingColor
	})
}

// DumpDual writes a level-by-level rendering of a DualTree to w. Every node
// shows the map deposits accumulated at it.
func DumpDual[F any, M Monoid[F]](t *DualTree[F, M], w io.Writer) {
	T().Debugf("dumping dual tree of size %d", t.n)
	dumpFlat(w, len(t.data), t.n, func(i int) (string, *color.Color) {
		if i >= t.n {
			return fmt.Sprintf("%v", t.data[i]), leafColor
		}
		return fmt.Sprintf("%v", t.data[i]), pendingColor
	})
}

// DumpAssign writes a level-by-level rendering of an AssignTree to w,
// followed by the power pool. Nodes with a pending assignment show their
// pool pointer and are highlighted.
func DumpAssign[V any, M Monoid[V]](t *AssignTree[V, M], w io.Writer) {
	T().Debugf("dumping assign tree of size %d", t.n)
	dumpFlat(w, len(t.data), t.bufLen, func(i int) (string, *color.Color) {
		if i < len(t.lazyPtr) && t.lazyPtr[i] != nullPtr {
			return fmt.Sprintf("%v#%d", t.data[i], t.lazyPtr[i]), pendingColor
		}
		if i >= t.bufLen {
			return fmt.Sprintf("%v", t.data[i]), leafColor
		}
		return fmt.Sprintf("%v", t.data[i]), innerColor
	})
	fmt.Fprintf(w, "pool: %d entries\n", len(t.pool))
}

// dumpFlat prints the implicit heap of a flat-buffer tree, one line per
// level, root first. Lines longer than the terminal width are cut.
func dumpFlat(w io.Writer, dataLen, leafBase int, describe func(i int) (string, *color.Color)) {
	width := dumpWidth(w)
	for lo := 1; lo < dataLen; lo <<= 1 {
		var line strings.Builder
		hi := lo << 1
		if hi > dataLen {
			hi = dataLen
		}
		for i := lo; i < hi; i++ {
			if line.Len() > width {
				line.WriteString("…")
				break
			}
			text, style := describe(i)
			if i >= leafBase {
				text = fmt.Sprintf("@%d:%s", i-leafBase, text)
			}
			line.WriteString(style.Sprint(text))
			line.WriteString("  ")
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}

// DumpDynamic writes an indented rendering of a DynamicTree's arena to w,
// one node per line, depth first.
func DumpDynamic[V any, M Monoid[V]](t *DynamicTree[V, M], w io.Writer) {
	if t == nil {
		fmt.Fprintln(w, "<no tree>")
		return
	}
	T().Debugf("dumping dynamic tree with %d nodes", len(t.nodes))
	dumpArena(w, len(t.nodes), t.lo, t.hi, func(p int32) (string, *color.Color, int32, int32) {
		nd := &t.nodes[p]
		return fmt.Sprintf("%d: %v", nd.pos, nd.elem), innerColor, nd.left, nd.right
	})
}

// DumpDynamicLazy writes an indented rendering of a DynamicLazyTree's arena
// to w, one node per line, depth first.
func DumpDynamicLazy[F, V any, A Action[F, V]](t *DynamicLazyTree[F, V, A], w io.Writer) {
	if t == nil {
		fmt.Fprintln(w, "<no tree>")
		return
	}
	T().Debugf("dumping dynamic lazy tree with %d nodes", len(t.nodes))
	dumpArena(w, len(t.nodes), t.lo, t.hi, func(p int32) (string, *color.Color, int32, int32) {
		nd := &t.nodes[p]
		return fmt.Sprintf("%v|%v", nd.agg, nd.pending), pendingColor, nd.left, nd.right
	})
}

func dumpArena(w io.Writer, count int, lo, hi int64, describe func(p int32) (string, *color.Color, int32, int32)) {
	var walk func(p int32, s, e int64, depth int)
	walk = func(p int32, s, e int64, depth int) {
		text, style, left, right := describe(p)
		if left == 0 && right == 0 {
			style = leafColor
		}
		fmt.Fprintf(w, "%s[%d,%d) %s\n", strings.Repeat("  ", depth), s, e, style.Sprint(text))
		m := midpoint(s, e)
		if left != 0 {
			walk(left, s, m, depth+1)
		}
		if right != 0 {
			walk(right, m, e, depth+1)
		}
	}
	if count > 0 {
		walk(0, lo, hi, 0)
	}
}
