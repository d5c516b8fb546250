package segtree

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the internal structure of a Tree in Graphviz DOT format
// (for debugging purposes).
//
func Tree2Dot[V any, M Monoid[V]](t *Tree[V, M], w io.Writer) {
	flat2Dot(w, len(t.data), t.n, func(i int) string {
		return fmt.Sprintf("%v", t.data[i])
	})
}

// Dual2Dot outputs the internal structure of a DualTree in Graphviz DOT
// format. Inner node labels are deposits not yet pushed down.
//
func Dual2Dot[F any, M Monoid[F]](t *DualTree[F, M], w io.Writer) {
	flat2Dot(w, len(t.data), t.n, func(i int) string {
		return fmt.Sprintf("%v", t.data[i])
	})
}

// Lazy2Dot outputs the internal structure of a LazyTree in Graphviz DOT
// format. Inner nodes are labelled "aggregate | pending map".
//
func Lazy2Dot[F, V any, A Action[F, V]](t *LazyTree[F, V, A], w io.Writer) {
	flat2Dot(w, len(t.data), t.n, func(i int) string {
		if i < t.n {
			return fmt.Sprintf("%v | %v", t.data[i], t.lazy[i])
		}
		return fmt.Sprintf("%v", t.data[i])
	})
}

// Assign2Dot outputs the internal structure of an AssignTree in Graphviz DOT
// format. Inner nodes with a pending assignment show the pool pointer after
// the aggregate.
//
func Assign2Dot[V any, M Monoid[V]](t *AssignTree[V, M], w io.Writer) {
	flat2Dot(w, len(t.data), t.bufLen, func(i int) string {
		if i < len(t.lazyPtr) && t.lazyPtr[i] != nullPtr {
			return fmt.Sprintf("%v #%d", t.data[i], t.lazyPtr[i])
		}
		return fmt.Sprintf("%v", t.data[i])
	})
}

// flat2Dot draws the implicit heap of a flat-buffer tree. Leaves are
// labelled with their logical position, index leafBase maps to position 0.
func flat2Dot(w io.Writer, dataLen, leafBase int, label func(i int) string) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	for i := 1; i < dataLen; i++ {
		if isleaf := i >= leafBase; isleaf {
			text := fmt.Sprintf("@%d\\n%s", i-leafBase, label(i))
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", i, text, nodeDotStyles(isleaf))
		} else {
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", i, label(i), nodeDotStyles(isleaf))
			if i<<1 < dataLen { // dead inner slots have no children in the buffer
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", i, i<<1)
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", i, i<<1|1)
			}
		}
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

// Dynamic2Dot outputs the arena structure of a DynamicTree in Graphviz DOT
// format. Nodes are labelled with their recursion interval and their
// (position, element) pair.
//
func Dynamic2Dot[V any, M Monoid[V]](t *DynamicTree[V, M], w io.Writer) {
	arena2Dot(w, len(t.nodes), t.lo, t.hi, func(p int32) (string, int32, int32) {
		nd := &t.nodes[p]
		return fmt.Sprintf("%d: %v", nd.pos, nd.elem), nd.left, nd.right
	})
}

// DynamicLazy2Dot outputs the arena structure of a DynamicLazyTree in
// Graphviz DOT format. Nodes are labelled "aggregate | pending map".
//
func DynamicLazy2Dot[F, V any, A Action[F, V]](t *DynamicLazyTree[F, V, A], w io.Writer) {
	arena2Dot(w, len(t.nodes), t.lo, t.hi, func(p int32) (string, int32, int32) {
		nd := &t.nodes[p]
		return fmt.Sprintf("%v | %v", nd.agg, nd.pending), nd.left, nd.right
	})
}

func arena2Dot(w io.Writer, count int, lo, hi int64, describe func(p int32) (string, int32, int32)) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	var walk func(p int32, s, e int64)
	walk = func(p int32, s, e int64) {
		text, left, right := describe(p)
		isleaf := left == 0 && right == 0
		label := fmt.Sprintf("[%d,%d)\\n%s", s, e, text)
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", p, label, nodeDotStyles(isleaf))
		m := midpoint(s, e)
		if left != 0 {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", p, left)
			walk(left, s, m)
		} else if right != 0 {
			nilid := count + int(p)
			nodelist += fmt.Sprintf("\"%d\" %s;\n", nilid, emptyNode())
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", p, nilid)
		}
		if right != 0 {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", p, right)
			walk(right, m, e)
		} else if left != 0 {
			nilid := 2*count + int(p)
			nodelist += fmt.Sprintf("\"%d\" %s;\n", nilid, emptyNode())
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", p, nilid)
		}
	}
	if count > 0 {
		walk(0, lo, hi)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.4]"
}

func nodeDotStyles(isleaf bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",color=black,fillcolor=\"#a3d7e4\""
		s += ",shape=circle"
	}
	return s
}
