package mtree

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a breadth-first rendering of the tree to w, one line per node.
// Entries are |-separated, free slots print as _, every entry shows its
// cached parent distance and routing entries additionally their covering
// radius. The root line is annotated "no parent". Intended for debugging;
// the format is not load-bearing.
func (t *Tree[T, ID, R]) Dump(w io.Writer) {
	if t.root == nil {
		fmt.Fprintln(w, "empty tree")
		return
	}
	queue := []*node[T, ID, R]{t.root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		var sb strings.Builder
		for i := 0; i < t.capacity; i++ {
			if i > 0 {
				sb.WriteString(" | ")
			}
			switch {
			case n.leaf && i < len(n.leaves):
				e := &n.leaves[i]
				fmt.Fprintf(&sb, "%v d=%v", e.value, e.distParent)
			case !n.leaf && i < len(n.routers):
				r := &n.routers[i]
				fmt.Fprintf(&sb, "%v d=%v r=%v", r.ref, r.distParent, r.radius)
				queue = append(queue, r.child)
			default:
				sb.WriteString("_")
			}
		}
		if n.parent == nil {
			sb.WriteString("  (no parent)")
		}
		fmt.Fprintln(w, sb.String())
	}
}
