package mtree

// Range returns the identifiers of every stored object within radius of q.
// Result order is unspecified. An empty tree yields no results.
//
// Each candidate passes two tests: a cheap triangle-inequality bound over the
// cached parent distances, then the exact distance. Only the second invokes
// the metric.
func (t *Tree[T, ID, R]) Range(q T, radius R) []ID {
	var zero R
	if t.root == nil || radius < zero {
		return nil
	}
	type frame struct {
		n  *node[T, ID, R]
		dq R // distance from q to the node's parent routing object
	}
	stack := []frame{{n: t.root}}
	var out []ID
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.leaf {
			for i := range f.n.leaves {
				e := &f.n.leaves[i]
				if absDiff(f.dq, e.distParent) > radius {
					continue
				}
				if t.distance(q, e.value) <= radius {
					out = append(out, e.id)
				}
			}
			continue
		}
		for i := range f.n.routers {
			r := &f.n.routers[i]
			if absDiff(f.dq, r.distParent) > radius+r.radius {
				continue
			}
			dqr := t.distance(q, r.ref)
			if dqr <= radius+r.radius {
				stack = append(stack, frame{n: r.child, dq: dqr})
			}
		}
	}
	return out
}
