package mtree

import "testing"

// checkInvariants walks the whole tree and asserts its structural contract:
// equal leaf depth, node occupancy between 1 and capacity, homogeneous entry
// kinds, intact parent links, covering radii that really cover their
// subtrees, cached parent distances that match the metric, and exactly one
// centre entry per non-root node.
func checkInvariants[T any, ID comparable, R Number](t *testing.T, tr *Tree[T, ID, R], eps R) {
	t.Helper()
	if tr.root == nil {
		if tr.count != 0 {
			t.Fatalf("empty tree reports size %d", tr.count)
		}
		return
	}
	leafDepth := -1
	leaves := 0
	var walk func(n *node[T, ID, R], depth int)
	walk = func(n *node[T, ID, R], depth int) {
		if n != tr.root && n.entryCount() < 1 {
			t.Fatalf("non-root node at depth %d is empty", depth)
		}
		if n.entryCount() > tr.capacity {
			t.Fatalf("node at depth %d holds %d entries, capacity is %d", depth, n.entryCount(), tr.capacity)
		}
		if len(n.leaves) > 0 && len(n.routers) > 0 {
			t.Fatalf("heterogeneous node at depth %d", depth)
		}
		pr := n.parentRouter()
		if (pr == nil) != (n.parent == nil) {
			t.Fatalf("node at depth %d has a parent but no routing entry points at it", depth)
		}
		centres := 0
		if n.leaf {
			if leafDepth < 0 {
				leafDepth = depth
			} else if leafDepth != depth {
				t.Fatalf("leaves at depths %d and %d", leafDepth, depth)
			}
			leaves += len(n.leaves)
			for i := range n.leaves {
				e := &n.leaves[i]
				if pr == nil {
					continue
				}
				want := tr.distance(pr.ref, e.value)
				if absDiff(want, e.distParent) > eps {
					t.Fatalf("leaf entry caches distParent %v, metric says %v", e.distParent, want)
				}
				if e.id == pr.refID {
					centres++
					if e.distParent > eps {
						t.Fatalf("centre entry has distParent %v", e.distParent)
					}
				}
			}
		} else {
			for i := range n.routers {
				r := &n.routers[i]
				if r.child.parent != n {
					t.Fatalf("child at depth %d does not point back at its parent", depth+1)
				}
				if pr != nil {
					want := tr.distance(pr.ref, r.ref)
					if absDiff(want, r.distParent) > eps {
						t.Fatalf("routing entry caches distParent %v, metric says %v", r.distParent, want)
					}
					if r.refID == pr.refID {
						centres++
						if r.distParent > eps {
							t.Fatalf("centre routing entry has distParent %v", r.distParent)
						}
					}
				}
				checkCovering(t, tr, r, r.child, eps)
				walk(r.child, depth+1)
			}
		}
		if pr != nil && centres != 1 {
			t.Fatalf("node at depth %d has %d centre entries, want exactly 1", depth, centres)
		}
	}
	walk(tr.root, 0)
	if leaves != tr.count {
		t.Fatalf("tree holds %d leaf entries, Size reports %d", leaves, tr.count)
	}
}

// checkCovering asserts that every data object reachable through n is within
// r's covering radius of r's reference object.
func checkCovering[T any, ID comparable, R Number](t *testing.T, tr *Tree[T, ID, R], r *routingEntry[T, ID, R], n *node[T, ID, R], eps R) {
	t.Helper()
	if n.leaf {
		for i := range n.leaves {
			if d := tr.distance(r.ref, n.leaves[i].value); d > r.radius+eps {
				t.Fatalf("object at distance %v escapes covering radius %v", d, r.radius)
			}
		}
		return
	}
	for i := range n.routers {
		checkCovering(t, tr, r, n.routers[i].child, eps)
	}
}
