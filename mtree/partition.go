package mtree

import "sort"

// PartitionPolicy selects how a split distributes the overflowing bucket
// between the two promoted routers.
type PartitionPolicy int

const (
	// PartitionBalanced alternates nearest-first assignment between the two
	// routers, keeping the output sizes within one of each other.
	PartitionBalanced PartitionPolicy = iota
	// PartitionGenHyperplane assigns every object to its nearer router, so
	// the outputs may be imbalanced.
	PartitionGenHyperplane
)

// assignment records one partition outcome: the output side and router
// distance per bucket index, plus the two covering radii. Each radius folds
// in the received entries' own covering radii so the router covers every
// object in its subtree, not only the entries themselves; leaf entries
// contribute zero.
type assignment[R Number] struct {
	side []uint8
	dist []R
	r1   R
	r2   R
}

func (t *Tree[T, ID, R]) partitionBucket(m *distMatrix[R], childRadius []R, i1, i2 int) assignment[R] {
	asn := assignment[R]{side: make([]uint8, m.n), dist: make([]R, m.n)}
	switch t.partition {
	case PartitionGenHyperplane:
		t.partitionHyperplane(m, &asn, i1, i2)
	default:
		t.partitionBalanced(m, &asn, i1, i2)
	}
	for x := 0; x < m.n; x++ {
		r := asn.dist[x] + childRadius[x]
		if asn.side[x] == 0 {
			if r > asn.r1 {
				asn.r1 = r
			}
		} else if r > asn.r2 {
			asn.r2 = r
		}
	}
	return asn
}

// partitionBalanced alternates between the two routers, each taking its
// nearest still-unassigned object, until the bucket is exhausted. With an
// even bucket the outputs end up the same size.
func (t *Tree[T, ID, R]) partitionBalanced(m *distMatrix[R], asn *assignment[R], i1, i2 int) {
	ord1 := routerOrder(m, i1)
	ord2 := routerOrder(m, i2)
	assigned := make([]bool, m.n)
	p1, p2 := 0, 0
	n1, n2 := 0, 0
	for placed, turn := 0, 0; placed < m.n; turn ^= 1 {
		if turn == 0 && n1 < t.capacity {
			for assigned[ord1[p1]] {
				p1++
			}
			x := ord1[p1]
			assigned[x] = true
			asn.side[x], asn.dist[x] = 0, m.at(i1, x)
			n1++
			placed++
		} else if turn == 1 && n2 < t.capacity {
			for assigned[ord2[p2]] {
				p2++
			}
			x := ord2[p2]
			assigned[x] = true
			asn.side[x], asn.dist[x] = 1, m.at(i2, x)
			n2++
			placed++
		}
	}
}

// partitionHyperplane sends each object to its nearer router, ties to the
// first, redirecting to the other side when an output is already full. The
// routers themselves are pinned to their own output so each new node keeps a
// centre entry.
func (t *Tree[T, ID, R]) partitionHyperplane(m *distMatrix[R], asn *assignment[R], i1, i2 int) {
	n1, n2 := 0, 0
	place := func(x int, side uint8) {
		if side == 0 {
			asn.side[x], asn.dist[x] = 0, m.at(i1, x)
			n1++
		} else {
			asn.side[x], asn.dist[x] = 1, m.at(i2, x)
			n2++
		}
	}
	place(i1, 0)
	place(i2, 1)
	for x := 0; x < m.n; x++ {
		if x == i1 || x == i2 {
			continue
		}
		side := uint8(0)
		if m.at(i2, x) < m.at(i1, x) {
			side = 1
		}
		if side == 0 && n1 >= t.capacity {
			side = 1
		} else if side == 1 && n2 >= t.capacity {
			side = 0
		}
		place(x, side)
	}
}

// routerOrder sorts bucket indices by ascending distance to the router at
// index ri; ri itself sorts ahead of any equidistant object so every router
// lands in its own output node even when all distances are zero.
func routerOrder[R Number](m *distMatrix[R], ri int) []int {
	ord := make([]int, m.n)
	for i := range ord {
		ord[i] = i
	}
	sort.Slice(ord, func(a, b int) bool {
		da, db := m.at(ri, ord[a]), m.at(ri, ord[b])
		if da != db {
			return da < db
		}
		if ord[a] == ri {
			return true
		}
		if ord[b] == ri {
			return false
		}
		return ord[a] < ord[b]
	})
	return ord
}
