package mtree

import (
	"container/heap"
	"sort"
)

// Neighbor is one kNN result: a stored identifier and its distance to the
// query.
type Neighbor[ID comparable, R Number] struct {
	ID       ID
	Distance R
}

// KNN returns up to k stored objects nearest to q, ascending by distance,
// ties broken arbitrarily. k must be at least 1. An empty tree yields no
// results.
//
// The search is best-first over a priority queue of subtrees keyed by the
// triangle-inequality lower bound on the distance from q to anything stored
// beneath them. A bounded candidate list tracks the k best known distance
// bounds: confirmed matches, plus one upper-bound placeholder per pending
// subtree. A placeholder is removed the moment its subtree is expanded, so
// every list entry always vouches for a distinct stored object and the k-th
// entry is a sound pruning bound.
func (t *Tree[T, ID, R]) KNN(q T, k int) []Neighbor[ID, R] {
	if k < 1 {
		panic("mtree: k must be at least 1")
	}
	if t.root == nil {
		return nil
	}

	res := &nnList[T, ID, R]{k: k}
	pq := &nodeQueue[T, ID, R]{}
	heap.Init(pq)
	heap.Push(pq, pqItem[T, ID, R]{n: t.root})

	for pq.Len() > 0 {
		it := heap.Pop(pq).(pqItem[T, ID, R])
		if dk, ok := res.bound(); ok && it.dmin > dk {
			break
		}
		res.drop(it.n)
		if it.n.leaf {
			for i := range it.n.leaves {
				e := &it.n.leaves[i]
				if dk, ok := res.bound(); ok && absDiff(it.dq, e.distParent) > dk {
					continue
				}
				d := t.distance(q, e.value)
				if dk, ok := res.bound(); !ok || d <= dk {
					res.insert(candidate[T, ID, R]{id: e.id, dist: d})
				}
			}
			continue
		}
		for i := range it.n.routers {
			r := &it.n.routers[i]
			if dk, ok := res.bound(); ok && absDiff(it.dq, r.distParent) > dk+r.radius {
				continue
			}
			dqr := t.distance(q, r.ref)
			var dmin R
			if dqr > r.radius {
				dmin = dqr - r.radius
			}
			if dk, ok := res.bound(); ok && dmin > dk {
				continue
			}
			heap.Push(pq, pqItem[T, ID, R]{n: r.child, dmin: dmin, dq: dqr})
			dmax := dqr + r.radius
			if dk, ok := res.bound(); !ok || dmax < dk {
				res.insert(candidate[T, ID, R]{dist: dmax, node: r.child})
			}
		}
	}

	out := make([]Neighbor[ID, R], 0, len(res.cands))
	for _, c := range res.cands {
		if c.node != nil {
			continue
		}
		out = append(out, Neighbor[ID, R]{ID: c.id, Distance: c.dist})
	}
	return out
}

// candidate is a row of the running result list: either a confirmed match or
// an upper-bound placeholder for a subtree still on the queue.
type candidate[T any, ID comparable, R Number] struct {
	id   ID
	dist R
	node *node[T, ID, R] // non-nil marks a placeholder for that subtree
}

// nnList is the length-bounded ascending list of the k best known distance
// bounds.
type nnList[T any, ID comparable, R Number] struct {
	k     int
	cands []candidate[T, ID, R]
}

func (l *nnList[T, ID, R]) full() bool { return len(l.cands) == l.k }

// bound returns the current k-th best distance; ok is false while fewer than
// k bounds are known, in which case nothing may be pruned.
func (l *nnList[T, ID, R]) bound() (R, bool) {
	if !l.full() {
		var zero R
		return zero, false
	}
	return l.cands[l.k-1].dist, true
}

func (l *nnList[T, ID, R]) insert(c candidate[T, ID, R]) {
	i := sort.Search(len(l.cands), func(i int) bool { return l.cands[i].dist > c.dist })
	l.cands = append(l.cands, candidate[T, ID, R]{})
	copy(l.cands[i+1:], l.cands[i:])
	l.cands[i] = c
	if len(l.cands) > l.k {
		l.cands = l.cands[:l.k]
	}
}

// drop removes the placeholder for n, if it is still on the list.
func (l *nnList[T, ID, R]) drop(n *node[T, ID, R]) {
	for i := range l.cands {
		if l.cands[i].node == n {
			l.cands = append(l.cands[:i], l.cands[i+1:]...)
			return
		}
	}
}

// pqItem orders pending subtrees by the lower bound on the distance from the
// query to anything stored beneath them. dq caches the distance from the
// query to the node's parent routing object for the cheap per-entry test.
type pqItem[T any, ID comparable, R Number] struct {
	n    *node[T, ID, R]
	dmin R
	dq   R
}

type nodeQueue[T any, ID comparable, R Number] []pqItem[T, ID, R]

func (q nodeQueue[T, ID, R]) Len() int           { return len(q) }
func (q nodeQueue[T, ID, R]) Less(i, j int) bool { return q[i].dmin < q[j].dmin }
func (q nodeQueue[T, ID, R]) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue[T, ID, R]) Push(x any) { *q = append(*q, x.(pqItem[T, ID, R])) }

func (q *nodeQueue[T, ID, R]) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
