package mtree

import (
	"math/rand"

	"golang.org/x/exp/constraints"
)

// Number constrains the distance scalar to totally ordered numeric types.
type Number interface {
	constraints.Integer | constraints.Float
}

// DistanceFunc computes the metric distance between two elements. It must be
// non-negative, zero exactly for indistinguishable elements, symmetric, and
// obey the triangle inequality; the search pruning is unsound otherwise.
type DistanceFunc[T any, R Number] func(a, b T) R

// DefaultCapacity is the per-node entry capacity used when none is configured.
const DefaultCapacity = 3

// Tree is an M-Tree over elements of type T, identified externally by ID,
// with distances measured in R.
type Tree[T any, ID comparable, R Number] struct {
	root      *node[T, ID, R]
	dist      DistanceFunc[T, R]
	capacity  int
	promote   PromotePolicy
	partition PartitionPolicy
	rng       *rand.Rand
	count     int
}

type config struct {
	capacity  int
	promote   PromotePolicy
	partition PartitionPolicy
	src       rand.Source
}

// Option configures a tree at construction time.
type Option func(*config)

// WithCapacity sets the per-node entry capacity. Must be at least 2.
func WithCapacity(c int) Option {
	return func(cfg *config) { cfg.capacity = c }
}

// WithPromotePolicy sets the initial promotion strategy.
func WithPromotePolicy(p PromotePolicy) Option {
	return func(cfg *config) { cfg.promote = p }
}

// WithPartitionPolicy sets the initial partition strategy.
func WithPartitionPolicy(p PartitionPolicy) Option {
	return func(cfg *config) { cfg.partition = p }
}

// WithRandSource supplies the randomness used by the Random and Sampling
// promotion policies, e.g. for reproducible runs.
func WithRandSource(src rand.Source) Option {
	return func(cfg *config) { cfg.src = src }
}

// New constructs an empty tree around the given distance function. The
// default configuration uses capacity 3, MLBDist promotion, and Balanced
// partitioning. New panics if dist is nil or the capacity is below 2.
func New[T any, ID comparable, R Number](dist DistanceFunc[T, R], opts ...Option) *Tree[T, ID, R] {
	cfg := config{capacity: DefaultCapacity, promote: PromoteMLBDist, partition: PartitionBalanced}
	for _, opt := range opts {
		opt(&cfg)
	}
	if dist == nil {
		panic("mtree: nil distance function")
	}
	if cfg.capacity < 2 {
		panic("mtree: node capacity must be at least 2")
	}
	src := cfg.src
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &Tree[T, ID, R]{
		dist:      dist,
		capacity:  cfg.capacity,
		promote:   cfg.promote,
		partition: cfg.partition,
		rng:       rand.New(src),
	}
}

// Size returns the number of stored objects.
func (t *Tree[T, ID, R]) Size() int { return t.count }

// Empty reports whether the tree holds no objects.
func (t *Tree[T, ID, R]) Empty() bool { return t.count == 0 }

// Capacity returns the per-node entry capacity.
func (t *Tree[T, ID, R]) Capacity() int { return t.capacity }

// Clear drops every node; the tree is empty afterwards and ready for reuse.
func (t *Tree[T, ID, R]) Clear() {
	t.root = nil
	t.count = 0
}

// SetPromotePolicy changes the promotion strategy for subsequent splits.
func (t *Tree[T, ID, R]) SetPromotePolicy(p PromotePolicy) { t.promote = p }

// SetPartitionPolicy changes the partition strategy for subsequent splits.
func (t *Tree[T, ID, R]) SetPartitionPolicy(p PartitionPolicy) { t.partition = p }

// Insert places value into the tree under the given identifier. Identifier
// uniqueness is the caller's responsibility; the tree does not enforce it.
func (t *Tree[T, ID, R]) Insert(id ID, value T) {
	if t.root == nil {
		t.root = &node[T, ID, R]{leaf: true}
	}
	n := t.root
	var dParent R
	for !n.leaf {
		n, dParent = t.routeInsert(n, value)
	}
	if len(n.leaves) < t.capacity {
		n.leaves = append(n.leaves, leafEntry[T, ID, R]{value: value, id: id, distParent: dParent})
	} else {
		t.splitLeaf(n, leafEntry[T, ID, R]{value: value, id: id})
	}
	t.count++
}

// routeInsert picks the child to descend into: the closest router whose
// region already encloses value, or failing that the router needing the
// least radius enlargement, which is then applied. Equidistant routers
// resolve to the first in entry order. Returns the child and the distance
// from value to the chosen routing object.
func (t *Tree[T, ID, R]) routeInsert(n *node[T, ID, R], value T) (*node[T, ID, R], R) {
	dists := make([]R, len(n.routers))
	for i := range n.routers {
		dists[i] = t.distance(value, n.routers[i].ref)
	}
	best := -1
	for i := range n.routers {
		if dists[i] <= n.routers[i].radius && (best < 0 || dists[i] < dists[best]) {
			best = i
		}
	}
	if best < 0 {
		for i := range n.routers {
			if best < 0 || dists[i]-n.routers[i].radius < dists[best]-n.routers[best].radius {
				best = i
			}
		}
		n.routers[best].radius = dists[best]
	}
	return n.routers[best].child, dists[best]
}

// distance invokes the metric and rejects negative results, which violate
// the metric contract and would corrupt the pruning bounds.
func (t *Tree[T, ID, R]) distance(a, b T) R {
	d := t.dist(a, b)
	var zero R
	if d < zero {
		panic("mtree: distance function returned a negative value")
	}
	return d
}

// absDiff is |a-b| written to avoid underflow on unsigned scalars.
func absDiff[R Number](a, b R) R {
	if a > b {
		return a - b
	}
	return b - a
}
