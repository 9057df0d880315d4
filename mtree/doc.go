// Package mtree implements an in-memory M-Tree: a height-balanced access
// structure for similarity search over a general metric space. Given a
// distance function satisfying the metric axioms, the tree answers range
// queries (every object within a radius of a query) and k-nearest-neighbour
// queries, pruning subtrees with triangle-inequality lower bounds over cached
// distances and covering radii.
//
// The split strategy is pluggable along two axes: how the two replacement
// routing objects are promoted out of an overflowing node, and how the
// node's entries are partitioned between them.
//
// A tree instance is not safe for concurrent use; callers that share one
// across goroutines must layer their own locking.
package mtree
