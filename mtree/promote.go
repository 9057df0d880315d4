package mtree

// PromotePolicy selects how a split chooses the two reference objects that
// become the routers of the freshly allocated nodes. The policies follow
// Ciaccia, Patella and Zezula, "M-tree: An Efficient Access Method for
// Similarity Search in Metric Spaces". When a non-root node splits and the
// chosen pair does not include the node's centre, the centre replaces the
// second object of the pair.
type PromotePolicy int

const (
	// PromoteMLBDist promotes the pair with the maximum pairwise distance,
	// using only the precomputed distance matrix.
	PromoteMLBDist PromotePolicy = iota
	// PromoteRandom promotes two distinct objects chosen uniformly at random.
	PromoteRandom
	// PromoteSampling runs max(2, ⌈capacity/10⌉) random trials, partitions each,
	// and keeps the pair whose partition minimises the sum of the two
	// covering radii.
	PromoteSampling
	// PromoteMinRadius partitions every unordered pair and minimises the sum
	// of the two covering radii. The most expensive policy.
	PromoteMinRadius
	// PromoteMinMaxRadius partitions every unordered pair and minimises the
	// larger of the two covering radii.
	PromoteMinMaxRadius
)

// promoteBucket chooses the two router indices for an overflowing bucket.
// Policies that evaluate trial partitions also return the winning assignment
// so the split does not repeat the work; the others return nil.
func (t *Tree[T, ID, R]) promoteBucket(m *distMatrix[R], childRadius []R) (int, int, *assignment[R]) {
	switch t.promote {
	case PromoteRandom:
		i1, i2 := t.randomPair(m.n)
		return i1, i2, nil
	case PromoteSampling:
		trials := (t.capacity + 9) / 10
		if trials < 2 {
			trials = 2
		}
		var bi1, bi2 int
		var best *assignment[R]
		for trial := 0; trial < trials; trial++ {
			i1, i2 := t.randomPair(m.n)
			asn := t.partitionBucket(m, childRadius, i1, i2)
			if best == nil || asn.r1+asn.r2 < best.r1+best.r2 {
				a := asn
				best, bi1, bi2 = &a, i1, i2
			}
		}
		return bi1, bi2, best
	case PromoteMinRadius, PromoteMinMaxRadius:
		var bi1, bi2 int
		var best *assignment[R]
		var bestCost R
		for i := 0; i < m.n; i++ {
			for j := i + 1; j < m.n; j++ {
				asn := t.partitionBucket(m, childRadius, i, j)
				cost := asn.r1 + asn.r2
				if t.promote == PromoteMinMaxRadius {
					cost = asn.r1
					if asn.r2 > cost {
						cost = asn.r2
					}
				}
				if best == nil || cost < bestCost {
					a := asn
					best, bestCost, bi1, bi2 = &a, cost, i, j
				}
			}
		}
		return bi1, bi2, best
	default: // PromoteMLBDist
		i1, i2 := 0, 1
		for i := 0; i < m.n; i++ {
			for j := i + 1; j < m.n; j++ {
				if m.at(i, j) > m.at(i1, i2) {
					i1, i2 = i, j
				}
			}
		}
		return i1, i2, nil
	}
}

// randomPair returns two distinct indices in [0, n).
func (t *Tree[T, ID, R]) randomPair(n int) (int, int) {
	i := t.rng.Intn(n)
	j := t.rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
