package mtree

// splitLeaf splits a full leaf while admitting one more entry: the leaf's
// entries plus the newcomer are promoted and partitioned into two fresh
// leaves, which then replace the original in the parent level.
func (t *Tree[T, ID, R]) splitLeaf(n *node[T, ID, R], extra leafEntry[T, ID, R]) {
	bucket := make([]leafEntry[T, ID, R], 0, len(n.leaves)+1)
	bucket = append(bucket, n.leaves...)
	bucket = append(bucket, extra)

	refs := make([]T, len(bucket))
	for i := range bucket {
		refs[i] = bucket[i].value
	}
	radii := make([]R, len(bucket))
	m := newDistMatrix(t, refs)
	i1, i2, asn := t.promoteBucket(m, radii)
	// A non-root node keeps its centre as one of the two routers, so the
	// entries that replace it in the parent still carry the parent's centre.
	if pr := n.parentRouter(); pr != nil {
		for x := range bucket {
			if bucket[x].id == pr.refID && x != i1 && x != i2 {
				i2, asn = x, nil
			}
		}
	}
	if asn == nil {
		a := t.partitionBucket(m, radii, i1, i2)
		asn = &a
	}

	n1 := &node[T, ID, R]{leaf: true}
	n2 := &node[T, ID, R]{leaf: true}
	for x := range bucket {
		e := bucket[x]
		e.distParent = asn.dist[x]
		if asn.side[x] == 0 {
			n1.leaves = append(n1.leaves, e)
		} else {
			n2.leaves = append(n2.leaves, e)
		}
	}

	r1 := routingEntry[T, ID, R]{ref: bucket[i1].value, refID: bucket[i1].id, child: n1, radius: asn.r1}
	r2 := routingEntry[T, ID, R]{ref: bucket[i2].value, refID: bucket[i2].id, child: n2, radius: asn.r2}
	t.reattach(n, r1, r2)
}

// splitInternal is the routing-entry counterpart of splitLeaf, invoked when
// a parent overflows while a lower split reattaches.
func (t *Tree[T, ID, R]) splitInternal(n *node[T, ID, R], extra routingEntry[T, ID, R]) {
	bucket := make([]routingEntry[T, ID, R], 0, len(n.routers)+1)
	bucket = append(bucket, n.routers...)
	bucket = append(bucket, extra)

	refs := make([]T, len(bucket))
	radii := make([]R, len(bucket))
	for i := range bucket {
		refs[i] = bucket[i].ref
		radii[i] = bucket[i].radius
	}
	m := newDistMatrix(t, refs)
	i1, i2, asn := t.promoteBucket(m, radii)
	if pr := n.parentRouter(); pr != nil {
		for x := range bucket {
			if bucket[x].refID == pr.refID && x != i1 && x != i2 {
				i2, asn = x, nil
			}
		}
	}
	if asn == nil {
		a := t.partitionBucket(m, radii, i1, i2)
		asn = &a
	}

	n1 := &node[T, ID, R]{}
	n2 := &node[T, ID, R]{}
	for x := range bucket {
		e := bucket[x]
		e.distParent = asn.dist[x]
		if asn.side[x] == 0 {
			e.child.parent = n1
			n1.routers = append(n1.routers, e)
		} else {
			e.child.parent = n2
			n2.routers = append(n2.routers, e)
		}
	}

	r1 := routingEntry[T, ID, R]{ref: bucket[i1].ref, refID: bucket[i1].refID, child: n1, radius: asn.r1}
	r2 := routingEntry[T, ID, R]{ref: bucket[i2].ref, refID: bucket[i2].refID, child: n2, radius: asn.r2}
	t.reattach(n, r1, r2)
}

// reattach installs the two split products in place of n. A split root grows
// a new root above the pair; otherwise the first replaces n's routing entry
// in the parent in place and the second is appended, recursively splitting
// the parent when it too is full. Parent distances of the new entries are
// recomputed against the parent's own routing object since the split changed
// what they are measured from.
func (t *Tree[T, ID, R]) reattach(n *node[T, ID, R], r1, r2 routingEntry[T, ID, R]) {
	p := n.parent
	if p == nil {
		root := &node[T, ID, R]{}
		r1.child.parent = root
		r2.child.parent = root
		root.routers = append(root.routers, r1, r2)
		t.root = root
		return
	}

	slot := -1
	for i := range p.routers {
		if p.routers[i].child == n {
			slot = i
			break
		}
	}
	if pr := p.parentRouter(); pr != nil {
		r1.distParent = t.distance(pr.ref, r1.ref)
	}
	r1.child.parent = p
	p.routers[slot] = r1

	if len(p.routers) < t.capacity {
		if pr := p.parentRouter(); pr != nil {
			r2.distParent = t.distance(pr.ref, r2.ref)
		}
		r2.child.parent = p
		p.routers = append(p.routers, r2)
		return
	}
	t.splitInternal(p, r2)
}
