package bruteforce

import (
	"sort"

	"github.com/xd009642/m-tree/metric"
)

// Record pairs an identifier with its point.
type Record struct {
	ID    string
	Point *metric.Point
}

// Index is an exhaustive-scan similarity index over vector records.
type Index struct {
	recs []Record
}

// Build loads the records, replacing any previous contents.
func (i *Index) Build(recs []Record) {
	i.recs = append([]Record(nil), recs...)
}

// Range returns the ids of all records within radius of q.
func (i *Index) Range(q *metric.Point, radius float32) []string {
	var out []string
	for _, r := range i.recs {
		if metric.Euclidean(q, r.Point) <= radius {
			out = append(out, r.ID)
		}
	}
	return out
}

// KNN returns up to k records nearest to q as parallel id and distance
// slices, ascending by distance.
func (i *Index) KNN(q *metric.Point, k int) ([]string, []float32) {
	type scored struct {
		idx  int
		dist float32
	}
	scoreds := make([]scored, len(i.recs))
	for j, r := range i.recs {
		scoreds[j] = scored{idx: j, dist: metric.Euclidean(q, r.Point)}
	}
	sort.Slice(scoreds, func(a, b int) bool { return scoreds[a].dist < scoreds[b].dist })
	if k > len(scoreds) {
		k = len(scoreds)
	}
	if k < 0 {
		k = 0
	}
	ids := make([]string, k)
	dists := make([]float32, k)
	for n := 0; n < k; n++ {
		ids[n] = i.recs[scoreds[n].idx].ID
		dists[n] = scoreds[n].dist
	}
	return ids, dists
}
