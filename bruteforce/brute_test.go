package bruteforce

import (
	"sort"
	"testing"

	"github.com/xd009642/m-tree/metric"
)

func testIndex() *Index {
	var idx Index
	idx.Build([]Record{
		{ID: "a", Point: metric.NewPoint(0)},
		{ID: "b", Point: metric.NewPoint(10)},
		{ID: "c", Point: metric.NewPoint(11)},
		{ID: "d", Point: metric.NewPoint(50)},
	})
	return &idx
}

func TestRange(t *testing.T) {
	idx := testIndex()
	got := idx.Range(metric.NewPoint(10), 2)
	sort.Strings(got)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("Range(10, 2) = %v, want [b c]", got)
	}
	if got := idx.Range(metric.NewPoint(100), 1); got != nil {
		t.Fatalf("Range(100, 1) = %v, want none", got)
	}
}

func TestKNN(t *testing.T) {
	idx := testIndex()
	ids, dists := idx.KNN(metric.NewPoint(10), 3)
	if len(ids) != 3 {
		t.Fatalf("KNN returned %d results, want 3", len(ids))
	}
	if ids[0] != "b" || dists[0] != 0 {
		t.Errorf("nearest = (%s, %v), want (b, 0)", ids[0], dists[0])
	}
	if ids[1] != "c" || dists[1] != 1 {
		t.Errorf("second = (%s, %v), want (c, 1)", ids[1], dists[1])
	}
	if ids[2] != "a" || dists[2] != 10 {
		t.Errorf("third = (%s, %v), want (a, 10)", ids[2], dists[2])
	}

	// k larger than the record count truncates.
	ids, _ = idx.KNN(metric.NewPoint(0), 10)
	if len(ids) != 4 {
		t.Fatalf("KNN with oversized k returned %d results, want 4", len(ids))
	}
}
