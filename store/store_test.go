package store

import (
	"context"
	"sort"
	"testing"

	"github.com/xd009642/m-tree/bruteforce"
	"github.com/xd009642/m-tree/metric"
)

func TestEncodeDecodeVector(t *testing.T) {
	vec := []float32{1.5, -2.25, 0, 42}
	out, err := DecodeVector(EncodeVector(vec))
	if err != nil {
		t.Fatalf("DecodeVector failed: %v", err)
	}
	if len(out) != len(vec) {
		t.Fatalf("roundtrip length %d, want %d", len(out), len(vec))
	}
	for i := range vec {
		if out[i] != vec[i] {
			t.Fatalf("roundtrip[%d] = %v, want %v", i, out[i], vec[i])
		}
	}
	if _, err := DecodeVector([]byte{1, 2, 3}); err == nil {
		t.Fatal("DecodeVector accepted a truncated blob")
	}
}

func TestStoreAddLoadRemove(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer db.Close()
	// An in-memory SQLite database is per-connection; pin the pool to one.
	db.SetMaxOpenConns(1)

	st, err := New(db)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	recs := []Record{
		{ID: "p1", Vector: []float32{1, 2}},
		{ID: "p2", Vector: []float32{3, 4}},
		{ID: "p3", Vector: []float32{5, 6}},
	}
	if err := st.Add(context.Background(), recs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != len(recs) {
		t.Fatalf("Load returned %d records, want %d", len(got), len(recs))
	}
	for i := range recs {
		if got[i].ID != recs[i].ID {
			t.Errorf("record %d id = %s, want %s", i, got[i].ID, recs[i].ID)
		}
		for j := range recs[i].Vector {
			if got[i].Vector[j] != recs[i].Vector[j] {
				t.Errorf("record %d vector differs at %d", i, j)
			}
		}
	}

	if err := st.Remove(context.Background(), "p2"); err != nil {
		t.Fatalf("Remove(p2) failed: %v", err)
	}
	got, err = st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after remove failed: %v", err)
	}
	for _, r := range got {
		if r.ID == "p2" {
			t.Fatal("p2 still present after Remove")
		}
	}
}

// TestBuildTreeMatchesExhaustive rebuilds an index from stored records and
// cross-checks a range and a kNN query against the brute-force oracle.
func TestBuildTreeMatchesExhaustive(t *testing.T) {
	recs := []Record{
		{ID: "a", Vector: []float32{0, 0}},
		{ID: "b", Vector: []float32{3, 4}},
		{ID: "c", Vector: []float32{6, 8}},
		{ID: "d", Vector: []float32{20, 0}},
		{ID: "e", Vector: []float32{0, 21}},
		{ID: "f", Vector: []float32{10, 10}},
	}
	tree := BuildTree(recs)
	if tree.Size() != len(recs) {
		t.Fatalf("Size = %d, want %d", tree.Size(), len(recs))
	}

	brecs := make([]bruteforce.Record, len(recs))
	for i, r := range recs {
		brecs[i] = bruteforce.Record{ID: r.ID, Point: metric.NewPoint(r.Vector...)}
	}
	var oracle bruteforce.Index
	oracle.Build(brecs)

	q := metric.NewPoint(1, 1)
	got := tree.Range(q, 10)
	sort.Strings(got)
	want := oracle.Range(q, 10)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("Range = %v, oracle says %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Range = %v, oracle says %v", got, want)
		}
	}

	nn := tree.KNN(q, 3)
	_, wantDists := oracle.KNN(q, 3)
	if len(nn) != len(wantDists) {
		t.Fatalf("KNN returned %d results, want %d", len(nn), len(wantDists))
	}
	for i := range nn {
		if nn[i].Distance != wantDists[i] {
			t.Fatalf("neighbour %d at %v, oracle says %v", i, nn[i].Distance, wantDists[i])
		}
	}
}
