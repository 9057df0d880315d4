package metric

import (
	"math"
	"testing"
)

func TestAbsolute(t *testing.T) {
	if d := Absolute(3, 10); d != 7 {
		t.Fatalf("Absolute(3, 10) = %v, want 7", d)
	}
	if d := Absolute(10, 3); d != 7 {
		t.Fatalf("Absolute(10, 3) = %v, want 7", d)
	}
	if d := Absolute(5, 5); d != 0 {
		t.Fatalf("Absolute(5, 5) = %v, want 0", d)
	}
}

func TestHamming(t *testing.T) {
	if d := Hamming("cat", "cat"); d != 0 {
		t.Fatalf("Hamming(cat, cat) = %d, want 0", d)
	}
	if d := Hamming("cat", "bat"); d != 1 {
		t.Fatalf("Hamming(cat, bat) = %d, want 1", d)
	}
	if d := Hamming("cat", "dog"); d != 3 {
		t.Fatalf("Hamming(cat, dog) = %d, want 3", d)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("Hamming over unequal lengths did not panic")
		}
	}()
	Hamming("cat", "mouse")
}

func TestEuclidean(t *testing.T) {
	a := NewPoint(0, 0)
	b := NewPoint(3, 4)
	if d := Euclidean(a, b); d != 5 {
		t.Fatalf("Euclidean((0,0), (3,4)) = %v, want 5", d)
	}
}

func TestCosine(t *testing.T) {
	a := NewPoint(1, 0)
	b := NewPoint(0, 1)
	c := NewPoint(2, 0)

	// Orthogonal vectors -> distance 1
	if d := Cosine(a, b); math.Abs(float64(d)-1) > 1e-6 {
		t.Fatalf("Cosine(a, b) = %v, want 1", d)
	}
	// Parallel vectors -> distance 0
	if d := Cosine(a, c); math.Abs(float64(d)) > 1e-6 {
		t.Fatalf("Cosine(a, c) = %v, want 0", d)
	}
}

func TestNewPointCachesMagnitude(t *testing.T) {
	p := NewPoint(3, 4)
	if p.Magnitude != 5 {
		t.Fatalf("Magnitude = %v, want 5", p.Magnitude)
	}
}
