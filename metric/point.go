package metric

import "github.com/viant/vec/search"

// Point is a float32 vector with a cached magnitude for cosine distances.
type Point struct {
	Vector    []float32
	Magnitude float32
}

// NewPoint builds a point and caches its magnitude.
func NewPoint(vector ...float32) *Point {
	return &Point{Vector: vector, Magnitude: search.Float32s(vector).Magnitude()}
}

// Euclidean returns the Euclidean distance between two points.
func Euclidean(a, b *Point) float32 {
	return search.Float32s(a.Vector).EuclideanDistance(b.Vector)
}

// Cosine returns the cosine distance (1 - cosine similarity) between two
// points, reusing the cached magnitudes. Cosine distance does not satisfy
// the triangle inequality, so tree searches over it may miss results.
func Cosine(a, b *Point) float32 {
	m1, m2 := a.Magnitude, b.Magnitude
	if m1 == 0 {
		m1 = search.Float32s(a.Vector).Magnitude()
	}
	if m2 == 0 {
		m2 = search.Float32s(b.Vector).Magnitude()
	}
	return search.Float32s(a.Vector).CosineDistanceWithMagnitude(b.Vector, m1, m2)
}
