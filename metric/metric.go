package metric

import "math"

// Absolute returns |a-b|, the Euclidean distance on the real line.
func Absolute(a, b float64) float64 { return math.Abs(a - b) }

// Hamming returns the number of positions at which a and b differ. The
// strings must have equal length; unequal lengths are a contract violation.
func Hamming(a, b string) int {
	if len(a) != len(b) {
		panic("metric: hamming distance over strings of unequal length")
	}
	n := 0
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
