package vector

import (
	"fmt"
	"math"
)

// L2Distance computes the Euclidean (L2) distance between two vectors. It
// returns an error if the vectors have different lengths.
func L2Distance(a, b []float32) (float64, error) {
	sum, err := SquaredL2Distance(a, b)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(sum), nil
}

// SquaredL2Distance computes the squared Euclidean distance. Ranking by the
// squared value is equivalent to ranking by L2 and skips the square root.
func SquaredL2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum, nil
}

// Normalize scales v in place to unit length. Zero vectors are left intact.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
}
