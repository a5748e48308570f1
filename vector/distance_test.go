package vector

import (
	"math"
	"testing"
)

func TestL2Distance(t *testing.T) {
	testCases := []struct {
		description string
		a, b        []float32
		expect      float64
		expectErr   bool
	}{
		{description: "3-4-5 triangle", a: []float32{0, 0}, b: []float32{3, 4}, expect: 5},
		{description: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expect: 0},
		{description: "dimension mismatch", a: []float32{1}, b: []float32{1, 2}, expectErr: true},
	}
	for _, testCase := range testCases {
		d, err := L2Distance(testCase.a, testCase.b)
		if testCase.expectErr {
			if err == nil {
				t.Fatalf("%s: expected error", testCase.description)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: L2Distance failed: %v", testCase.description, err)
		}
		if d != testCase.expect {
			t.Fatalf("%s: L2Distance = %v, want %v", testCase.description, d, testCase.expect)
		}
	}
}

func TestSquaredL2Distance(t *testing.T) {
	d, err := SquaredL2Distance([]float32{0, 0}, []float32{3, 4})
	if err != nil {
		t.Fatalf("SquaredL2Distance failed: %v", err)
	}
	if d != 25 {
		t.Fatalf("SquaredL2Distance = %v, want 25", d)
	}
}

func TestNormalize(t *testing.T) {
	v := []float32{3, 4}
	Normalize(v)
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Fatalf("Normalize = %v, want [0.6 0.8]", v)
	}
	zero := []float32{0, 0}
	Normalize(zero)
	if zero[0] != 0 || zero[1] != 0 {
		t.Fatalf("Normalize(zero) = %v, want zeros", zero)
	}
}
