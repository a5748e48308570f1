package cover

import (
	"testing"

	"github.com/viant/kbvec/index"
)

func TestIndex_Search(t *testing.T) {
	idx := New(WithBase(2))
	if idx.base != 2 {
		t.Fatalf("base = %v, want 2", idx.base)
	}
	if err := idx.Build([]index.Item{
		{Position: 10, Vector: []float32{0, 0}},
		{Position: 11, Vector: []float32{5, 5}},
		{Position: 12, Vector: []float32{0.5, 0}},
	}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err := idx.Search([]float32{0.4, 0}, 4)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []int{12, 10, 11, index.NotFound}
	for n := range want {
		if got[n].Position != want[n] {
			t.Fatalf("Search[%d] = %d, want %d", n, got[n].Position, want[n])
		}
	}
}

func TestIndex_EmptyAndInvalidBase(t *testing.T) {
	idx := New(WithBase(0.5))
	if idx.base != DefaultBase {
		t.Fatalf("base = %v, want default", idx.base)
	}
	if err := idx.Build(nil); err != nil {
		t.Fatalf("Build(nil) failed: %v", err)
	}
	got, err := idx.Search([]float32{1, 2}, 1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].Found() {
		t.Fatalf("Search on empty = %+v, want placeholder", got)
	}
}

func TestIndex_TieAtKthFollowsPosition(t *testing.T) {
	// Insertion order is the reverse of position order, so the tree alone
	// would keep the higher position for an exact tie at the boundary.
	items := []index.Item{
		{Position: 5, Vector: []float32{9, 9}},
		{Position: 4, Vector: []float32{1, 1}},
		{Position: 3, Vector: []float32{7, 7}},
		{Position: 2, Vector: []float32{1, 1}},
		{Position: 1, Vector: []float32{8, 8}},
		{Position: 0, Vector: []float32{1, 1}},
	}
	idx := New()
	if err := idx.Build(items); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	testCases := []struct {
		k      int
		expect []int
	}{
		{k: 1, expect: []int{0}},
		{k: 2, expect: []int{0, 2}},
		{k: 3, expect: []int{0, 2, 4}},
		{k: 4, expect: []int{0, 2, 4, 3}},
	}
	for _, testCase := range testCases {
		got, err := idx.Search([]float32{1, 1}, testCase.k)
		if err != nil {
			t.Fatalf("k=%d: Search failed: %v", testCase.k, err)
		}
		if len(got) != testCase.k {
			t.Fatalf("k=%d: got %d neighbours", testCase.k, len(got))
		}
		for n, want := range testCase.expect {
			if got[n].Position != want {
				t.Fatalf("k=%d: Search[%d] = %d, want %d", testCase.k, n, got[n].Position, want)
			}
		}
	}
}
