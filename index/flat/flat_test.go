package flat

import (
	"errors"
	"testing"

	"github.com/viant/kbvec/index"
)

func buildIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	err := idx.Build([]index.Item{
		{Position: 0, Vector: []float32{0, 0}},
		{Position: 1, Vector: []float32{3, 4}},
		{Position: 2, Vector: []float32{1, 0}},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return idx
}

func TestIndex_Search(t *testing.T) {
	idx := buildIndex(t)

	got, err := idx.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	wantPos := []int{0, 2, 1}
	wantDist := []float64{0, 1, 5}
	for n := range wantPos {
		if got[n].Position != wantPos[n] || got[n].Distance != wantDist[n] {
			t.Fatalf("Search[%d] = %+v, want {%d %v}", n, got[n], wantPos[n], wantDist[n])
		}
	}
}

func TestIndex_SearchPadsWhenKExceedsLen(t *testing.T) {
	idx := buildIndex(t)

	got, err := idx.Search([]float32{3, 4}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Search returned %d neighbours, want 5", len(got))
	}
	if got[0].Position != 1 {
		t.Fatalf("nearest = %d, want 1", got[0].Position)
	}
	for _, n := range got[3:] {
		if n.Position != index.NotFound {
			t.Fatalf("expected NotFound placeholder, got %+v", n)
		}
	}
}

func TestIndex_SearchTiesByPosition(t *testing.T) {
	idx := New()
	if err := idx.Build([]index.Item{
		{Position: 7, Vector: []float32{1, 0}},
		{Position: 3, Vector: []float32{-1, 0}},
		{Position: 5, Vector: []float32{0, 1}},
	}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	got, err := idx.Search([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []int{3, 5, 7}
	for n := range want {
		if got[n].Position != want[n] {
			t.Fatalf("Search[%d] = %d, want %d", n, got[n].Position, want[n])
		}
	}
}

func TestIndex_SearchEdgeCases(t *testing.T) {
	idx := buildIndex(t)

	if got, err := idx.Search([]float32{0, 0}, 0); err != nil || got != nil {
		t.Fatalf("Search(k=0) = %v, %v; want nil, nil", got, err)
	}
	if got, err := idx.Search([]float32{0, 0}, -2); err != nil || got != nil {
		t.Fatalf("Search(k<0) = %v, %v; want nil, nil", got, err)
	}
	if _, err := idx.Search([]float32{0, 0, 0}, 1); !errors.Is(err, index.ErrDimensionMismatch) {
		t.Fatalf("Search(dim 3) err = %v, want ErrDimensionMismatch", err)
	}

	empty := New()
	if err := empty.Build(nil); err != nil {
		t.Fatalf("Build(nil) failed: %v", err)
	}
	got, err := empty.Search([]float32{1}, 2)
	if err != nil {
		t.Fatalf("Search on empty failed: %v", err)
	}
	if len(got) != 2 || got[0].Found() || got[1].Found() {
		t.Fatalf("Search on empty = %+v, want two placeholders", got)
	}
}

func TestIndex_BuildRejectsRaggedVectors(t *testing.T) {
	idx := New()
	err := idx.Build([]index.Item{
		{Position: 0, Vector: []float32{1, 2}},
		{Position: 1, Vector: []float32{1}},
	})
	if !errors.Is(err, index.ErrDimensionMismatch) {
		t.Fatalf("Build err = %v, want ErrDimensionMismatch", err)
	}
}
