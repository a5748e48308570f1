package tree

import (
	"math/rand"
	"sort"
	"testing"
)

func randomVectors(rng *rand.Rand, n, dim int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		v := make([]float32, dim)
		for j := range v {
			v[j] = rng.Float32()*2 - 1
		}
		out[i] = v
	}
	return out
}

func TestTree_KNearestNeighborsMatchesExhaustiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	vectors := randomVectors(rng, 300, 8)
	tree := NewTree[int](1.3)
	for i, v := range vectors {
		tree.Insert(i, NewPoint(v...))
	}
	if tree.Len() != len(vectors) {
		t.Fatalf("Len = %d, want %d", tree.Len(), len(vectors))
	}

	for q := 0; q < 20; q++ {
		query := NewPoint(randomVectors(rng, 1, 8)[0]...)
		type scored struct {
			pos  int
			dist float32
		}
		all := make([]scored, len(vectors))
		for i, v := range vectors {
			all[i] = scored{pos: i, dist: EuclideanDistance(query, NewPoint(v...))}
		}
		sort.SliceStable(all, func(a, b int) bool { return all[a].dist < all[b].dist })

		const k = 5
		got := tree.KNearestNeighbors(query, k)
		if len(got) != k {
			t.Fatalf("query %d: got %d neighbours, want %d", q, len(got), k)
		}
		for n := 0; n < k; n++ {
			if pos := tree.Value(got[n].Point); pos != all[n].pos {
				t.Fatalf("query %d: neighbour %d = %d, want %d", q, n, pos, all[n].pos)
			}
		}
	}
}

func TestTree_KNearestNeighborsEdgeCases(t *testing.T) {
	tree := NewTree[string](0)
	if got := tree.KNearestNeighbors(NewPoint(1, 1), 3); got != nil {
		t.Fatalf("empty tree returned %v", got)
	}

	tree.Insert("a", NewPoint(0, 0))
	tree.Insert("b", NewPoint(1, 0))

	if got := tree.KNearestNeighbors(NewPoint(0, 0), 0); got != nil {
		t.Fatalf("k=0 returned %v", got)
	}
	got := tree.KNearestNeighbors(NewPoint(0, 0), 10)
	if len(got) != 2 {
		t.Fatalf("k=10 returned %d neighbours, want 2", len(got))
	}
	if tree.Value(got[0].Point) != "a" || got[0].Distance != 0 {
		t.Fatalf("nearest = %v@%v, want a@0", tree.Value(got[0].Point), got[0].Distance)
	}
}

func TestTree_TiesResolvedByInsertionOrder(t *testing.T) {
	tree := NewTree[int](1.3)
	tree.Insert(0, NewPoint(1, 0))
	tree.Insert(1, NewPoint(-1, 0))
	tree.Insert(2, NewPoint(0, 1))
	tree.Insert(3, NewPoint(0, -1))

	got := tree.KNearestNeighbors(NewPoint(0, 0), 2)
	if len(got) != 2 {
		t.Fatalf("got %d neighbours, want 2", len(got))
	}
	if tree.Value(got[0].Point) != 0 || tree.Value(got[1].Point) != 1 {
		t.Fatalf("ties = [%d %d], want [0 1]", tree.Value(got[0].Point), tree.Value(got[1].Point))
	}
}

func TestTree_Value(t *testing.T) {
	tree := NewTree[string](2)
	p := NewPoint(3, 4)
	if p.HasValue() || p.Index() != -1 {
		t.Fatalf("fresh point has index %d", p.Index())
	}
	if got := tree.Insert("x", p); got != 0 || p.Index() != 0 {
		t.Fatalf("Insert = %d, index = %d, want 0", got, p.Index())
	}
	if tree.Value(p) != "x" {
		t.Fatalf("Value = %q, want x", tree.Value(p))
	}
	if tree.Value(NewPoint(3, 4)) != "" {
		t.Fatalf("uninserted point resolved to a value")
	}
	if d := EuclideanDistance(NewPoint(0, 0), p); d != 5 {
		t.Fatalf("EuclideanDistance = %v, want 5", d)
	}
}
