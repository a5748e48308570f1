package index

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/viant/kbvec/vector"
)

// NotFound is the position reported for placeholder neighbours when a search
// asks for more results than the index holds.
const NotFound = -1

// ErrDimensionMismatch is returned when a query or item vector does not
// match the index dimension.
var ErrDimensionMismatch = errors.New("index: dimension mismatch")

// Item pairs an embedding with the position of the document it was computed
// from, so results never depend on parallel slice alignment.
type Item struct {
	Position int
	Vector   []float32
}

// Neighbor is a single search hit. Distance is the Euclidean distance to the
// query; placeholders carry Position == NotFound and an infinite distance.
type Neighbor struct {
	Position int
	Distance float64
}

// Found reports whether n references a stored item.
func (n Neighbor) Found() bool { return n.Position != NotFound }

// Index defines an exact L2 vector index with a build-once lifecycle.
type Index interface {
	// Build constructs the index from the given items. All vectors must be
	// non-empty and share one dimension. Build is called exactly once.
	Build(items []Item) error

	// Search returns exactly k neighbours ordered by ascending distance, ties
	// broken by ascending position. When k exceeds Len, the tail is padded
	// with NotFound placeholders. k <= 0 yields no neighbours.
	Search(query []float32, k int) ([]Neighbor, error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimension returns the vector dimension, 0 for an empty index.
	Dimension() int
}

// Dimension validates items and returns their shared dimension. Vectors must
// be finite and positions unique and non-negative.
func Dimension(items []Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	dim := len(items[0].Vector)
	if dim == 0 {
		return 0, fmt.Errorf("index: empty vector at position %d", items[0].Position)
	}
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if len(item.Vector) != dim {
			return 0, fmt.Errorf("%w: position %d has %d, want %d", ErrDimensionMismatch, item.Position, len(item.Vector), dim)
		}
		if err := vector.CheckFinite(item.Vector); err != nil {
			return 0, fmt.Errorf("index: position %d: %w", item.Position, err)
		}
		if item.Position < 0 {
			return 0, fmt.Errorf("index: negative position %d", item.Position)
		}
		if _, ok := seen[item.Position]; ok {
			return 0, fmt.Errorf("index: duplicate position %d", item.Position)
		}
		seen[item.Position] = struct{}{}
	}
	return dim, nil
}

// CheckQuery validates the query dimension against the index dimension.
func CheckQuery(query []float32, dim int) error {
	if len(query) != dim {
		return fmt.Errorf("%w: query has %d, index has %d", ErrDimensionMismatch, len(query), dim)
	}
	if err := vector.CheckFinite(query); err != nil {
		return fmt.Errorf("index: query: %w", err)
	}
	return nil
}

// Sort orders neighbours by ascending distance, then ascending position.
func Sort(neighbors []Neighbor) {
	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].Distance != neighbors[j].Distance {
			return neighbors[i].Distance < neighbors[j].Distance
		}
		return neighbors[i].Position < neighbors[j].Position
	})
}

// Pad truncates or extends neighbors to exactly k entries using NotFound
// placeholders.
func Pad(neighbors []Neighbor, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	if len(neighbors) >= k {
		return neighbors[:k]
	}
	out := make([]Neighbor, k)
	copy(out, neighbors)
	for i := len(neighbors); i < k; i++ {
		out[i] = Neighbor{Position: NotFound, Distance: math.Inf(1)}
	}
	return out
}
