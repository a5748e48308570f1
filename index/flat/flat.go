package flat

import (
	"math"

	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/vector"
)

// Index is a brute-force L2 index. It is read-only after Build, so Search is
// safe for concurrent use.
type Index struct {
	items []index.Item
	dim   int
}

// New returns an empty flat index.
func New() *Index { return &Index{} }

// Build copies the items; vectors are shared, not cloned.
func (i *Index) Build(items []index.Item) error {
	dim, err := index.Dimension(items)
	if err != nil {
		return err
	}
	i.items = append([]index.Item(nil), items...)
	i.dim = dim
	return nil
}

// Search scans every stored vector and returns the k closest.
func (i *Index) Search(query []float32, k int) ([]index.Neighbor, error) {
	if k <= 0 {
		return nil, nil
	}
	if len(i.items) == 0 {
		return index.Pad(nil, k), nil
	}
	if err := index.CheckQuery(query, i.dim); err != nil {
		return nil, err
	}
	scored := make([]index.Neighbor, 0, len(i.items))
	for _, item := range i.items {
		d, err := vector.SquaredL2Distance(query, item.Vector)
		if err != nil {
			return nil, err
		}
		scored = append(scored, index.Neighbor{Position: item.Position, Distance: d})
	}
	index.Sort(scored)
	if k < len(scored) {
		scored = scored[:k]
	}
	for j := range scored {
		scored[j].Distance = math.Sqrt(scored[j].Distance)
	}
	return index.Pad(scored, k), nil
}

// Len returns the number of stored vectors.
func (i *Index) Len() int { return len(i.items) }

// Dimension returns the vector dimension.
func (i *Index) Dimension() int { return i.dim }

var _ index.Index = (*Index)(nil)
