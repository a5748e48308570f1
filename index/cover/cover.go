package cover

import (
	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/internal/cover/tree"
	"github.com/viant/kbvec/vector"
)

// DefaultBase is the cover tree expansion base.
const DefaultBase float32 = 1.3

// candidateSlack is the relative float32 distance band treated as a
// possible tie at the k-th result.
const candidateSlack = 1e-4

// Option configures an Index.
type Option func(*Index)

// WithBase overrides the cover tree base; values <= 1 fall back to DefaultBase.
func WithBase(base float32) Option {
	return func(i *Index) {
		if base > 1 {
			i.base = base
		}
	}
}

// Index implements index.Index on top of a Euclidean cover tree.
type Index struct {
	base  float32
	tree  *tree.Tree[int]
	items []index.Item
	dim   int
}

// New returns an empty cover index.
func New(opts ...Option) *Index {
	ret := &Index{base: DefaultBase}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Build inserts items in order; the tree keeps the item slot as its value.
func (i *Index) Build(items []index.Item) error {
	dim, err := index.Dimension(items)
	if err != nil {
		return err
	}
	t := tree.NewTree[int](i.base)
	for slot, item := range items {
		t.Insert(slot, tree.NewPoint(item.Vector...))
	}
	t.Freeze()
	i.tree = t
	i.items = append([]index.Item(nil), items...)
	i.dim = dim
	return nil
}

// Search returns the k nearest items. Distances are recomputed in float64 so
// they agree with the other index kinds.
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
	found := i.candidates(query, k)
	out := make([]index.Neighbor, 0, len(found))
	for _, n := range found {
		item := i.items[i.tree.Value(n.Point)]
		d, err := vector.L2Distance(query, item.Vector)
		if err != nil {
			return nil, err
		}
		out = append(out, index.Neighbor{Position: item.Position, Distance: d})
	}
	index.Sort(out)
	return index.Pad(out, k), nil
}

// candidates asks the tree for more than k points until the float32
// distance of the last candidate clears the k-th by candidateSlack, so every
// item that can rank within k after the float64 re-sort is present.
func (i *Index) candidates(query []float32, k int) []*tree.Neighbor {
	point := tree.NewPoint(query...)
	n := len(i.items)
	fetch := k + 1
	for {
		if fetch >= n {
			return i.tree.KNearestNeighbors(point, n)
		}
		found := i.tree.KNearestNeighbors(point, fetch)
		if len(found) < fetch {
			return found
		}
		kth := found[k-1].Distance
		if found[len(found)-1].Distance > kth+candidateSlack*(1+kth) {
			return found
		}
		fetch *= 2
	}
}

// Len returns the number of stored vectors.
func (i *Index) Len() int { return len(i.items) }

// Dimension returns the vector dimension.
func (i *Index) Dimension() int { return i.dim }

var _ index.Index = (*Index)(nil)
