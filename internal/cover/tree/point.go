package tree

// Point is a vector stored in, or queried against, the tree.
type Point struct {
	index  int32
	Vector []float32
}

// Index returns the insertion ordinal assigned by Tree.Insert, -1 before.
func (p *Point) Index() int32 {
	if p == nil {
		return -1
	}
	return p.index
}

// HasValue reports whether the point was inserted into a tree.
func (p *Point) HasValue() bool {
	return p != nil && p.index >= 0
}

// NewPoint wraps vector; the slice is not copied.
func NewPoint(vector ...float32) *Point {
	return &Point{Vector: vector, index: -1}
}
