package tree

// Neighbor describes a candidate returned by a kNN search.
type Neighbor struct {
	Point    *Point
	Distance float32
}

// Neighbors implements heap.Interface as a max-heap: the root is the worst
// candidate, i.e. the farthest one, and among equally distant candidates the
// one inserted last.
type Neighbors []Neighbor

func (h Neighbors) Len() int { return len(h) }
func (h Neighbors) Less(i, j int) bool {
	if h[i].Distance != h[j].Distance {
		return h[i].Distance > h[j].Distance
	}
	return h[i].Point.index > h[j].Point.index
}
func (h Neighbors) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *Neighbors) Push(x interface{}) {
	*h = append(*h, x.(Neighbor))
}

func (h *Neighbors) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// better reports whether a candidate at distance d with the given point index
// should replace the current worst entry.
func (h Neighbors) better(d float32, index int32) bool {
	worst := h[0]
	if d != worst.Distance {
		return d < worst.Distance
	}
	return index < worst.Point.index
}
