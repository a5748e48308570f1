package tree

import "github.com/viant/vec/search"

// EuclideanDistance is the metric the tree is built and searched with.
func EuclideanDistance(p1, p2 *Point) float32 {
	return search.Float32s(p1.Vector).EuclideanDistance(p2.Vector)
}
