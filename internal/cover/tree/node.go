package tree

import "math"

// Node is a cover-tree node. Children sit one level below and were inserted
// within base^level of point; radius bounds the whole subtree once Freeze
// has run.
type Node struct {
	level    int32
	point    *Point
	children []Node
	radius   float32
	version  uint64
}

func newNode(point *Point, level int32) Node {
	return Node{level: level, point: point}
}

// coverRadius returns base^level.
func coverRadius(base float32, level int32) float32 {
	return float32(math.Pow(float64(base), float64(level)))
}
