package tree

// This implementation is adapted from github.com/viant/gds/tree/cover.

import (
	"container/heap"
	"sort"
	"sync"
)

// pruneSlack widens the pruning bound to absorb float32 rounding so that the
// search stays exact.
const pruneSlack = 1e-4

// Tree is a Euclidean cover tree mapping points to values of type T.
//
// Insert takes an exclusive lock. Once Freeze has cached all subtree radii,
// searches only read the tree and may run concurrently.
type Tree[T any] struct {
	root    *Node
	base    float32
	values  []T
	version uint64
	mu      sync.RWMutex
}

// NewTree constructs a cover tree; base <= 1 falls back to 1.3.
func NewTree[T any](base float32) *Tree[T] {
	if base <= 1 {
		base = 1.3
	}
	return &Tree[T]{base: base}
}

// Len returns the number of inserted points.
func (t *Tree[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

// Insert adds a value/point pair and returns the point's insertion ordinal.
func (t *Tree[T]) Insert(value T, point *Point) int32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	point.index = int32(len(t.values))
	t.values = append(t.values, value)
	if t.root == nil {
		node := newNode(point, 0)
		t.root = &node
	} else {
		t.insert(t.root, point, 0)
	}
	t.version++
	return point.index
}

// Freeze computes and caches every subtree radius for the current version.
func (t *Tree[T]) Freeze() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureRadius(t.root)
}

// Value returns the value inserted with point, or the zero value for a point
// that was never inserted.
func (t *Tree[T]) Value(point *Point) T {
	var zero T
	if !point.HasValue() {
		return zero
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if int(point.index) >= len(t.values) {
		return zero
	}
	return t.values[point.index]
}

func (t *Tree[T]) insert(node *Node, point *Point, level int32) {
	for {
		cover := coverRadius(t.base, level)
		if EuclideanDistance(point, node.point) < cover {
			inserted := false
			for i := range node.children {
				child := &node.children[i]
				if EuclideanDistance(point, child.point) < cover {
					node = child
					level--
					inserted = true
					break
				}
			}
			if !inserted {
				node.children = append(node.children, newNode(point, level-1))
				return
			}
		} else {
			level++
			if level > node.level {
				newRoot := newNode(point, level)
				newRoot.children = append(newRoot.children, *t.root)
				t.root = &newRoot
				return
			}
		}
	}
}

// KNearestNeighbors runs a depth-first kNN search and returns up to k
// neighbours ordered by ascending distance, ties by insertion order.
func (t *Tree[T]) KNearestNeighbors(point *Point, k int) []*Neighbor {
	if k <= 0 {
		return nil
	}
	t.mu.RLock()
	frozen := t.root == nil || t.root.version == t.version
	t.mu.RUnlock()
	if !frozen {
		t.Freeze()
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.root == nil {
		return nil
	}
	h := &Neighbors{}
	heap.Init(h)
	t.kNearestNeighbors(t.root, point, k, h)
	result := make([]*Neighbor, h.Len())
	for i := len(result) - 1; i >= 0; i-- {
		n := heap.Pop(h).(Neighbor)
		result[i] = &n
	}
	return result
}

func (t *Tree[T]) kNearestNeighbors(node *Node, point *Point, k int, h *Neighbors) {
	dc := EuclideanDistance(point, node.point)
	if h.Len() < k {
		heap.Push(h, Neighbor{Point: node.point, Distance: dc})
	} else if h.better(dc, node.point.index) {
		heap.Pop(h)
		heap.Push(h, Neighbor{Point: node.point, Distance: dc})
	}
	if len(node.children) == 0 {
		return
	}
	type childDist struct {
		child *Node
		dist  float32
	}
	cds := make([]childDist, 0, len(node.children))
	for i := range node.children {
		child := &node.children[i]
		cds = append(cds, childDist{child: child, dist: EuclideanDistance(point, child.point)})
	}
	sort.SliceStable(cds, func(i, j int) bool { return cds[i].dist < cds[j].dist })
	for _, cd := range cds {
		if h.Len() == k {
			worst := (*h)[0].Distance
			if cd.dist-cd.child.radius > worst+pruneSlack {
				continue
			}
		}
		t.kNearestNeighbors(cd.child, point, k, h)
	}
}

func (t *Tree[T]) ensureRadius(n *Node) float32 {
	if n == nil {
		return 0
	}
	if n.version == t.version {
		return n.radius
	}
	maxR := float32(0)
	for i := range n.children {
		child := &n.children[i]
		cr := t.ensureRadius(child)
		d := EuclideanDistance(n.point, child.point) + cr
		if d > maxR {
			maxR = d
		}
	}
	n.radius = maxR
	n.version = t.version
	return maxR
}
