// Package flat provides an exact vector index that answers kNN queries by
// scanning all vectors and ranking them by Euclidean distance.
package flat
