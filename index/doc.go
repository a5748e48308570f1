// Package index defines a minimal abstraction for exact nearest-neighbour
// vector indexes that are built once from position-tagged embeddings and then
// queried for the k closest vectors under Euclidean (L2) distance.
//
// Implementations in this module include a brute-force scan (flat), a cover
// tree (cover) and an in-memory SQLite table ordered by vec_l2 (sqlite).
package index
