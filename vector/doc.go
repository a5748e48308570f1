// Package vector holds the numeric primitives shared by the index
// implementations:
//   - Euclidean (L2) and cosine distance functions
//   - Embedding encoding (BLOB) used by the SQLite-backed index
package vector
