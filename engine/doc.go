// Package engine provides helpers for working with the modernc.org/sqlite
// driver in this module: opening connections and registering the vector
// SQL scalar functions used by the SQLite-backed index.
package engine
