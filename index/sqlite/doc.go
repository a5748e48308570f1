// Package sqlite provides an exact L2 index that keeps vectors as BLOBs in a
// SQLite table and ranks them with the vec_l2 scalar function registered by
// the engine package. By default the table lives in a private in-memory
// database and is discarded on Close.
package sqlite
