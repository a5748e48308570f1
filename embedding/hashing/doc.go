// Package hashing provides an offline embedding model based on feature
// hashing. It needs no network access and produces identical vectors for
// identical input, which makes it the default model for small knowledge bases
// and for tests.
package hashing
