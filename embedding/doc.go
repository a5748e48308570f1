// Package embedding defines the Embedder contract used to turn documents and
// queries into dense vectors, plus helpers that enforce batch size and a
// stable dimension. Providers live in subpackages.
package embedding
