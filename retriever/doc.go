// Package retriever embeds a line-oriented knowledge base once, indexes it
// and answers top-k nearest-neighbour queries used as agent context.
//
// A Retriever is built with New and is read-only afterwards. Shared wraps a
// factory so concurrent callers trigger a single construction.
package retriever
