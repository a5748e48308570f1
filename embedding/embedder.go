package embedding

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmptyBatch is returned when Embed is called without texts.
	ErrEmptyBatch = errors.New("embedding: empty batch")
	// ErrBatchSize is returned when an embedder returns a different number of
	// vectors than texts it was given.
	ErrBatchSize = errors.New("embedding: batch size mismatch")
	// ErrDimension is returned when vectors do not share one dimension.
	ErrDimension = errors.New("embedding: dimension mismatch")
)

// Embedder maps texts to fixed-length vectors, one per input, preserving
// input order. Implementations must be position independent: embedding a
// text alone yields the same vector as embedding it within a batch.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Func adapts a function to the Embedder interface.
type Func func(ctx context.Context, texts []string) ([][]float32, error)

// Embed calls f.
func (f Func) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}

// Query embeds a single text as a one-item batch.
func Query(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vecs, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("%w: %d vectors for 1 query", ErrBatchSize, len(vecs))
	}
	return vecs[0], nil
}

// Checked wraps an Embedder and enforces one vector per input and a
// dimension that is fixed by the first successful call.
type Checked struct {
	embedder Embedder
	mu       sync.RWMutex
	dim      int
}

// NewChecked returns a Checked wrapper around e.
func NewChecked(e Embedder) *Checked {
	return &Checked{embedder: e}
}

// Dimension returns the fixed dimension, or 0 before the first call.
func (c *Checked) Dimension() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dim
}

// Embed delegates and validates the result.
func (c *Checked) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	vecs, err := c.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: %d vectors for %d texts", ErrBatchSize, len(vecs), len(texts))
	}
	dim := c.Dimension()
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: empty vector at %d", ErrDimension, i)
		}
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has %d, want %d", ErrDimension, i, len(v), dim)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dim == 0 {
		c.dim = dim
	}
	if c.dim != dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimension, dim, c.dim)
	}
	return vecs, nil
}
