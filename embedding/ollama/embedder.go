package ollama

import (
	"context"
	"fmt"
)

// Embedder adapts Client to embedding.Embedder.
type Embedder struct {
	C *Client
}

// New returns an Embedder for model.
func New(model string, opts ...ClientOption) *Embedder {
	return &Embedder{C: NewClient(model, opts...)}
}

// Embed embeds texts in one request.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e == nil || e.C == nil {
		return nil, fmt.Errorf("ollama embedder not configured")
	}
	vecs, _, err := e.C.Embed(ctx, texts)
	return vecs, err
}
