// Package openai embeds texts with the OpenAI embeddings API.
package openai

import (
	"context"
	"fmt"
	"os"
	"sort"

	goopenai "github.com/sashabaranov/go-openai"
)

const defaultEmbeddingModel = "text-embedding-3-small"

// Option configures an Embedder.
type Option func(*goopenai.ClientConfig)

// WithBaseURL points the client at a compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *goopenai.ClientConfig) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// Embedder bridges the go-openai client to embedding.Embedder.
type Embedder struct {
	client *goopenai.Client
	model  string
}

// New creates an Embedder. An empty apiKey falls back to OPENAI_API_KEY and
// an empty model to text-embedding-3-small.
func New(apiKey, model string, opts ...Option) *Embedder {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if model == "" {
		model = defaultEmbeddingModel
	}
	cfg := goopenai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Embedder{client: goopenai.NewClientWithConfig(cfg), model: model}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string { return e.model }

// Embed sends all texts in one request and restores input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("openai: no input texts provided")
	}
	resp, err := e.client.CreateEmbeddings(ctx, goopenai.EmbeddingRequestStrings{
		Input: texts,
		Model: goopenai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: create embeddings: %w", err)
	}
	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })
	out := make([][]float32, len(data))
	for i := range data {
		out[i] = data[i].Embedding
	}
	return out, nil
}
