package service

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/kbvec/config"
	"github.com/viant/kbvec/embedding"
	"github.com/viant/kbvec/embedding/cache"
	"github.com/viant/kbvec/embedding/hashing"
	"github.com/viant/kbvec/embedding/ollama"
	"github.com/viant/kbvec/embedding/openai"
)

// NewEmbedder creates the configured embedder, wrapped in an LRU cache when
// cfg.CacheSize is positive.
func NewEmbedder(ctx context.Context, cfg *config.Embedder, fs afs.Service) (embedding.Embedder, error) {
	var ret embedding.Embedder
	switch cfg.Provider {
	case config.ProviderHashing, "":
		e, err := newHashing(ctx, cfg, fs)
		if err != nil {
			return nil, err
		}
		ret = e
	case config.ProviderOllama:
		ret = ollama.New(cfg.Model, ollama.WithBaseURL(cfg.BaseURL))
	case config.ProviderOpenAI:
		ret = openai.New(cfg.APIKey, cfg.Model, openai.WithBaseURL(cfg.BaseURL))
	default:
		return nil, fmt.Errorf("service: unsupported embedder provider %q", cfg.Provider)
	}
	if size := cfg.Cache(); size > 0 {
		cached, err := cache.New(ret, size)
		if err != nil {
			return nil, fmt.Errorf("service: embedding cache: %w", err)
		}
		ret = cached
	}
	return ret, nil
}

func newHashing(ctx context.Context, cfg *config.Embedder, fs afs.Service) (*hashing.Embedder, error) {
	if cfg.ModelURL != "" {
		return hashing.Load(ctx, fs, cfg.ModelURL)
	}
	model := hashing.DefaultModel()
	if cfg.Model != "" {
		model.Name = cfg.Model
	}
	if cfg.Dimension > 0 {
		model.Dimension = cfg.Dimension
	}
	return hashing.New(model)
}
