// Package service wires configuration into an embedder, an index and a
// lazily built, process-wide retriever.
package service

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/viant/afs"
	"github.com/viant/kbvec/config"
	"github.com/viant/kbvec/embedding"
	"github.com/viant/kbvec/retriever"
)

// Option configures a Service.
type Option func(*Service)

// WithFileSystem sets the afs service used for the knowledge base and model
// descriptors.
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) { s.fs = fs }
}

// WithEmbedder bypasses the configured provider.
func WithEmbedder(e embedding.Embedder) Option {
	return func(s *Service) { s.embedder = e }
}

// Service answers knowledge lookups. The retriever is built on first use.
type Service struct {
	config   *config.Config
	logger   logr.Logger
	fs       afs.Service
	embedder embedding.Embedder
	shared   *retriever.Shared
}

// New creates a Service; nil cfg uses config.Default().
func New(cfg *config.Config, logger logr.Logger, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.Default()
	}
	ret := &Service{config: cfg, logger: logger}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	ret.shared = retriever.NewShared(ret.build)
	return ret
}

// Config returns the service configuration.
func (s *Service) Config() *config.Config { return s.config }

// TopK returns the configured default number of passages.
func (s *Service) TopK() int {
	if s.config.TopK > 0 {
		return s.config.TopK
	}
	return retriever.DefaultK
}

func (s *Service) build(ctx context.Context) (*retriever.Retriever, error) {
	e := s.embedder
	if e == nil {
		var err error
		if e, err = NewEmbedder(ctx, &s.config.Embedder, s.fs); err != nil {
			return nil, err
		}
	}
	factory, err := IndexFactory(&s.config.Index, s.logger)
	if err != nil {
		return nil, err
	}
	return retriever.New(ctx,
		retriever.WithSource(s.config.KnowledgeBase),
		retriever.WithEmbedder(e),
		retriever.WithIndexFactory(factory),
		retriever.WithFileSystem(s.fs),
		retriever.WithLogger(s.logger),
	)
}

// Retriever returns the shared retriever, building it if needed.
func (s *Service) Retriever(ctx context.Context) (*retriever.Retriever, error) {
	return s.shared.Get(ctx)
}

// Retrieve returns the k nearest documents to query.
func (s *Service) Retrieve(ctx context.Context, query string, k int) (retriever.Result, error) {
	r, err := s.shared.Get(ctx)
	if err != nil {
		return retriever.Result{Status: retriever.StatusFailed, Err: err}, err
	}
	return r.Retrieve(ctx, query, k), nil
}

// Lookup returns the retrieval text for query. An error is returned only
// when the retriever could not be built.
func (s *Service) Lookup(ctx context.Context, query string, k int) (string, error) {
	result, err := s.Retrieve(ctx, query, k)
	if err != nil {
		return "", err
	}
	return result.String(), nil
}

// Close releases the retriever.
func (s *Service) Close() error {
	return s.shared.Close()
}
