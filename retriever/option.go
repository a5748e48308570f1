package retriever

import (
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/viant/afs"
	"github.com/viant/kbvec/embedding"
	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/index/flat"
	"github.com/viant/kbvec/knowledge"
)

// IndexFactory creates an unbuilt index sized for docs vectors of dim.
type IndexFactory func(docs, dim int) (index.Index, error)

// Option configures a Retriever.
type Option func(*options)

type options struct {
	source       string
	embedder     embedding.Embedder
	indexFactory IndexFactory
	logger       logr.Logger
	fs           afs.Service
}

func defaultOptions() *options {
	return &options{
		source:       knowledge.DefaultSource,
		indexFactory: func(int, int) (index.Index, error) { return flat.New(), nil },
		logger:       stdr.New(log.New(os.Stderr, "", log.LstdFlags)).WithName("kbvec"),
	}
}

// WithSource sets the knowledge base location (path or afs URL).
func WithSource(URL string) Option {
	return func(o *options) {
		if URL != "" {
			o.source = URL
		}
	}
}

// WithEmbedder sets the embedder; it is required.
func WithEmbedder(e embedding.Embedder) Option {
	return func(o *options) { o.embedder = e }
}

// WithIndexFactory overrides the default flat index.
func WithIndexFactory(factory IndexFactory) Option {
	return func(o *options) {
		if factory != nil {
			o.indexFactory = factory
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithFileSystem sets the afs service used to read the knowledge base.
func WithFileSystem(fs afs.Service) Option {
	return func(o *options) { o.fs = fs }
}
