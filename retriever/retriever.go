package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/viant/kbvec/embedding"
	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/knowledge"
)

// ErrNoEmbedder is returned by New without WithEmbedder.
var ErrNoEmbedder = errors.New("retriever: embedder is required")

// State is the build state of a Retriever.
type State int

const (
	// StateEmpty means the knowledge base was missing or had no documents.
	StateEmpty State = iota
	// StateBuilt means every document is embedded and indexed.
	StateBuilt
)

func (s State) String() string {
	if s == StateBuilt {
		return "built"
	}
	return "empty"
}

// entry pairs a document with its embedding; entries[i].Position == i.
type entry struct {
	knowledge.Document
	vector []float32
}

// Retriever answers nearest-neighbour queries over a knowledge base. It is
// immutable once New returns and safe for concurrent use.
type Retriever struct {
	source   string
	state    State
	entries  []entry
	index    index.Index
	embedder *embedding.Checked
	logger   logr.Logger
}

// New loads the knowledge base, embeds every document in one batch and
// builds the index. A missing or empty knowledge base yields a Retriever in
// StateEmpty rather than an error.
func New(ctx context.Context, opts ...Option) (*Retriever, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.embedder == nil {
		return nil, ErrNoEmbedder
	}
	ret := &Retriever{
		source:   o.source,
		embedder: embedding.NewChecked(o.embedder),
		logger:   o.logger,
	}
	collection, err := knowledge.Load(ctx, o.fs, o.source)
	if err != nil {
		return nil, err
	}
	ret.source = collection.Source
	if collection.Missing {
		ret.logger.Info("knowledge base not found", "warning", "retrieval disabled", "source", collection.Source)
		return ret, nil
	}
	if collection.Empty() {
		ret.logger.Info("knowledge base has no documents, retrieval disabled", "source", collection.Source)
		return ret, nil
	}
	if err := ret.build(ctx, collection, o.indexFactory); err != nil {
		return nil, err
	}
	ret.logger.V(1).Info("knowledge base indexed", "source", ret.source, "documents", len(ret.entries), "dimension", ret.index.Dimension())
	return ret, nil
}

func (r *Retriever) build(ctx context.Context, collection *knowledge.Collection, factory IndexFactory) error {
	vectors, err := r.embedder.Embed(ctx, collection.Texts())
	if err != nil {
		return fmt.Errorf("retriever: embed knowledge base: %w", err)
	}
	r.entries = make([]entry, len(collection.Documents))
	items := make([]index.Item, len(collection.Documents))
	for i, doc := range collection.Documents {
		r.entries[i] = entry{Document: doc, vector: vectors[i]}
		items[i] = index.Item{Position: doc.Position, Vector: vectors[i]}
	}
	idx, err := factory(len(items), r.embedder.Dimension())
	if err != nil {
		return fmt.Errorf("retriever: create index: %w", err)
	}
	if err := idx.Build(items); err != nil {
		return fmt.Errorf("retriever: build index: %w", err)
	}
	r.index = idx
	r.state = StateBuilt
	return nil
}

// State returns the build state.
func (r *Retriever) State() State { return r.state }

// Source returns the resolved knowledge base location.
func (r *Retriever) Source() string { return r.source }

// Len returns the number of indexed documents.
func (r *Retriever) Len() int { return len(r.entries) }

// Retrieve returns up to k documents nearest to query, nearest first. k
// larger than the collection is clamped; k <= 0 yields no matches. Errors
// are absorbed into a StatusFailed result.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) Result {
	if r.state != StateBuilt {
		return Result{Status: StatusEmptyKnowledgeBase}
	}
	if k <= 0 {
		return Result{Status: StatusFound}
	}
	if k > len(r.entries) {
		k = len(r.entries)
	}
	vector, err := embedding.Query(ctx, r.embedder, query)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.logger.Error(err, "failed to embed query")
		return Result{Status: StatusFailed, Err: err}
	}
	neighbors, err := r.index.Search(vector, k)
	if err != nil {
		r.logger.Error(err, "failed to search index")
		return Result{Status: StatusFailed, Err: err}
	}
	ret := Result{Status: StatusFound, Matches: make([]Match, 0, len(neighbors))}
	for _, n := range neighbors {
		if !n.Found() || n.Position < 0 || n.Position >= len(r.entries) {
			continue
		}
		e := r.entries[n.Position]
		ret.Matches = append(ret.Matches, Match{Position: e.Position, Text: e.Text, Distance: n.Distance})
	}
	return ret
}

// Lookup renders Retrieve as agent context text.
func (r *Retriever) Lookup(ctx context.Context, query string, k int) string {
	return r.Retrieve(ctx, query, k).String()
}

// Close releases index resources such as a SQLite connection.
func (r *Retriever) Close() error {
	if closer, ok := r.index.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
