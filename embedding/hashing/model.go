package hashing

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/kbvec/internal/location"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDimension matches the width of common sentence-embedding models.
	DefaultDimension = 384
	// DefaultNGram is the character n-gram size.
	DefaultNGram = 3
	defaultKey   = "0123456789ABCDEF0123456789ABCDEF"
)

// Model describes a feature-hashing embedding model. It can be loaded from a
// YAML descriptor so deployments pin the exact vector space they index with.
type Model struct {
	Name        string   `yaml:"name"`
	Dimension   int      `yaml:"dimension"`
	NGram       int      `yaml:"ngram"`
	WordWeight  float32  `yaml:"wordWeight"`
	NGramWeight float32  `yaml:"ngramWeight"`
	Stem        *bool    `yaml:"stem"`
	Stopwords   []string `yaml:"stopwords"`
	Key         string   `yaml:"key"`
}

// DefaultModel returns the built-in model.
func DefaultModel() Model {
	stem := true
	return Model{
		Name:        "hashing-384",
		Dimension:   DefaultDimension,
		NGram:       DefaultNGram,
		WordWeight:  1,
		NGramWeight: 0.5,
		Stem:        &stem,
		Stopwords:   append([]string(nil), defaultStopwords...),
		Key:         defaultKey,
	}
}

// Init fills unset fields from DefaultModel.
func (m *Model) Init() {
	def := DefaultModel()
	if m.Name == "" {
		m.Name = def.Name
	}
	if m.Dimension == 0 {
		m.Dimension = def.Dimension
	}
	if m.NGram == 0 {
		m.NGram = def.NGram
	}
	if m.WordWeight == 0 {
		m.WordWeight = def.WordWeight
	}
	if m.NGramWeight == 0 {
		m.NGramWeight = def.NGramWeight
	}
	if m.Stem == nil {
		m.Stem = def.Stem
	}
	if m.Stopwords == nil {
		m.Stopwords = def.Stopwords
	}
	if m.Key == "" {
		m.Key = def.Key
	}
}

// Validate checks the model parameters.
func (m *Model) Validate() error {
	if m.Dimension <= 0 {
		return fmt.Errorf("hashing: invalid dimension %d", m.Dimension)
	}
	if m.NGram < 0 {
		return fmt.Errorf("hashing: invalid ngram %d", m.NGram)
	}
	if len(m.Key) != 32 {
		return fmt.Errorf("hashing: key must be 32 bytes, got %d", len(m.Key))
	}
	return nil
}

// Load reads a YAML model descriptor from any afs URL and builds an Embedder.
// A missing or malformed descriptor is an error: the retriever cannot start
// without its model.
func Load(ctx context.Context, fs afs.Service, URL string) (*Embedder, error) {
	if fs == nil {
		fs = afs.New()
	}
	URL = location.URL(URL)
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("hashing: load model %v: %w", URL, err)
	}
	var model Model
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("hashing: decode model %v: %w", URL, err)
	}
	return New(model)
}

var defaultStopwords = []string{
	"a", "about", "an", "and", "are", "as", "at", "be", "by", "can", "could",
	"did", "do", "does", "for", "from", "has", "have", "how", "i", "if", "in",
	"is", "it", "its", "many", "me", "much", "my", "of", "on", "or", "should",
	"so", "that", "the", "their", "there", "these", "this", "to", "was", "we",
	"what", "when", "where", "which", "who", "why", "will", "with", "would",
	"you", "your",
}
