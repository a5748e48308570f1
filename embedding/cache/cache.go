// Package cache memoizes embeddings in a bounded LRU keyed by a HighwayHash
// of the text, so repeated queries skip the underlying model.
package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/minio/highwayhash"
	"github.com/viant/kbvec/embedding"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

type entry struct {
	text   string
	vector []float32
}

// Embedder wraps another embedder with an LRU cache. Cached vectors are
// shared between callers and must be treated as read-only.
type Embedder struct {
	embedder embedding.Embedder
	cache    *lru.Cache[uint64, entry]
}

// New returns a caching embedder holding up to size vectors.
func New(e embedding.Embedder, size int) (*Embedder, error) {
	if size <= 0 {
		return nil, fmt.Errorf("cache: invalid size %d", size)
	}
	c, err := lru.New[uint64, entry](size)
	if err != nil {
		return nil, err
	}
	return &Embedder{embedder: e, cache: c}, nil
}

// Len returns the number of cached vectors.
func (e *Embedder) Len() int { return e.cache.Len() }

// Embed serves cached vectors and embeds the misses in one batch.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var missTexts []string
	var missSlots []int
	for i, text := range texts {
		if v, ok := e.lookup(text); ok {
			out[i] = v
			continue
		}
		missTexts = append(missTexts, text)
		missSlots = append(missSlots, i)
	}
	if len(missTexts) == 0 {
		return out, nil
	}
	vecs, err := e.embedder.Embed(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(missTexts) {
		return nil, fmt.Errorf("%w: %d vectors for %d texts", embedding.ErrBatchSize, len(vecs), len(missTexts))
	}
	for j, slot := range missSlots {
		out[slot] = vecs[j]
		e.cache.Add(hash(missTexts[j]), entry{text: missTexts[j], vector: vecs[j]})
	}
	return out, nil
}

func (e *Embedder) lookup(text string) ([]float32, bool) {
	cached, ok := e.cache.Get(hash(text))
	if !ok || cached.text != text {
		return nil, false
	}
	return cached.vector, true
}

func hash(text string) uint64 {
	return highwayhash.Sum64([]byte(text), key)
}
