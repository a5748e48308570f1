package hashing

import (
	"context"
	"strings"
	"unicode"

	"github.com/minio/highwayhash"
	"github.com/viant/kbvec/vector"
)

// Embedder is a local, deterministic embedder. Each text is tokenized into
// lower-cased words; every word and every character n-gram of the padded
// word is hashed with HighwayHash into a signed bucket. Vectors are
// L2-normalized so Euclidean distance tracks cosine similarity.
//
// Embedder holds no mutable state and is safe for concurrent use.
type Embedder struct {
	model     Model
	key       []byte
	stopwords map[string]struct{}
}

// New validates model and returns an Embedder.
func New(model Model) (*Embedder, error) {
	model.Init()
	if err := model.Validate(); err != nil {
		return nil, err
	}
	stop := make(map[string]struct{}, len(model.Stopwords))
	for _, w := range model.Stopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Embedder{model: model, key: []byte(model.Key), stopwords: stop}, nil
}

// Model returns the effective model.
func (e *Embedder) Model() Model { return e.model }

// Dimension returns the vector width.
func (e *Embedder) Dimension() int { return e.model.Dimension }

// Embed returns one vector per text.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = e.embed(text)
	}
	return out, nil
}

func (e *Embedder) embed(text string) []float32 {
	vec := make([]float32, e.model.Dimension)
	for _, word := range e.tokens(text) {
		e.add(vec, "w:"+word, e.model.WordWeight)
		if e.model.NGram <= 0 {
			continue
		}
		padded := []rune("<" + word + ">")
		for i := 0; i+e.model.NGram <= len(padded); i++ {
			e.add(vec, "g:"+string(padded[i:i+e.model.NGram]), e.model.NGramWeight)
		}
	}
	vector.Normalize(vec)
	return vec
}

func (e *Embedder) add(vec []float32, feature string, weight float32) {
	h := highwayhash.Sum64([]byte(feature), e.key)
	bucket := int(h % uint64(len(vec)))
	if h>>63 == 1 {
		weight = -weight
	}
	vec[bucket] += weight
}

func (e *Embedder) tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if _, ok := e.stopwords[f]; ok {
			continue
		}
		if *e.model.Stem {
			f = stem(f)
		}
		out = append(out, f)
	}
	return out
}

// stem drops a plural "s" so "rotors" and "rotor" share features.
func stem(word string) string {
	if len(word) > 3 && strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return word[:len(word)-1]
	}
	return word
}
