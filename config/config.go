// Package config defines the kbvec runtime configuration: YAML file values,
// overridden by environment variables, over built-in defaults.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/kbvec/index"
	"github.com/viant/kbvec/internal/location"
	"github.com/viant/kbvec/knowledge"
	"gopkg.in/yaml.v3"
)

const (
	ProviderHashing = "hashing"
	ProviderOllama  = "ollama"
	ProviderOpenAI  = "openai"

	DefaultTopK      = 2
	DefaultDimension = 384
	DefaultCacheSize = 1024
	DefaultDSN       = ":memory:"
	DefaultCoverBase = 1.3
)

// Config is the root configuration.
type Config struct {
	KnowledgeBase string   `yaml:"knowledgeBase"`
	TopK          int      `yaml:"topK"`
	Embedder      Embedder `yaml:"embedder"`
	Index         Index    `yaml:"index"`
}

// Embedder selects and configures the embedding provider.
type Embedder struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	ModelURL  string `yaml:"modelURL"`
	BaseURL   string `yaml:"baseURL"`
	APIKey    string `yaml:"apiKey,omitempty"`
	Dimension int    `yaml:"dimension"`
	CacheSize *int   `yaml:"cacheSize"`
}

// Index selects and configures the vector index.
type Index struct {
	Kind      string  `yaml:"kind"`
	DSN       string  `yaml:"dsn"`
	CoverBase float64 `yaml:"coverBase"`
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	ret := &Config{}
	ret.Init()
	return ret
}

// Init fills unset fields with defaults.
func (c *Config) Init() {
	if c.KnowledgeBase == "" {
		c.KnowledgeBase = knowledge.DefaultSource
	}
	if c.TopK == 0 {
		c.TopK = DefaultTopK
	}
	if c.Embedder.Provider == "" {
		c.Embedder.Provider = ProviderHashing
	}
	c.Embedder.Provider = strings.ToLower(strings.TrimSpace(c.Embedder.Provider))
	if c.Embedder.Dimension == 0 {
		c.Embedder.Dimension = DefaultDimension
	}
	if c.Embedder.CacheSize == nil {
		size := DefaultCacheSize
		c.Embedder.CacheSize = &size
	}
	if c.Index.Kind == "" {
		c.Index.Kind = string(index.KindFlat)
	}
	if c.Index.DSN == "" {
		c.Index.DSN = DefaultDSN
	}
	if c.Index.CoverBase == 0 {
		c.Index.CoverBase = DefaultCoverBase
	}
}

// Cache returns the embedding cache capacity; 0 disables caching.
func (e *Embedder) Cache() int {
	if e.CacheSize == nil {
		return DefaultCacheSize
	}
	return *e.CacheSize
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("config: topK must be positive, got %d", c.TopK)
	}
	switch c.Embedder.Provider {
	case ProviderHashing, ProviderOllama, ProviderOpenAI:
	default:
		return fmt.Errorf("config: unsupported embedder provider %q", c.Embedder.Provider)
	}
	if c.Embedder.Dimension <= 0 {
		return fmt.Errorf("config: embedder dimension must be positive, got %d", c.Embedder.Dimension)
	}
	if c.Embedder.Cache() < 0 {
		return fmt.Errorf("config: embedder cacheSize must not be negative, got %d", c.Embedder.Cache())
	}
	if _, err := index.ParseKind(c.Index.Kind); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Index.CoverBase <= 1 {
		return fmt.Errorf("config: index coverBase must be greater than 1, got %v", c.Index.CoverBase)
	}
	return nil
}

// Load reads the YAML configuration at URL, applies environment overrides
// and defaults, and validates the result. An empty URL skips the file.
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	cfg := &Config{}
	if URL != "" {
		if fs == nil {
			fs = afs.New()
		}
		expanded, err := expandUserPath(URL)
		if err != nil {
			return nil, err
		}
		URL = location.URL(expanded)
		data, err := fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("config: read %v: %w", URL, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %v: %w", URL, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.Init()
	expanded, err := expandUserPath(cfg.KnowledgeBase)
	if err != nil {
		return nil, err
	}
	cfg.KnowledgeBase = expanded
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"KBVEC_KNOWLEDGE_BASE":  &c.KnowledgeBase,
		"KBVEC_EMBEDDER":        &c.Embedder.Provider,
		"KBVEC_EMBEDDING_MODEL": &c.Embedder.Model,
		"KBVEC_MODEL_URL":       &c.Embedder.ModelURL,
		"KBVEC_EMBEDDER_URL":    &c.Embedder.BaseURL,
		"OPENAI_API_KEY":        &c.Embedder.APIKey,
		"KBVEC_INDEX":           &c.Index.Kind,
		"KBVEC_INDEX_DSN":       &c.Index.DSN,
	}
	for name, target := range strs {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	if value, ok := lookup("KBVEC_TOP_K"); ok && strings.TrimSpace(value) != "" {
		k, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("config: invalid KBVEC_TOP_K %q: %w", value, err)
		}
		c.TopK = k
	}
	return nil
}

func expandUserPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed[0] != '~' {
		return path, nil
	}
	if trimmed != "~" && !strings.HasPrefix(trimmed, "~/") {
		return "", fmt.Errorf("config: unsupported ~user path: %s", path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(trimmed, "~")), nil
}
