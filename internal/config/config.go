// Package config loads the semdex YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the semdex configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Indexing  IndexingConfig  `yaml:"indexing"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// DatabaseConfig holds storage backend settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, bolt (default: bolt)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Path             string   `yaml:"path"` // bolt file path
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds key namespacing settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string      `yaml:"provider"` // texthash, openai (default: texthash)
	APIKey     string      `yaml:"api_key"`
	BaseURL    string      `yaml:"base_url"`
	Model      string      `yaml:"model"`
	Dimensions int         `yaml:"dimensions"`
	Cache      CacheConfig `yaml:"cache"`
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	MaxEntries int  `yaml:"max_entries"` // in-process cache bound, 0 = unbounded
	Persist    bool `yaml:"persist"`     // also cache vectors in the backing store
}

// SearchConfig holds result limit settings.
type SearchConfig struct {
	DefaultK int `yaml:"default_k"`
	MaxK     int `yaml:"max_k"`
}

// IndexingConfig holds bulk indexing settings.
type IndexingConfig struct {
	Workers int `yaml:"workers"` // 0 = NumCPU/2
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // local, dev, prod (default: local)
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults, so the CLI works without any config at all.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(filepath.Clean(path))
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		// Substitute env variables of the form ${VAR} / ${VAR:-default}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = "bolt"
	}
	if c.Database.Path == "" {
		c.Database.Path = "semdex.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "semdex:"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "texthash"
	}
	if c.Embedding.Model == "" && c.Embedding.Provider == "openai" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Embedding.Cache.MaxEntries < 0 {
		c.Embedding.Cache.MaxEntries = 0
	}
	if c.Search.DefaultK <= 0 {
		c.Search.DefaultK = 10
	}
	if c.Search.MaxK <= 0 {
		c.Search.MaxK = 100
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "bolt":
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the bolt driver")
		}
	case "redis":
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("database.driver must be \"bolt\" or \"redis\", got %q", c.Database.Driver)
	}

	switch c.Embedding.Provider {
	case "texthash":
		// no credentials needed
	case "openai":
		if c.Embedding.APIKey == "" {
			return fmt.Errorf("embedding.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("embedding.provider must be \"texthash\" or \"openai\", got %q", c.Embedding.Provider)
	}

	if c.Search.DefaultK > c.Search.MaxK {
		return fmt.Errorf("search.default_k (%d) must not exceed search.max_k (%d)",
			c.Search.DefaultK, c.Search.MaxK)
	}
	return nil
}

// ModelTag identifies the embedder configuration for cache keying.
// Changing the provider, model or dimension changes the tag, which
// invalidates every previously cached vector.
func (c *Config) ModelTag() string {
	return fmt.Sprintf("%s/%s/%d", c.Embedding.Provider, c.Embedding.Model, c.Embedding.Dimensions)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
