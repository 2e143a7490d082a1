package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != "bolt" {
		t.Errorf("driver = %q, want bolt", cfg.Database.Driver)
	}
	if cfg.Database.Path != "semdex.db" {
		t.Errorf("path = %q, want semdex.db", cfg.Database.Path)
	}
	if cfg.Storage.KeyPrefix != "semdex:" {
		t.Errorf("key prefix = %q, want semdex:", cfg.Storage.KeyPrefix)
	}
	if cfg.Embedding.Provider != "texthash" {
		t.Errorf("provider = %q, want texthash", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("dimensions = %d, want 384", cfg.Embedding.Dimensions)
	}
	if cfg.Search.DefaultK != 10 || cfg.Search.MaxK != 100 {
		t.Errorf("search limits = %d/%d, want 10/100", cfg.Search.DefaultK, cfg.Search.MaxK)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: redis
  addrs: ["localhost:6379"]
  db: 2
storage:
  key_prefix: "myapp:"
embedding:
  provider: texthash
  dimensions: 128
  cache:
    max_entries: 500
    persist: true
search:
  default_k: 5
  max_k: 50
logging:
  env: prod
  level: warn
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != "redis" || cfg.Database.DB != 2 {
		t.Errorf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Storage.KeyPrefix != "myapp:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Embedding.Dimensions != 128 {
		t.Errorf("dimensions = %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.Cache.MaxEntries != 500 || !cfg.Embedding.Cache.Persist {
		t.Errorf("unexpected cache config: %+v", cfg.Embedding.Cache)
	}
	if cfg.Search.DefaultK != 5 || cfg.Search.MaxK != 50 {
		t.Errorf("unexpected search config: %+v", cfg.Search)
	}
	if cfg.Logging.Env != "prod" || cfg.Logging.Level != "warn" {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SEMDEX_TEST_PASSWORD", "s3cret")
	path := writeConfig(t, `
database:
  driver: redis
  addrs: ["${SEMDEX_TEST_ADDR:-localhost:6379}"]
  password: "${SEMDEX_TEST_PASSWORD}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Password != "s3cret" {
		t.Errorf("password = %q, want s3cret", cfg.Database.Password)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v, want default applied", cfg.Database.Addrs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(_ *Config) {},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "database.driver",
		},
		{
			name:    "redis without addrs",
			mutate:  func(c *Config) { c.Database.Driver = "redis" },
			wantErr: "database.addrs is required",
		},
		{
			name: "bolt without path",
			mutate: func(c *Config) {
				c.Database.Driver = "bolt"
				c.Database.Path = ""
			},
			wantErr: "database.path is required",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Embedding.Provider = "cohere" },
			wantErr: "embedding.provider",
		},
		{
			name:    "openai without api key",
			mutate:  func(c *Config) { c.Embedding.Provider = "openai" },
			wantErr: "embedding.api_key is required",
		},
		{
			name: "default_k above max_k",
			mutate: func(c *Config) {
				c.Search.DefaultK = 200
				c.Search.MaxK = 100
			},
			wantErr: "must not exceed search.max_k",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.ApplyDefaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestModelTag(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if got := cfg.ModelTag(); got != "texthash//384" {
		t.Errorf("tag = %q, want texthash//384", got)
	}

	cfg.Embedding.Provider = "openai"
	cfg.Embedding.Model = "text-embedding-3-small"
	cfg.Embedding.Dimensions = 1536
	if got := cfg.ModelTag(); got != "openai/text-embedding-3-small/1536" {
		t.Errorf("tag = %q", got)
	}
}
