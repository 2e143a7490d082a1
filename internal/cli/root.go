// Package cli wires the semdex commands. This layer is the caller of the
// core services; it owns construction of the store, embedder chain and
// usecases (composition root).
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/config"
	"github.com/kailas-cloud/semdex/internal/db"
	dbBolt "github.com/kailas-cloud/semdex/internal/db/bolt"
	dbRedis "github.com/kailas-cloud/semdex/internal/db/redis"
	"github.com/kailas-cloud/semdex/internal/domain"
	logpkg "github.com/kailas-cloud/semdex/internal/logger"
	"github.com/kailas-cloud/semdex/internal/metrics"
	"github.com/kailas-cloud/semdex/internal/repository/content"
	"github.com/kailas-cloud/semdex/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/semdex/internal/transport/openai"
	"github.com/kailas-cloud/semdex/internal/transport/texthash"
	embeddinguc "github.com/kailas-cloud/semdex/internal/usecase/embedding"
	indexuc "github.com/kailas-cloud/semdex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/semdex/internal/usecase/search"
	"github.com/kailas-cloud/semdex/internal/version"
)

var (
	cfgFile string

	cfg      config.Config
	logger   *zap.Logger
	store    db.Store
	embedder domain.Embedder
	indexer  *indexuc.Service
	searcher *searchuc.Service
)

var rootCmd = &cobra.Command{
	Use:   "semdex",
	Short: "Content indexing and similarity search",
	Long: `semdex indexes text content as embeddings and retrieves the most
similar records for a query, with optional category filtering.

Example usage:
  semdex seed                          # Load demo content
  semdex index --title "..." --body "..."
  semdex search "vector databases" -k 5
  semdex count`,
	Version:           version.Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { teardown() },
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		teardown()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "semdex.yaml", "config file")
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = logpkg.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	domain.KeyPrefix = cfg.Storage.KeyPrefix
	metrics.RegisterEmbeddingMetrics()

	store, err = newStore()
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(cmd.Context(), readiness); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	embedder = newEmbedder()

	repo := content.New(store)
	indexer = indexuc.New(repo, embedder, logger)
	searcher = searchuc.New(repo, embedder, logger)
	return nil
}

func teardown() {
	if store != nil {
		store.Close()
		store = nil
	}
	if logger != nil {
		_ = logger.Sync()
	}
}

func newStore() (db.Store, error) {
	switch cfg.Database.Driver {
	case "redis":
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
	case "bolt":
		return dbBolt.NewStore(cfg.Database.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// newEmbedder builds the embedder chain: provider, deterministic fallback,
// optional persistent cache, in-process cache. The outermost layer is what
// the services see.
func newEmbedder() domain.Embedder {
	deterministic := texthash.NewEmbedder(cfg.Embedding.Dimensions)

	var emb domain.Embedder = deterministic
	if cfg.Embedding.Provider == "openai" {
		provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   "openai",
			Logger:     logger,
		})
		emb = embeddinguc.NewFallbackEmbedder(provider, deterministic, "openai", logger)
	}

	if cfg.Embedding.Cache.Persist {
		emb = embcache.New(emb, store, cfg.ModelTag(), metrics.EmbeddingCacheTotal, logger)
	}

	return embcache.NewMemoryCache(emb, cfg.Embedding.Cache.MaxEntries, metrics.EmbeddingCacheTotal)
}
