// Package embedding composes embedder decorators around a provider.
package embedding

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
	"github.com/kailas-cloud/semdex/internal/metrics"
)

// FallbackEmbedder degrades to a deterministic embedder when the primary
// provider fails. Embed therefore never returns an error, which keeps
// search available while the provider is down. The caveat: fallback
// vectors are only comparable with other fallback vectors.
type FallbackEmbedder struct {
	primary  domain.Embedder
	fallback domain.Embedder
	provider string
	logger   *zap.Logger
}

// NewFallbackEmbedder wraps primary with a deterministic fallback.
func NewFallbackEmbedder(primary, fallback domain.Embedder, provider string, logger *zap.Logger) *FallbackEmbedder {
	return &FallbackEmbedder{
		primary:  primary,
		fallback: fallback,
		provider: provider,
		logger:   logger,
	}
}

// Embed delegates to the primary provider and falls back on failure.
func (f *FallbackEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	result, err := f.primary.Embed(ctx, text)
	if err == nil {
		return result, nil
	}

	f.logger.Warn("Primary embedder failed, using deterministic fallback",
		zap.String("provider", f.provider),
		zap.Error(err),
	)
	metrics.EmbeddingFallbacksTotal.WithLabelValues(f.provider).Inc()

	return f.fallback.Embed(ctx, text)
}

// BatchEmbed delegates to the primary provider and falls back on failure.
func (f *FallbackEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	var result domain.BatchEmbeddingResult
	var err error

	if be, ok := f.primary.(domain.BatchEmbedder); ok {
		result, err = be.BatchEmbed(ctx, texts)
	} else {
		result, err = domain.BatchFallback(ctx, f.primary, texts)
	}
	if err == nil {
		return result, nil
	}

	f.logger.Warn("Primary batch embedder failed, using deterministic fallback",
		zap.String("provider", f.provider),
		zap.Int("batch_size", len(texts)),
		zap.Error(err),
	)
	metrics.EmbeddingFallbacksTotal.WithLabelValues(f.provider).Inc()

	if be, ok := f.fallback.(domain.BatchEmbedder); ok {
		return be.BatchEmbed(ctx, texts)
	}
	return domain.BatchFallback(ctx, f.fallback, texts)
}
