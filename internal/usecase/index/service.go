// Package index writes content records with automatic vectorization.
package index

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// Service handles content indexing. Indexing the same id again overwrites
// the previous version.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates an indexing service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, logger: logger}
}

// IndexContent embeds the record (title and body concatenated) unless a
// vector is already attached, then stores it. Failures are distinguishable
// via errors.Is: domain.ErrEmbeddingFailed when vectorization failed,
// domain.ErrStorageFailed when the write failed. Either way the store is
// left without a partial record for this id.
func (s *Service) IndexContent(ctx context.Context, rec *domain.ContentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	if !rec.HasEmbedding() {
		result, err := s.embed.Embed(ctx, rec.EmbedText())
		if err != nil {
			return fmt.Errorf("%w: content %s: %w", domain.ErrEmbeddingFailed, rec.ID, err)
		}
		rec.Embedding = result.Embedding
	}

	if err := s.repo.Put(ctx, rec); err != nil {
		return fmt.Errorf("%w: content %s: %w", domain.ErrStorageFailed, rec.ID, err)
	}

	s.logger.Debug("Indexed content",
		zap.String("id", rec.ID),
		zap.String("category", rec.Category),
		zap.Int("dimensions", len(rec.Embedding)),
	)
	return nil
}

// Get returns the stored record for id.
func (s *Service) Get(ctx context.Context, id string) (domain.ContentRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.ContentRecord{}, fmt.Errorf("get content: %w", err)
	}
	return rec, nil
}

// Count returns the number of indexed records.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}
