// Package search ranks stored content against a query embedding.
package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// DefaultK is the result limit applied when a query does not set one.
const DefaultK = 10

// Service orchestrates similarity search: it resolves the query vector,
// loads the full candidate set and delegates ranking. It holds no state
// of its own and is safe for concurrent use.
type Service struct {
	repo   Repository
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service.
func New(repo Repository, embed Embedder, logger *zap.Logger) *Service {
	return &Service{repo: repo, embed: embed, logger: logger}
}

// Search returns at most query.K results ordered by similarity score.
// A supplied query vector is used verbatim; otherwise the query text is
// embedded. An empty store yields an empty result, never an error.
// Records that fail to load are skipped so one bad candidate cannot
// abort the whole search.
func (s *Service) Search(ctx context.Context, query domain.SearchQuery) ([]domain.SearchResult, error) {
	k := query.K
	if k == 0 {
		k = DefaultK
	}
	if k < 0 {
		return nil, nil
	}

	vector := query.Vector
	if vector == nil {
		result, err := s.embed.Embed(ctx, query.Text)
		if err != nil {
			return nil, fmt.Errorf("vectorize query: %w", err)
		}
		vector = result.Embedding
	}

	ids, err := s.repo.IDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list content ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	// Backend set enumeration order is unspecified; sort so candidate
	// order (and therefore tie-breaking) is reproducible.
	sort.Strings(ids)

	candidates := make([]domain.ContentRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := s.repo.Get(ctx, id)
		if err != nil {
			s.logger.Warn("Skipping unreadable content record",
				zap.String("id", id),
				zap.Error(err),
			)
			continue
		}
		candidates = append(candidates, rec)
	}

	return Rank(vector, candidates, query.CategoryFilter, k), nil
}
