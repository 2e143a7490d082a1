package search

import (
	"context"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	IDs(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (domain.ContentRecord, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
