package index

import (
	"context"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// Repository defines the storage contract for indexing operations.
type Repository interface {
	Put(ctx context.Context, rec *domain.ContentRecord) error
	Get(ctx context.Context, id string) (domain.ContentRecord, error)
	Count(ctx context.Context) (int, error)
}

// Embedder vectorizes content text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
