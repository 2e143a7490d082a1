package domain

import "errors"

var (
	// ErrContentNotFound signals a fetch of an unknown content id.
	ErrContentNotFound = errors.New("content not found")
	// ErrIncompleteRecord signals an attempt to store a record without an embedding.
	ErrIncompleteRecord = errors.New("incomplete record: missing embedding")
	// ErrEmbeddingFailed signals that indexing failed while computing the embedding.
	ErrEmbeddingFailed = errors.New("embedding failed")
	// ErrStorageFailed signals that indexing failed while writing to the store.
	ErrStorageFailed = errors.New("storage failed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
