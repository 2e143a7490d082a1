// Package content implements persistent storage of content records.
//
// Layout in the backing store: one hash per record at
// <prefix>content:<id>, plus a <prefix>content_ids set for enumeration.
package content

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// store is the consumer interface for content records.
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SCard(ctx context.Context, key string) (int64, error)
}

// Repo implements the ContentStore contract on a hash/set store.
type Repo struct {
	store store
}

// New creates a content repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put inserts or overwrites the record under its id. A record without an
// embedding is rejected: embeddings are computed upstream, never skipped
// here. The hash write lands before the id joins the enumeration set, so
// readers never observe a partially populated record.
func (r *Repo) Put(ctx context.Context, rec *domain.ContentRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("empty content id: %w", domain.ErrIncompleteRecord)
	}
	if !rec.HasEmbedding() {
		return fmt.Errorf("content %s: %w", rec.ID, domain.ErrIncompleteRecord)
	}

	key := contentKey(rec.ID)
	if err := r.store.HSet(ctx, key, buildHashFields(rec)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	if err := r.store.SAdd(ctx, idsKey(), rec.ID); err != nil {
		return fmt.Errorf("sadd %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record stored under id.
func (r *Repo) Get(ctx context.Context, id string) (domain.ContentRecord, error) {
	key := contentKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.ContentRecord{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domain.ContentRecord{}, domain.ErrContentNotFound
	}
	return parseHashFields(id, fields)
}

// IDs returns the identifiers of all stored records.
func (r *Repo) IDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.SMembers(ctx, idsKey())
	if err != nil {
		return nil, fmt.Errorf("smembers: %w", err)
	}
	return ids, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SCard(ctx, idsKey())
	if err != nil {
		return 0, fmt.Errorf("scard: %w", err)
	}
	return int(n), nil
}

func contentKey(id string) string {
	return domain.KeyPrefix + "content:" + id
}

func idsKey() string {
	return domain.KeyPrefix + "content_ids"
}
