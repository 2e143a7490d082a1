package index

import (
	"context"
	"sync"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// mockRepo implements Repository over an in-memory map.
type mockRepo struct {
	mu      sync.Mutex
	records map[string]domain.ContentRecord
	putErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[string]domain.ContentRecord)}
}

func (m *mockRepo) Put(_ context.Context, rec *domain.ContentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	if !rec.HasEmbedding() {
		return domain.ErrIncompleteRecord
	}
	m.records[rec.ID] = *rec
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domain.ContentRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return domain.ContentRecord{}, domain.ErrContentNotFound
	}
	return rec, nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records), nil
}

// mockEmbedder returns a fixed vector or error.
type mockEmbedder struct {
	mu     sync.Mutex
	result domain.EmbeddingResult
	err    error
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.mu.Lock()
	m.texts = append(m.texts, text)
	m.mu.Unlock()
	return m.result, m.err
}
