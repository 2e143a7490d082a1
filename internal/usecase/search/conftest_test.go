package search

import (
	"context"
	"sort"

	"github.com/kailas-cloud/semdex/internal/domain"
)

// mockRepo implements Repository over an in-memory map.
type mockRepo struct {
	records map[string]domain.ContentRecord
	getErr  map[string]error
	idsErr  error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		records: make(map[string]domain.ContentRecord),
		getErr:  make(map[string]error),
	}
}

func (m *mockRepo) put(rec domain.ContentRecord) {
	m.records[rec.ID] = rec
}

func (m *mockRepo) IDs(_ context.Context) ([]string, error) {
	if m.idsErr != nil {
		return nil, m.idsErr
	}
	ids := make([]string, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domain.ContentRecord, error) {
	if err := m.getErr[id]; err != nil {
		return domain.ContentRecord{}, err
	}
	rec, ok := m.records[id]
	if !ok {
		return domain.ContentRecord{}, domain.ErrContentNotFound
	}
	return rec, nil
}

// mockEmbedder records the texts it was asked to embed.
type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	return m.result, m.err
}
