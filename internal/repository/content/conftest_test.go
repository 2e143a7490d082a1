package content

import (
	"context"
)

// mockStore implements the consumer interface with in-memory maps.
type mockStore struct {
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}

	hsetErr error
	saddErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes: make(map[string]map[string]string),
		sets:   make(map[string]map[string]struct{}),
	}
}

func (m *mockStore) HSet(_ context.Context, key string, fields map[string]string) error {
	if m.hsetErr != nil {
		return m.hsetErr
	}
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	m.hashes[key] = cp
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	fields, ok := m.hashes[key]
	if !ok {
		return map[string]string{}, nil
	}
	return fields, nil
}

func (m *mockStore) SAdd(_ context.Context, key string, members ...string) error {
	if m.saddErr != nil {
		return m.saddErr
	}
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]struct{})
		m.sets[key] = set
	}
	for _, member := range members {
		set[member] = struct{}{}
	}
	return nil
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	var members []string
	for member := range m.sets[key] {
		members = append(members, member)
	}
	return members, nil
}

func (m *mockStore) SCard(_ context.Context, key string) (int64, error) {
	return int64(len(m.sets[key])), nil
}
