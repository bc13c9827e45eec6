package store

import (
	"fmt"
	"sync"
)

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu      sync.Mutex
	builds  []*Build
	outputs map[int64][]Output
	nextID  int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{outputs: map[int64][]Output{}, nextID: 1}
}

func (m *MemStore) RecordBuild(b *Build, outputs []Output) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.StartedAt == "" {
		b.StartedAt = nowUTC()
	}
	if b.FinishedAt == "" {
		b.FinishedAt = nowUTC()
	}
	cp := *b
	cp.ID = m.nextID
	cp.FileCount = len(outputs)
	m.nextID++
	m.builds = append(m.builds, &cp)

	rows := make([]Output, len(outputs))
	copy(rows, outputs)
	for i := range rows {
		rows[i].ID = int64(i + 1)
		rows[i].BuildID = cp.ID
	}
	m.outputs[cp.ID] = rows
	return cp.ID, nil
}

func (m *MemStore) GetBuild(buildID int64) (*Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.builds {
		if b.ID == buildID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("store: build %d not found", buildID)
}

func (m *MemStore) ListBuilds() ([]*Build, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Build, 0, len(m.builds))
	for i := len(m.builds) - 1; i >= 0; i-- {
		cp := *m.builds[i]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *MemStore) ListOutputs(buildID int64) ([]Output, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.outputs[buildID]
	out := make([]Output, len(rows))
	copy(out, rows)
	return out, nil
}

func (m *MemStore) Close() error { return nil }
