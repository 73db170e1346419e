package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	scenarios map[string]ScenarioRecord
	entries   map[string]EntryRecord
	settings  Settings
	now       func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		scenarios: make(map[string]ScenarioRecord),
		entries:   make(map[string]EntryRecord),
		now:       time.Now,
	}
}

func (m *Memory) SaveScenario(_ context.Context, rec ScenarioRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.scenarios[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	rec.UpdatedAt = m.now()
	m.scenarios[rec.ID] = rec
	return nil
}

func (m *Memory) GetScenario(_ context.Context, id string) (*ScenarioRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.scenarios[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *Memory) ListScenarios(_ context.Context) ([]ScenarioRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := make([]ScenarioRecord, 0, len(m.scenarios))
	for _, rec := range m.scenarios {
		recs = append(recs, rec)
	}
	sortByCreation(recs, func(r ScenarioRecord) (time.Time, string) { return r.CreatedAt, r.ID })
	return recs, nil
}

func (m *Memory) DeleteScenario(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.scenarios, id)
	return nil
}

func (m *Memory) SaveEntry(_ context.Context, rec EntryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.entries[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	rec.UpdatedAt = m.now()
	m.entries[rec.ID] = rec
	return nil
}

func (m *Memory) GetEntry(_ context.Context, id string) (*EntryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if rec, ok := m.entries[id]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *Memory) ListEntries(_ context.Context) ([]EntryRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	recs := make([]EntryRecord, 0, len(m.entries))
	for _, rec := range m.entries {
		recs = append(recs, rec)
	}
	sortByCreation(recs, func(r EntryRecord) (time.Time, string) { return r.CreatedAt, r.ID })
	return recs, nil
}

func (m *Memory) DeleteEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *Memory) GetSettings(_ context.Context) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

func (m *Memory) SaveSettings(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	return nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios = make(map[string]ScenarioRecord)
	m.entries = make(map[string]EntryRecord)
	m.settings = Settings{}
	return nil
}

// sortByCreation orders records by creation time, then ID for a stable order
// when timestamps collide.
func sortByCreation[T any](recs []T, key func(T) (time.Time, string)) {
	sort.Slice(recs, func(i, j int) bool {
		ti, idi := key(recs[i])
		tj, idj := key(recs[j])
		if ti.Equal(tj) {
			return idi < idj
		}
		return ti.Before(tj)
	})
}
