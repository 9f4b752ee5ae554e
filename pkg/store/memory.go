package store

import (
	"context"
	"sort"
	"sync"

	"github.com/myusername/cbb-statistic-scraper/pkg/models"
)

// MemoryStore is a Sink that keeps documents in process. It backs dry runs.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]map[string]models.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]models.Record)}
}

func (m *MemoryStore) Upsert(_ context.Context, collection string, naturalKey, record models.Record) (UpsertResult, error) {
	key, err := CanonicalKey(naturalKey)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.docs[collection]
	if !ok {
		coll = make(map[string]models.Record)
		m.docs[collection] = coll
	}

	result := Inserted
	if _, exists := coll[key]; exists {
		result = Replaced
	}
	coll[key] = record.Clone()
	return result, nil
}

// Get returns a copy of the document stored under naturalKey
func (m *MemoryStore) Get(collection string, naturalKey models.Record) (models.Record, bool) {
	key, err := CanonicalKey(naturalKey)
	if err != nil {
		return nil, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.docs[collection][key]
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Count returns the number of documents in collection
func (m *MemoryStore) Count(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs[collection])
}

// Collections returns the names of all non-empty collections, sorted
func (m *MemoryStore) Collections() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.docs))
	for name, coll := range m.docs {
		if len(coll) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
