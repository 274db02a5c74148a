// Package memory is a map-backed storage implementation for tests and for
// running without a database file.
package memory

import (
	"sync"

	"github.com/brk3/lifemanager/internal/storage"
)

type Store struct {
	mu   sync.RWMutex
	kv   map[string][]byte
	docs map[string]map[string][]byte
	// FailWrites makes every write return this error when set.
	FailWrites error
}

func New() *Store {
	return &Store{kv: map[string][]byte{}, docs: map[string]map[string][]byte{}}
}

func (m *Store) GetRaw(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.kv[key]
	return append([]byte(nil), v...), ok, nil
}

func (m *Store) PutRaw(key string, val []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.kv[key] = append([]byte(nil), val...)
	return nil
}

func (m *Store) SaveDocument(collection, id string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	if m.docs[collection] == nil {
		m.docs[collection] = map[string][]byte{}
	}
	m.docs[collection][id] = append([]byte(nil), doc...)
	return nil
}

func (m *Store) LoadDocument(collection, id string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.docs[collection][id]
	return append([]byte(nil), v...), ok, nil
}

func (m *Store) CountDocuments(collection string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.docs[collection]), nil
}

func (m *Store) Close() error {
	return nil
}

var (
	_ storage.Store         = (*Store)(nil)
	_ storage.DocumentStore = (*Store)(nil)
)
