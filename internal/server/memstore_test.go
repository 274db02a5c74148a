package server

import (
	"errors"
	"sync"

	"github.com/brk3/lifemanager/internal/storage"
)

type memStore struct {
	mu      sync.RWMutex
	data    map[string]map[string][]byte
	failPut bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string]map[string][]byte{}}
}

func (m *memStore) SaveDocument(collection, id string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failPut {
		return errors.New("disk full")
	}
	if m.data[collection] == nil {
		m.data[collection] = map[string][]byte{}
	}
	m.data[collection][id] = append([]byte(nil), doc...)

	return nil
}

func (m *memStore) LoadDocument(collection, id string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.data[collection][id]
	return doc, ok, nil
}

func (m *memStore) CountDocuments(collection string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.data[collection]), nil
}

func (m *memStore) Close() error {
	return nil
}

var _ storage.DocumentStore = (*memStore)(nil)
