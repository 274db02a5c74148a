package storage

import (
	"encoding/json"
	"errors"

	"github.com/brk3/lifemanager/internal/logger"
)

// Store is the local key-value persistence the app state is saved to.
type Store interface {
	GetRaw(key string) ([]byte, bool, error)
	PutRaw(key string, val []byte) error
	Close() error
}

// DocumentStore keeps whole JSON documents grouped by collection. The sync
// server serves these.
type DocumentStore interface {
	SaveDocument(collection, id string, doc []byte) error
	LoadDocument(collection, id string) ([]byte, bool, error)
	CountDocuments(collection string) (int, error)
	Close() error
}

var ErrNilStore = errors.New("storage: nil store")

// Get decodes the JSON value stored at key. Missing keys, read errors and
// corrupt values all yield def; errors are logged, never returned.
func Get[T any](s Store, key string, def T) T {
	if s == nil {
		return def
	}
	raw, ok, err := s.GetRaw(key)
	if err != nil {
		logger.Warn("Failed to read from local storage", "key", key, "error", err)
		return def
	}
	if !ok || len(raw) == 0 {
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("Corrupt value in local storage", "key", key, "error", err)
		return def
	}
	return v
}

// Set stores v as JSON at key. Failures are logged and dropped.
func Set(s Store, key string, v any) {
	if err := Put(s, key, v); err != nil {
		logger.Warn("Failed to write to local storage", "key", key, "error", err)
	}
}

// Put is Set for callers that need the error.
func Put(s Store, key string, v any) error {
	if s == nil {
		return ErrNilStore
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.PutRaw(key, raw)
}
