package bolt

import (
	"fmt"

	"github.com/brk3/lifemanager/internal/storage"
	"go.etcd.io/bbolt"
)

const (
	localBucket       = "local"
	collectionsBucket = "collections"
)

type Store struct {
	db *bbolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}

	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range []string{localBucket, collectionsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetRaw(key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(localBucket)).Get([]byte(key))
		if v != nil {
			// v is only valid for the life of the transaction.
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil, err
}

func (s *Store) PutRaw(key string, val []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(localBucket)).Put([]byte(key), val)
	})
}

func (s *Store) getCollectionBucket(tx *bbolt.Tx, collection string) (*bbolt.Bucket, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	root := tx.Bucket([]byte(collectionsBucket))
	if !tx.Writable() {
		return root.Bucket([]byte(collection)), nil
	}
	return root.CreateBucketIfNotExists([]byte(collection))
}

func (s *Store) SaveDocument(collection, id string, doc []byte) error {
	if id == "" {
		return fmt.Errorf("document id is required")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := s.getCollectionBucket(tx, collection)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(id), doc)
	})
}

func (s *Store) LoadDocument(collection, id string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := s.getCollectionBucket(tx, collection)
		if err != nil || bucket == nil {
			return err
		}
		if v := bucket.Get([]byte(id)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil, err
}

func (s *Store) CountDocuments(collection string) (int, error) {
	n := 0
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket, err := s.getCollectionBucket(tx, collection)
		if err != nil || bucket == nil {
			return err
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

var (
	_ storage.Store         = (*Store)(nil)
	_ storage.DocumentStore = (*Store)(nil)
)
