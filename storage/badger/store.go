// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package badger provides a BadgerDB-backed implementation of the vector
// storage interfaces. Collections are key ranges within a single database;
// queries are exact brute-force cosine scans, which is adequate for the
// per-chat collection sizes this store is built for.
package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/chatindex/storage"
)

// Store implements storage.VectorStore on top of a BadgerDB backend.
type Store struct {
	backend *Backend
}

var _ storage.VectorStore = (*Store)(nil)

// NewStore creates a vector store over an open backend.
func NewStore(backend *Backend) *Store {
	return &Store{backend: backend}
}

// Open opens (or creates) a vector store at the given directory path.
func Open(path string) (*Store, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}

// GetOrCreateCollection returns the named collection, creating it if needed.
func (s *Store) GetOrCreateCollection(ctx context.Context, name string, metadata map[string]any) (storage.Collection, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	key := makeCollectionKey(name)
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		value, err := marshalRecord(&collectionRecord{
			Name:      name,
			Metadata:  metadata,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return &Collection{backend: s.backend, name: name}, nil
}

// GetCollection returns an existing collection.
// Returns storage.ErrCollectionNotFound if it does not exist.
func (s *Store) GetCollection(ctx context.Context, name string) (storage.Collection, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeCollectionKey(name))
		if err == badger.ErrKeyNotFound {
			return storage.ErrCollectionNotFound
		}
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	return &Collection{backend: s.backend, name: name}, nil
}

// ListCollections returns the names of all collections in the store.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	if s.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var names []string
	prefix := collectionMetaPrefix + ":"
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := string(iter.Item().Key())
			names = append(names, strings.TrimPrefix(key, prefix))
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return names, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.backend.Close()
}
