// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"fmt"

	"github.com/golang/snappy"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/veillabs/reclaim/backend/kvstore"
	"github.com/veillabs/reclaim/common"
)

// Database is a single leveldb instance shared by all table spaces of one
// recovery engine. Individual stores are views on it, distinguished by their
// table-space prefix.
type Database struct {
	db *leveldb.DB
}

// OpenDatabase opens (or creates) the leveldb instance at the given path.
func OpenDatabase(path string) (*Database, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", path, err)
	}
	return &Database{db: db}, nil
}

// Close closes the underlying leveldb instance. Stores derived from this
// database must not be used afterwards.
func (d *Database) Close() error {
	return d.db.Close()
}

// Store is a leveldb-backed kvstore.Store occupying one table space of a
// shared Database. Values are stored snappy-compressed.
type Store[K comparable, V any] struct {
	db              *leveldb.DB
	table           TableSpace
	keySerializer   common.Serializer[K]
	valueSerializer common.Serializer[V]
}

// NewStore creates a store view on the database for the given table space.
func NewStore[K comparable, V any](
	database *Database,
	table TableSpace,
	keySerializer common.Serializer[K],
	valueSerializer common.Serializer[V],
) *Store[K, V] {
	return &Store[K, V]{
		db:              database.db,
		table:           table,
		keySerializer:   keySerializer,
		valueSerializer: valueSerializer,
	}
}

// Get returns the value stored under the key, if present.
func (s *Store[K, V]) Get(key K) (value V, exists bool, err error) {
	raw, err := s.db.Get(dbKey(s.table, key, s.keySerializer), nil)
	if err == leveldb.ErrNotFound {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	decoded, err := snappy.Decode(nil, raw)
	if err != nil {
		return value, false, fmt.Errorf("corrupted value in table %c: %w", s.table, err)
	}
	if len(decoded) != s.valueSerializer.Size() {
		return value, false, fmt.Errorf("corrupted value in table %c: wanted %d bytes, got %d", s.table, s.valueSerializer.Size(), len(decoded))
	}
	return s.valueSerializer.FromBytes(decoded), true, nil
}

// Set stores the value under the key, overwriting any previous value.
func (s *Store[K, V]) Set(key K, value V) error {
	return s.db.Put(
		dbKey(s.table, key, s.keySerializer),
		snappy.Encode(nil, s.valueSerializer.ToBytes(value)),
		nil,
	)
}

// Delete removes the key from the store.
func (s *Store[K, V]) Delete(key K) error {
	return s.db.Delete(dbKey(s.table, key, s.keySerializer), nil)
}

// Apply writes a group of mutations as one leveldb batch, which leveldb
// commits atomically.
func (s *Store[K, V]) Apply(ops []kvstore.Op[K, V]) error {
	batch := new(leveldb.Batch)
	for _, op := range ops {
		key := dbKey(s.table, op.Key, s.keySerializer)
		switch op.Kind {
		case kvstore.OpSet:
			batch.Put(key, snappy.Encode(nil, s.valueSerializer.ToBytes(op.Value)))
		case kvstore.OpDelete:
			batch.Delete(key)
		}
	}
	return s.db.Write(batch, nil)
}

// Flush is a no-op; leveldb persists writes as they are issued.
func (s *Store[K, V]) Flush() error {
	return nil
}

// Close is a no-op for the view; the shared Database owns the handle.
func (s *Store[K, V]) Close() error {
	return nil
}
