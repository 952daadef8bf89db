// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/veillabs/reclaim/backend/kvstore"
	"github.com/veillabs/reclaim/common"
)

// Database is a single sqlite file shared by all tables of one recovery
// engine.
type Database struct {
	db *sql.DB
}

// OpenDatabase opens (or creates) the sqlite database at the given path.
func OpenDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite at %s: %w", path, err)
	}
	return &Database{db: db}, nil
}

// Close closes the underlying database. Stores derived from this database
// must not be used afterwards.
func (d *Database) Close() error {
	return d.db.Close()
}

// Store is a sqlite-backed kvstore.Store holding one table of the shared
// database. Keys and values are stored as raw blobs in their serialized
// form.
type Store[K comparable, V any] struct {
	db              *sql.DB
	get             *sql.Stmt
	set             *sql.Stmt
	del             *sql.Stmt
	keySerializer   common.Serializer[K]
	valueSerializer common.Serializer[V]
}

// NewStore creates (if needed) the named table and a store view on it.
func NewStore[K comparable, V any](
	database *Database,
	table string,
	keySerializer common.Serializer[K],
	valueSerializer common.Serializer[V],
) (*Store[K, V], error) {
	db := database.db
	if _, err := db.Exec(fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (k BLOB PRIMARY KEY, v BLOB NOT NULL)", table)); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", table, err)
	}
	get, err := db.Prepare(fmt.Sprintf("SELECT v FROM %s WHERE k = ?", table))
	if err != nil {
		return nil, err
	}
	set, err := db.Prepare(fmt.Sprintf("INSERT OR REPLACE INTO %s (k, v) VALUES (?, ?)", table))
	if err != nil {
		return nil, err
	}
	del, err := db.Prepare(fmt.Sprintf("DELETE FROM %s WHERE k = ?", table))
	if err != nil {
		return nil, err
	}
	return &Store[K, V]{
		db:              db,
		get:             get,
		set:             set,
		del:             del,
		keySerializer:   keySerializer,
		valueSerializer: valueSerializer,
	}, nil
}

// Get returns the value stored under the key, if present.
func (s *Store[K, V]) Get(key K) (value V, exists bool, err error) {
	var raw []byte
	err = s.get.QueryRow(s.keySerializer.ToBytes(key)).Scan(&raw)
	if err == sql.ErrNoRows {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	if len(raw) != s.valueSerializer.Size() {
		return value, false, fmt.Errorf("corrupted value: wanted %d bytes, got %d", s.valueSerializer.Size(), len(raw))
	}
	return s.valueSerializer.FromBytes(raw), true, nil
}

// Set stores the value under the key, overwriting any previous value.
func (s *Store[K, V]) Set(key K, value V) error {
	_, err := s.set.Exec(s.keySerializer.ToBytes(key), s.valueSerializer.ToBytes(value))
	return err
}

// Delete removes the key from the store.
func (s *Store[K, V]) Delete(key K) error {
	_, err := s.del.Exec(s.keySerializer.ToBytes(key))
	return err
}

// Apply writes a group of mutations inside one sqlite transaction.
func (s *Store[K, V]) Apply(ops []kvstore.Op[K, V]) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, op := range ops {
		switch op.Kind {
		case kvstore.OpSet:
			_, err = tx.Stmt(s.set).Exec(s.keySerializer.ToBytes(op.Key), s.valueSerializer.ToBytes(op.Value))
		case kvstore.OpDelete:
			_, err = tx.Stmt(s.del).Exec(s.keySerializer.ToBytes(op.Key))
		}
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Flush is a no-op; sqlite persists writes as they are committed.
func (s *Store[K, V]) Flush() error {
	return nil
}

// Close releases the prepared statements; the shared Database owns the
// connection.
func (s *Store[K, V]) Close() error {
	for _, stmt := range []*sql.Stmt{s.get, s.set, s.del} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return nil
}
