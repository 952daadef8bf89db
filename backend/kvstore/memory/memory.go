// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"golang.org/x/exp/maps"

	"github.com/veillabs/reclaim/backend/kvstore"
)

const initCapacity = 1_024

// Store is an in-memory kvstore.Store implementation backed by a plain map.
// It is the default backend for tests and for embedded single-process use.
type Store[K comparable, V any] struct {
	data map[K]V
}

// NewStore constructs a new, empty in-memory store.
func NewStore[K comparable, V any]() *Store[K, V] {
	return &Store[K, V]{
		data: make(map[K]V, initCapacity),
	}
}

// Get returns the value stored under the key, if present.
func (m *Store[K, V]) Get(key K) (V, bool, error) {
	value, exists := m.data[key]
	return value, exists, nil
}

// Set stores the value under the key, overwriting any previous value.
func (m *Store[K, V]) Set(key K, value V) error {
	m.data[key] = value
	return nil
}

// Delete removes the key from the store.
func (m *Store[K, V]) Delete(key K) error {
	delete(m.data, key)
	return nil
}

// Apply applies a group of mutations. The in-memory map cannot fail midway,
// so the group is trivially atomic.
func (m *Store[K, V]) Apply(ops []kvstore.Op[K, V]) error {
	for _, op := range ops {
		switch op.Kind {
		case kvstore.OpSet:
			m.data[op.Key] = op.Value
		case kvstore.OpDelete:
			delete(m.data, op.Key)
		}
	}
	return nil
}

// Size returns the number of stored entries.
func (m *Store[K, V]) Size() int {
	return len(m.data)
}

// Snapshot returns an independent copy of the store content, for inspection
// in tests and tooling.
func (m *Store[K, V]) Snapshot() map[K]V {
	return maps.Clone(m.data)
}

// Flush the store.
func (m *Store[K, V]) Flush() error {
	return nil // no-op for in-memory store
}

// Close the store.
func (m *Store[K, V]) Close() error {
	return nil // no-op for in-memory store
}
