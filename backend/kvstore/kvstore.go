// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package kvstore

// Store is a keyed store mapping fixed-size keys to fixed-size values. It is
// the persistence primitive behind all protocol state (used commitments,
// configurations, approvals, nonces).
//
// Implementations are not required to be thread-safe; callers must serialize
// access externally.
type Store[K comparable, V any] interface {
	// Get returns the value stored under the key and whether the key is
	// present at all.
	Get(key K) (V, bool, error)

	// Set stores the value under the key, overwriting any previous value.
	Set(key K, value V) error

	// Delete removes the key. Deleting an absent key is a no-op.
	Delete(key K) error

	// Flush writes any buffered state to the underlying medium.
	Flush() error

	// Close flushes and releases the store.
	Close() error
}

// OpKind distinguishes journaled mutations.
type OpKind byte

const (
	OpSet OpKind = iota
	OpDelete
)

// Op is one buffered mutation of a store.
type Op[K comparable, V any] struct {
	Kind  OpKind
	Key   K
	Value V // zero for OpDelete
}

// BatchStore is implemented by backends that can apply a group of mutations
// in a single atomic write.
type BatchStore[K comparable, V any] interface {
	Store[K, V]
	Apply(ops []Op[K, V]) error
}

// Journal buffers mutations against one store so that a multi-step operation
// can validate everything before committing anything. Reads through the
// journal observe buffered writes and deletes.
type Journal[K comparable, V any] struct {
	store Store[K, V]
	ops   []Op[K, V]
	state map[K]*V // buffered view; nil marks a buffered delete
}

// NewJournal creates an empty journal over the given store.
func NewJournal[K comparable, V any](store Store[K, V]) *Journal[K, V] {
	return &Journal[K, V]{
		store: store,
		state: map[K]*V{},
	}
}

// Get returns the value under the key as observed through the journal.
func (j *Journal[K, V]) Get(key K) (V, bool, error) {
	if buffered, exists := j.state[key]; exists {
		if buffered == nil {
			var none V
			return none, false, nil
		}
		return *buffered, true, nil
	}
	return j.store.Get(key)
}

// Set buffers an overwrite of the key.
func (j *Journal[K, V]) Set(key K, value V) {
	j.ops = append(j.ops, Op[K, V]{Kind: OpSet, Key: key, Value: value})
	j.state[key] = &value
}

// Delete buffers a removal of the key.
func (j *Journal[K, V]) Delete(key K) {
	j.ops = append(j.ops, Op[K, V]{Kind: OpDelete, Key: key})
	j.state[key] = nil
}

// Commit applies all buffered mutations to the underlying store, in order.
// Backends implementing BatchStore receive the whole group as one atomic
// write. The journal is drained on success.
func (j *Journal[K, V]) Commit() error {
	if batch, ok := j.store.(BatchStore[K, V]); ok {
		if err := batch.Apply(j.ops); err != nil {
			return err
		}
	} else {
		for _, op := range j.ops {
			var err error
			switch op.Kind {
			case OpSet:
				err = j.store.Set(op.Key, op.Value)
			case OpDelete:
				err = j.store.Delete(op.Key)
			}
			if err != nil {
				return err
			}
		}
	}
	j.ops = j.ops[:0]
	clear(j.state)
	return nil
}
