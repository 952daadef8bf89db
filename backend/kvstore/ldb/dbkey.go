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
	"github.com/veillabs/reclaim/common"
)

// TableSpace is a single-byte key prefix separating the logical tables that
// share one leveldb instance.
type TableSpace byte

const (
	// UsedCommitmentsSpace holds the domain-wide set of burned commitments.
	UsedCommitmentsSpace TableSpace = 'C'
	// ConfigurationsSpace holds per-principal recovery configurations.
	ConfigurationsSpace TableSpace = 'R'
	// ApprovalsSpace holds leaf-key keyed approvals.
	ApprovalsSpace TableSpace = 'A'
	// NoncesSpace holds per-principal execution counters.
	NoncesSpace TableSpace = 'N'
)

// dbKey builds the on-disk key for an entry: one table-space byte followed
// by the serialized logical key.
func dbKey[K any](table TableSpace, key K, serializer common.Serializer[K]) []byte {
	out := make([]byte, 1+serializer.Size())
	out[0] = byte(table)
	serializer.CopyBytes(key, out[1:])
	return out
}
