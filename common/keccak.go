// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"golang.org/x/crypto/sha3"
)

// Keccak256 computes the legacy Keccak-256 hash over the concatenation of
// the given byte slices. This is the same construction Ethereum uses for
// addresses, signing digests and Merkle nodes.
func Keccak256(data ...[]byte) Hash {
	state := sha3.NewLegacyKeccak256()
	for _, d := range data {
		state.Write(d)
	}
	var res Hash
	state.Sum(res[:0])
	return res
}

// HashPair computes the Merkle parent of two child nodes,
// Keccak256(left || right).
func HashPair(left, right Hash) Hash {
	return Keccak256(left[:], right[:])
}
