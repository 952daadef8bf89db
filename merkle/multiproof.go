// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package merkle

import (
	"github.com/veillabs/reclaim/common"
)

// VerifyMultiProof checks that all leaves are members of the Merkle tree
// with the given root, using one combined proof for the whole batch.
//
// The proof consists of the sibling hashes the verifier cannot compute
// itself and a pairing sequence. Conceptually the verifier keeps a pool of
// nodes, initialized to leaves followed by siblings. The indices come in
// (left, right) pairs; each pair combines two pool nodes into their parent,
// Keccak256(left || right), which is appended to the pool. The node produced
// by the last pair must equal the root.
//
// Every pool node must be consumed exactly once and the sequence must reduce
// the whole pool to a single node; anything else leaves structure unbound
// and is rejected. With one leaf and no siblings the leaf itself must be the
// root. The function is pure and never panics on malformed input.
func VerifyMultiProof(root common.Hash, leaves, siblings []common.Hash, indices []uint16) bool {
	numLeaves := len(leaves)
	numSiblings := len(siblings)
	if numLeaves == 0 || len(indices)%2 != 0 {
		return false
	}

	steps := len(indices) / 2
	if steps != numLeaves+numSiblings-1 {
		return false
	}
	if steps == 0 {
		return leaves[0] == root
	}

	pool := make([]common.Hash, 0, numLeaves+numSiblings+steps)
	pool = append(pool, leaves...)
	pool = append(pool, siblings...)
	used := make([]bool, numLeaves+numSiblings+steps)

	for step := 0; step < steps; step++ {
		left := int(indices[2*step])
		right := int(indices[2*step+1])
		if left >= len(pool) || right >= len(pool) || left == right {
			return false
		}
		if used[left] || used[right] {
			return false
		}
		used[left] = true
		used[right] = true
		pool = append(pool, common.HashPair(pool[left], pool[right]))
	}

	return pool[len(pool)-1] == root
}
