// Copyright (c) 2025 Veil Labs Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at veillabs.io/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package recovery

import (
	"github.com/holiman/uint256"

	"github.com/veillabs/reclaim/common"
)

// The hash schedule of the protocol. All derived values are Keccak-256 over
// fixed-width big-endian packed fields; numeric fields occupy 32 bytes.
//
// The schedule chains three commitments together: the setup-time commitment
// binds peer seed, Merkle root and weight multiplier; the action commitment
// binds every approval to one exact target call; the leaf key hides an
// approver's parameters behind the peer seed until execution time.

// DeriveSeed derives the peer seed from the principal's secret seed. The
// double hash keccak(keccak(secret)) gates recovery: approvers only ever see
// the peer seed, the commitment only ever contains its hash.
func DeriveSeed(secretSeed common.Hash) common.Hash {
	return common.Keccak256(secretSeed[:])
}

// Commitment derives the setup-time commitment hash from the (already
// derived) peer seed, the Merkle root over the peer list, and the weight
// multiplier.
func Commitment(peerSeed, merkleRoot common.Hash, weightMultiplier *uint256.Int) common.Hash {
	multiplier := weightMultiplier.Bytes32()
	return common.Keccak256(peerSeed[:], merkleRoot[:], multiplier[:])
}

// ActionCommitment derives the hash an approver signs off on, binding the
// approval to one exact target and payload.
func ActionCommitment(peerSeed common.Hash, target common.Address, payload []byte) common.Hash {
	return common.Keccak256(peerSeed[:], target[:], payload)
}

// LeafKey derives the ledger slot of one approval. The anchor-presence byte
// keeps the keys of anchored and unanchored approvals disjoint even when
// the anchor value is zero.
func LeafKey(peerSeed common.Hash, weight *uint256.Int, anchor common.Hash) common.Hash {
	w := weight.Bytes32()
	flag := []byte{0x00}
	if !anchor.IsZero() {
		flag[0] = 0x01
	}
	return common.Keccak256(peerSeed[:], w[:], flag, anchor[:])
}

// SigningHash derives the digest an approver signs. The chain identifier
// and engine domain separate signatures across deployments; the remaining
// fields bind the signature to one approval's exact parameters.
func SigningHash(params DomainParams, approveHash, peerSeed common.Hash, weight *uint256.Int, anchor common.Hash) common.Hash {
	chain := uint256.NewInt(params.ChainID).Bytes32()
	w := weight.Bytes32()
	return common.Keccak256(chain[:], params.Domain[:], approveHash[:], peerSeed[:], w[:], anchor[:])
}
