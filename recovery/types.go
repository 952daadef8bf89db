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

// ExecutionThreshold is the cumulative scaled weight an execution must
// accumulate to be authorized. Weights committed at setup time are scaled by
// the revealed weight multiplier before accumulation, so the threshold is a
// fixed protocol constant rather than a per-principal parameter.
const ExecutionThreshold = 100

// DomainParams separate signatures and commitments of independent engine
// deployments.
type DomainParams struct {
	// ChainID identifies the surrounding execution context.
	ChainID uint64
	// Domain is the engine's own identity, mixed into every signing hash.
	Domain common.Address
}

// RecoverySet is one principal's active recovery configuration. A principal
// has at most one at a time; a successful execution clears it.
type RecoverySet struct {
	// CommitmentHash binds the principal's secret seed, peer-list Merkle
	// root and weight multiplier without revealing them.
	CommitmentHash common.Hash
	// SetupDelay is the number of seconds that must elapse after SetupTime
	// before the configuration may be replaced.
	SetupDelay uint64
	// SetupTime is the timestamp the configuration was activated at.
	SetupTime uint64
}

// Approval is one recorded, not yet consumed approval, keyed in the ledger
// by its leaf key.
type Approval struct {
	// ActionCommitment binds the approval to one exact target call.
	ActionCommitment common.Hash
	// Weight is the approval's unscaled voting weight.
	Weight uint256.Int
}

// PreSignedApproval is one entry of a pre-signed approval batch.
type PreSignedApproval struct {
	Signer common.Address
	Weight *uint256.Int
	Anchor common.Hash
}

// RecoverySetSerializer is a common.Serializer of RecoverySet values, for
// the persistent store backends.
type RecoverySetSerializer struct{}

func (s RecoverySetSerializer) ToBytes(set RecoverySet) []byte {
	out := make([]byte, s.Size())
	s.CopyBytes(set, out)
	return out
}
func (s RecoverySetSerializer) CopyBytes(set RecoverySet, out []byte) {
	copy(out[0:32], set.CommitmentHash[:])
	common.Uint64Serializer{}.CopyBytes(set.SetupDelay, out[32:40])
	common.Uint64Serializer{}.CopyBytes(set.SetupTime, out[40:48])
}
func (s RecoverySetSerializer) FromBytes(bytes []byte) RecoverySet {
	var set RecoverySet
	copy(set.CommitmentHash[:], bytes[0:32])
	set.SetupDelay = common.Uint64Serializer{}.FromBytes(bytes[32:40])
	set.SetupTime = common.Uint64Serializer{}.FromBytes(bytes[40:48])
	return set
}
func (s RecoverySetSerializer) Size() int {
	return 48
}

// ApprovalSerializer is a common.Serializer of Approval values, for the
// persistent store backends.
type ApprovalSerializer struct{}

func (s ApprovalSerializer) ToBytes(approval Approval) []byte {
	out := make([]byte, s.Size())
	s.CopyBytes(approval, out)
	return out
}
func (s ApprovalSerializer) CopyBytes(approval Approval, out []byte) {
	copy(out[0:32], approval.ActionCommitment[:])
	weight := approval.Weight.Bytes32()
	copy(out[32:64], weight[:])
}
func (s ApprovalSerializer) FromBytes(bytes []byte) Approval {
	var approval Approval
	copy(approval.ActionCommitment[:], bytes[0:32])
	approval.Weight.SetBytes(bytes[32:64])
	return approval
}
func (s ApprovalSerializer) Size() int {
	return 64
}
