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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/veillabs/reclaim/common"
)

func TestHashSchedule_SeedIsDoubleHashed(t *testing.T) {
	secret := common.Keccak256([]byte("secret"))
	require.Equal(t, common.Keccak256(secret[:]), DeriveSeed(secret))
	require.NotEqual(t, secret, DeriveSeed(secret))
}

func TestHashSchedule_LeafKeySeparatesAnchoredFromUnanchored(t *testing.T) {
	require := require.New(t)
	seed := common.Keccak256([]byte("seed"))
	weight := uint256.NewInt(40)

	// An anchored approval and an unanchored one must occupy different
	// ledger slots even when the anchor value itself is not part of the
	// difference.
	unanchored := LeafKey(seed, weight, common.Hash{})
	anchored := LeafKey(seed, weight, common.Keccak256([]byte("peer.id")))
	require.NotEqual(unanchored, anchored)

	// Every input contributes to the key.
	require.NotEqual(unanchored, LeafKey(seed, uint256.NewInt(41), common.Hash{}))
	require.NotEqual(unanchored, LeafKey(common.Keccak256([]byte("other")), weight, common.Hash{}))
}

func TestHashSchedule_SigningHashIsDomainSeparated(t *testing.T) {
	require := require.New(t)
	approveHash := common.Keccak256([]byte("action"))
	seed := common.Keccak256([]byte("seed"))
	weight := uint256.NewInt(40)

	base := SigningHash(testParams, approveHash, seed, weight, common.Hash{})

	otherChain := testParams
	otherChain.ChainID++
	require.NotEqual(base, SigningHash(otherChain, approveHash, seed, weight, common.Hash{}))

	otherDomain := testParams
	otherDomain.Domain[0] ^= 0xFF
	require.NotEqual(base, SigningHash(otherDomain, approveHash, seed, weight, common.Hash{}))

	require.NotEqual(base, SigningHash(testParams, approveHash, seed, uint256.NewInt(41), common.Hash{}))
	require.NotEqual(base, SigningHash(testParams, approveHash, seed, weight, common.Keccak256([]byte("anchor"))))
}

func TestSerializers_RoundTripProtocolRecords(t *testing.T) {
	require := require.New(t)

	set := RecoverySet{
		CommitmentHash: common.Keccak256([]byte("commitment")),
		SetupDelay:     3600,
		SetupTime:      1_000_000,
	}
	setSer := RecoverySetSerializer{}
	require.Equal(setSer.Size(), len(setSer.ToBytes(set)))
	require.Equal(set, setSer.FromBytes(setSer.ToBytes(set)))

	approval := Approval{ActionCommitment: common.Keccak256([]byte("action"))}
	approval.Weight.SetUint64(40)
	appSer := ApprovalSerializer{}
	require.Equal(appSer.Size(), len(appSer.ToBytes(approval)))
	require.Equal(approval, appSer.FromBytes(appSer.ToBytes(approval)))
}
