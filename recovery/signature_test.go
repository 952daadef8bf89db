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
	"crypto/ecdsa"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/veillabs/reclaim/common"
)

var testParams = DomainParams{
	ChainID: 31337,
	Domain:  common.Address{0xd0, 0x11},
}

func newTestKey(t *testing.T) (*ecdsa.PrivateKey, common.Address) {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key, common.Address(crypto.PubkeyToAddress(key.PublicKey))
}

func signApproval(t *testing.T, key *ecdsa.PrivateKey, approveHash, peerSeed common.Hash, weight *uint256.Int, anchor common.Hash) []byte {
	t.Helper()
	digest := SigningHash(testParams, approveHash, peerSeed, weight, anchor)
	sig, err := crypto.Sign(digest[:], key)
	require.NoError(t, err)
	return sig
}

func TestSignatureVerifier_DirectSignerIsAccepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	contracts := NewMockContractSignatureValidator(ctrl)
	contracts.EXPECT().IsContract(gomock.Any()).Return(false).AnyTimes()
	directory := NewMockIdentityDirectory(ctrl)
	verifier := NewSignatureVerifier(testParams, directory, contracts)

	key, signer := newTestKey(t)
	approveHash := common.Keccak256([]byte("action"))
	peerSeed := common.Keccak256([]byte("seed"))
	weight := uint256.NewInt(40)
	sig := signApproval(t, key, approveHash, peerSeed, weight, common.Hash{})

	require.NoError(t, verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, sig))

	// Legacy recovery IDs (27/28) are normalized and accepted as well.
	legacy := append([]byte{}, sig...)
	legacy[64] += 27
	require.NoError(t, verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, legacy))
}

func TestSignatureVerifier_RejectsForgedOrMalformedSignatures(t *testing.T) {
	ctrl := gomock.NewController(t)
	contracts := NewMockContractSignatureValidator(ctrl)
	contracts.EXPECT().IsContract(gomock.Any()).Return(false).AnyTimes()
	directory := NewMockIdentityDirectory(ctrl)
	verifier := NewSignatureVerifier(testParams, directory, contracts)

	key, signer := newTestKey(t)
	_, other := newTestKey(t)
	approveHash := common.Keccak256([]byte("action"))
	peerSeed := common.Keccak256([]byte("seed"))
	weight := uint256.NewInt(40)
	sig := signApproval(t, key, approveHash, peerSeed, weight, common.Hash{})

	tests := map[string]func() error{
		"null signer": func() error {
			return verifier.Verify(common.Address{}, approveHash, peerSeed, weight, common.Hash{}, sig)
		},
		"wrong claimed signer": func() error {
			return verifier.Verify(other, approveHash, peerSeed, weight, common.Hash{}, sig)
		},
		"signature over different weight": func() error {
			return verifier.Verify(signer, approveHash, peerSeed, uint256.NewInt(41), common.Hash{}, sig)
		},
		"signature over different action": func() error {
			return verifier.Verify(signer, common.Keccak256([]byte("other")), peerSeed, weight, common.Hash{}, sig)
		},
		"truncated signature": func() error {
			return verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, sig[:64])
		},
		"empty signature": func() error {
			return verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, nil)
		},
	}

	for name, run := range tests {
		t.Run(name, func(t *testing.T) {
			err := run()
			require.Error(t, err)
			if name == "null signer" {
				require.ErrorIs(t, err, ErrInvalidSigner)
			} else {
				require.ErrorIs(t, err, ErrInvalidSignature)
			}
		})
	}
}

func TestSignatureVerifier_ContractSignerPathUsesMagicValue(t *testing.T) {
	approveHash := common.Keccak256([]byte("action"))
	peerSeed := common.Keccak256([]byte("seed"))
	weight := uint256.NewInt(40)
	signer := common.Address{0xc0}
	sig := []byte("opaque contract signature blob")
	digest := SigningHash(testParams, approveHash, peerSeed, weight, common.Hash{})

	t.Run("magic value accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		contracts := NewMockContractSignatureValidator(ctrl)
		contracts.EXPECT().IsContract(signer).Return(true)
		contracts.EXPECT().IsValidSignature(signer, digest, sig).Return(MagicValue, nil)
		verifier := NewSignatureVerifier(testParams, NewMockIdentityDirectory(ctrl), contracts)

		require.NoError(t, verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, sig))
	})

	t.Run("non-magic result rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		contracts := NewMockContractSignatureValidator(ctrl)
		contracts.EXPECT().IsContract(signer).Return(true)
		contracts.EXPECT().IsValidSignature(signer, digest, sig).Return([4]byte{}, nil)
		verifier := NewSignatureVerifier(testParams, NewMockIdentityDirectory(ctrl), contracts)

		err := verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, sig)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("validator error rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		contracts := NewMockContractSignatureValidator(ctrl)
		contracts.EXPECT().IsContract(signer).Return(true)
		contracts.EXPECT().IsValidSignature(signer, digest, sig).Return(MagicValue, fmt.Errorf("call failed"))
		verifier := NewSignatureVerifier(testParams, NewMockIdentityDirectory(ctrl), contracts)

		err := verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, sig)
		require.ErrorIs(t, err, ErrInvalidSignature)
	})
}

func TestSignatureVerifier_IdentityAnchorMustResolveToSigner(t *testing.T) {
	approveHash := common.Keccak256([]byte("action"))
	peerSeed := common.Keccak256([]byte("seed"))
	weight := uint256.NewInt(40)
	anchor := common.Keccak256([]byte("alice.eth"))

	key, signer := newTestKey(t)
	_, other := newTestKey(t)
	digest := SigningHash(testParams, approveHash, peerSeed, weight, anchor)
	sig, err := crypto.Sign(digest[:], key)
	require.NoError(t, err)

	newVerifier := func(t *testing.T) (*SignatureVerifier, *MockIdentityDirectory) {
		ctrl := gomock.NewController(t)
		contracts := NewMockContractSignatureValidator(ctrl)
		contracts.EXPECT().IsContract(gomock.Any()).Return(false).AnyTimes()
		directory := NewMockIdentityDirectory(ctrl)
		return NewSignatureVerifier(testParams, directory, contracts), directory
	}

	t.Run("anchor resolves to signer", func(t *testing.T) {
		verifier, directory := newVerifier(t)
		directory.EXPECT().Resolve(anchor).Return(signer, nil)
		require.NoError(t, verifier.Verify(signer, approveHash, peerSeed, weight, anchor, sig))
	})

	t.Run("anchor resolves elsewhere", func(t *testing.T) {
		verifier, directory := newVerifier(t)
		directory.EXPECT().Resolve(anchor).Return(other, nil)
		err := verifier.Verify(signer, approveHash, peerSeed, weight, anchor, sig)
		require.ErrorIs(t, err, ErrInvalidIdentityBinding)
	})

	t.Run("resolver failure", func(t *testing.T) {
		verifier, directory := newVerifier(t)
		directory.EXPECT().Resolve(anchor).Return(common.Address{}, fmt.Errorf("not registered"))
		err := verifier.Verify(signer, approveHash, peerSeed, weight, anchor, sig)
		require.ErrorIs(t, err, ErrInvalidIdentityBinding)
	})

	t.Run("zero anchor skips the directory", func(t *testing.T) {
		verifier, _ := newVerifier(t)
		plain := signApproval(t, key, approveHash, peerSeed, weight, common.Hash{})
		// No Resolve expectation: the directory must not be consulted.
		require.NoError(t, verifier.Verify(signer, approveHash, peerSeed, weight, common.Hash{}, plain))
	})
}
