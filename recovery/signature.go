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
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/veillabs/reclaim/common"
)

// signatureLength is the length of a compact ECDSA signature,
// R (32) || S (32) || V (1).
const signatureLength = 65

// SignatureVerifier validates that a claimed signer authorized an approval
// payload, via direct key recovery or the delegated contract-signer path,
// and optionally binds the signer to a resolved external identity.
type SignatureVerifier struct {
	params    DomainParams
	directory IdentityDirectory
	contracts ContractSignatureValidator
}

// NewSignatureVerifier constructs a verifier for the given domain.
func NewSignatureVerifier(params DomainParams, directory IdentityDirectory, contracts ContractSignatureValidator) *SignatureVerifier {
	return &SignatureVerifier{
		params:    params,
		directory: directory,
		contracts: contracts,
	}
}

// Verify checks that the signature authorizes the approval payload
// (approveHash, peerSeed, weight, anchor) on behalf of the claimed signer.
// It returns nil on success and one of ErrInvalidSigner,
// ErrInvalidSignature, or ErrInvalidIdentityBinding otherwise.
func (v *SignatureVerifier) Verify(
	signer common.Address,
	approveHash, peerSeed common.Hash,
	weight *uint256.Int,
	anchor common.Hash,
	sig []byte,
) error {
	if signer.IsZero() {
		return ErrInvalidSigner
	}

	digest := SigningHash(v.params, approveHash, peerSeed, weight, anchor)

	if v.contracts.IsContract(signer) {
		magic, err := v.contracts.IsValidSignature(signer, digest, sig)
		if err != nil || magic != MagicValue {
			return fmt.Errorf("%w: contract signer %s rejected", ErrInvalidSignature, signer)
		}
	} else {
		recovered, err := recoverSigner(digest, sig)
		if err != nil || recovered != signer {
			return fmt.Errorf("%w: recovered address does not match %s", ErrInvalidSignature, signer)
		}
	}

	if !anchor.IsZero() {
		resolved, err := v.directory.Resolve(anchor)
		if err != nil || resolved != signer {
			return fmt.Errorf("%w: anchor %s", ErrInvalidIdentityBinding, anchor)
		}
	}
	return nil
}

// recoverSigner recovers the signing address from a compact signature over
// the digest. Both raw (0/1) and legacy Ethereum (27/28) recovery IDs are
// accepted.
func recoverSigner(digest common.Hash, sig []byte) (common.Address, error) {
	if len(sig) != signatureLength {
		return common.Address{}, fmt.Errorf("signature must be %d bytes, got %d", signatureLength, len(sig))
	}
	normalized := make([]byte, signatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	pub, err := crypto.SigToPub(digest[:], normalized)
	if err != nil {
		return common.Address{}, err
	}
	return common.Address(crypto.PubkeyToAddress(*pub)), nil
}
