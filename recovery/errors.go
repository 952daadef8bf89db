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
	"errors"
)

// All protocol failures are reported through one of the sentinel errors
// below, possibly wrapped with call-site context. Callers match them with
// errors.Is. No operation retries internally, and apart from the commitment
// burn in Setup no partial mutation survives a failed operation.
var (
	// ErrCommitmentReused signals a setup offering a commitment hash that
	// was already offered before, by any principal.
	ErrCommitmentReused = errors.New("commitment hash already used")

	// ErrDelayNotMet signals a reconfiguration attempted before the
	// currently configured delay has elapsed.
	ErrDelayNotMet = errors.New("reconfiguration delay not met")

	// ErrInvalidSigner signals an approval claiming the null identity as
	// its signer.
	ErrInvalidSigner = errors.New("invalid signer")

	// ErrInvalidSignature signals an approval whose signature validates
	// under neither the direct-account nor the contract-signer path.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidIdentityBinding signals an approval whose identity anchor
	// does not resolve to the claimed signer.
	ErrInvalidIdentityBinding = errors.New("identity anchor does not resolve to signer")

	// ErrLengthMismatch signals a pre-signed batch whose per-entry arrays
	// differ in length.
	ErrLengthMismatch = errors.New("array length mismatch")

	// ErrRecoveryNotSet signals an execute against a principal without an
	// active configuration.
	ErrRecoveryNotSet = errors.New("recovery not configured")

	// ErrInvalidCommitment signals an execute whose revealed secret, root,
	// and multiplier do not hash to the committed value.
	ErrInvalidCommitment = errors.New("revealed parameters do not match commitment")

	// ErrInvalidApproval signals a leaf key without a ledger entry, or one
	// recorded for a different action.
	ErrInvalidApproval = errors.New("missing or mismatched approval")

	// ErrInsufficientWeight signals an execute whose supplied approvals do
	// not accumulate to the threshold.
	ErrInsufficientWeight = errors.New("accumulated weight below threshold")

	// ErrInvalidMerkleProof signals a multiproof that does not bind the
	// consumed leaf keys to the revealed root.
	ErrInvalidMerkleProof = errors.New("invalid merkle proof")
)
