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

//go:generate mockgen -source collaborators.go -destination collaborators_mocks.go -package recovery

import (
	"time"

	"github.com/veillabs/reclaim/common"
)

// MagicValue is the only ContractSignatureValidator result accepted as a
// successful delegated signature validation.
var MagicValue = [4]byte{0x16, 0x26, 0xba, 0x7e}

// IdentityDirectory resolves an identity anchor published in an external
// naming directory to the address currently bound to it. The directory's
// internals are outside this system; only this boundary is relied upon.
type IdentityDirectory interface {
	Resolve(anchor common.Hash) (common.Address, error)
}

// ContractSignatureValidator models the delegated signature-validation
// capability of contract-style signers: instead of recovering a key, the
// signer itself is asked whether the signature is valid for the digest, and
// answers with a magic value.
type ContractSignatureValidator interface {
	// IsContract reports whether the address hosts a contract-style
	// signer exposing IsValidSignature.
	IsContract(addr common.Address) bool

	// IsValidSignature asks the signer whether the signature authorizes
	// the digest. A result equal to MagicValue means yes; any other
	// result or an error means no.
	IsValidSignature(signer common.Address, digest common.Hash, sig []byte) ([4]byte, error)
}

// Dispatcher performs the authorized external call. Its internal behavior
// is opaque to the engine; only the success flag is observed, and it never
// unwinds engine state.
type Dispatcher interface {
	Dispatch(target common.Address, payload []byte) bool
}

// Clock provides the current time for the reconfiguration gate. Timeouts in
// this protocol are pure timestamp comparisons, never scheduled events.
type Clock interface {
	Now() uint64
}

// WallClock is the Clock used outside of tests.
type WallClock struct{}

func (WallClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
