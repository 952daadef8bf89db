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
	"encoding/hex"
	"fmt"
	"strings"
)

// Hash is a 32-byte value used for commitments, Merkle nodes, leaf keys and
// message digests throughout the recovery protocol.
type Hash [32]byte

// Address is a 20-byte account identifier. Both externally-owned signers and
// contract-style signers are addressed this way.
type Address [20]byte

// String returns the 0x-prefixed hex representation of the hash.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// String returns the 0x-prefixed hex representation of the address.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// IsZero reports whether the hash is the all-zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// IsZero reports whether the address is the null identity.
func (a Address) IsZero() bool {
	return a == Address{}
}

// HashFromString parses a hex string, with or without the 0x prefix, into a
// Hash. The input must encode exactly 32 bytes.
func HashFromString(s string) (Hash, error) {
	var h Hash
	if err := parseHex(s, h[:]); err != nil {
		return Hash{}, err
	}
	return h, nil
}

// AddressFromString parses a hex string, with or without the 0x prefix, into
// an Address. The input must encode exactly 20 bytes.
func AddressFromString(s string) (Address, error) {
	var a Address
	if err := parseHex(s, a[:]); err != nil {
		return Address{}, err
	}
	return a, nil
}

func parseHex(s string, dst []byte) error {
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("invalid length, wanted %d bytes, got %d", len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
