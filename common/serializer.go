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
	"encoding/binary"
)

// Serializer converts a value of type T into a fixed-size binary form and
// back. Persistent store backends use serializers to lay keys and values out
// on disk.
type Serializer[T any] interface {
	// ToBytes serializes the value into a newly allocated slice.
	ToBytes(T) []byte
	// CopyBytes serializes the value into the provided slice, whose length
	// must match Size().
	CopyBytes(T, []byte)
	// FromBytes deserializes a value from the slice, whose length must
	// match Size().
	FromBytes([]byte) T
	// Size returns the fixed length of the serialized form in bytes.
	Size() int
}

// HashSerializer is a Serializer of the Hash type.
type HashSerializer struct{}

func (a HashSerializer) ToBytes(hash Hash) []byte {
	return hash[:]
}
func (a HashSerializer) CopyBytes(hash Hash, out []byte) {
	copy(out, hash[:])
}
func (a HashSerializer) FromBytes(bytes []byte) Hash {
	var hash Hash
	copy(hash[:], bytes)
	return hash
}
func (a HashSerializer) Size() int {
	return 32
}

// AddressSerializer is a Serializer of the Address type.
type AddressSerializer struct{}

func (a AddressSerializer) ToBytes(address Address) []byte {
	return address[:]
}
func (a AddressSerializer) CopyBytes(address Address, out []byte) {
	copy(out, address[:])
}
func (a AddressSerializer) FromBytes(bytes []byte) Address {
	var address Address
	copy(address[:], bytes)
	return address
}
func (a AddressSerializer) Size() int {
	return 20
}

// Uint64Serializer is a Serializer of the uint64 type, big-endian.
type Uint64Serializer struct{}

func (a Uint64Serializer) ToBytes(value uint64) []byte {
	out := make([]byte, 8)
	a.CopyBytes(value, out)
	return out
}
func (a Uint64Serializer) CopyBytes(value uint64, out []byte) {
	binary.BigEndian.PutUint64(out, value)
}
func (a Uint64Serializer) FromBytes(bytes []byte) uint64 {
	return binary.BigEndian.Uint64(bytes)
}
func (a Uint64Serializer) Size() int {
	return 8
}

// BoolSerializer is a Serializer of the bool type, one byte.
type BoolSerializer struct{}

func (a BoolSerializer) ToBytes(value bool) []byte {
	out := make([]byte, 1)
	a.CopyBytes(value, out)
	return out
}
func (a BoolSerializer) CopyBytes(value bool, out []byte) {
	if value {
		out[0] = 1
	} else {
		out[0] = 0
	}
}
func (a BoolSerializer) FromBytes(bytes []byte) bool {
	return bytes[0] != 0
}
func (a BoolSerializer) Size() int {
	return 1
}
