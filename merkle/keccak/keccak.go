// Copyright 2026 Google LLC. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package keccak implements the tree hasher used by the FairDEx contract:
// Keccak-256 over Solidity abi.encodePacked arguments, without any domain
// separation prefixes.
package keccak

import (
	"github.com/holiman/uint256"
	"github.com/transparency-dev/merkle"
	"golang.org/x/crypto/sha3"
)

// DefaultHasher is a Keccak-256 based LogHasher for commitment trees.
var DefaultHasher = New()

var _ merkle.LogHasher = Hasher{}

// Hasher implements merkle.LogHasher. Leaves are hashed as is and inner
// nodes as keccak256(l || r), which is what the contract computes for
// keccak256(abi.encodePacked(bytes32 l, bytes32 r)).
type Hasher struct{}

// New creates a new Keccak-256 tree hasher.
func New() Hasher {
	return Hasher{}
}

// EmptyRoot returns the Keccak-256 of no data.
func (Hasher) EmptyRoot() []byte {
	return Sum()
}

// HashLeaf returns the Keccak-256 of the already packed leaf data.
func (Hasher) HashLeaf(leaf []byte) []byte {
	return Sum(leaf)
}

// HashChildren returns the inner node hash of the two child nodes l and r.
// The order of the children is significant.
func (Hasher) HashChildren(l, r []byte) []byte {
	return Sum(l, r)
}

// Size returns the number of bytes in output hashes.
func (Hasher) Size() int {
	return 32
}

// Sum returns the Keccak-256 (the pre-standard SHA-3 variant used by
// Ethereum) of the concatenation of data.
func Sum(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// PackUint256 returns the 32-byte big-endian uint256 word for v, as laid out
// by abi.encodePacked.
func PackUint256(v uint64) []byte {
	w := uint256.NewInt(v).Bytes32()
	return w[:]
}

// SumWordIndex returns keccak256(abi.encodePacked(bytes32 word, uint256 index)).
// Both subkey derivation and leaf binding use this packing.
func SumWordIndex(word [32]byte, index uint64) [32]byte {
	var out [32]byte
	copy(out[:], Sum(word[:], PackUint256(index)))
	return out
}
