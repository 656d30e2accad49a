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

// Package subkey derives one-time subkeys from a master key and binds them
// to their indices as commitment leaves.
//
// Both operations hash a 32-byte word followed by a uint256 index with
// Keccak-256, exactly as the contract does with
// keccak256(abi.encodePacked(bytes32, uint256)). Any change here breaks
// fraud proof verification on the ledger.
package subkey

import (
	"fmt"
	"io"

	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/merkle/keccak"
)

// NewMasterKey reads a fresh master key from rand, which should be a
// cryptographically secure source such as crypto/rand.Reader.
func NewMasterKey(rand io.Reader) (fairdex.MasterKey, error) {
	var mk fairdex.MasterKey
	if _, err := io.ReadFull(rand, mk[:]); err != nil {
		return fairdex.MasterKey{}, fmt.Errorf("reading master key: %w", err)
	}
	return mk, nil
}

// Derive returns the subkey for index under masterKey.
func Derive(masterKey fairdex.MasterKey, index uint64) fairdex.Subkey {
	return fairdex.Subkey(keccak.SumWordIndex(masterKey, index))
}

// DeriveSet derives the subkeys for indices, keeping their order.
func DeriveSet(masterKey fairdex.MasterKey, indices []uint64) fairdex.SampledSet {
	set := make(fairdex.SampledSet, len(indices))
	for i, idx := range indices {
		set[i] = fairdex.Pair{Subkey: Derive(masterKey, idx), Index: idx}
	}
	return set
}

// Bind returns the commitment leaf for a subkey at index. The leaf commits
// to both values, so a proof cannot be replayed with either one changed.
func Bind(sk fairdex.Subkey, index uint64) fairdex.Hash {
	return fairdex.Hash(keccak.SumWordIndex(sk, index))
}

// Leaves binds every pair of set, in set order, into raw leaf hashes ready
// for tree construction.
func Leaves(set fairdex.SampledSet) [][]byte {
	leaves := make([][]byte, len(set))
	for i, p := range set {
		leaf := Bind(p.Subkey, p.Index)
		leaves[i] = leaf[:]
	}
	return leaves
}
