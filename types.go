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

// Package fairdex provides common data structures used throughout the
// off-chain half of the FairDEx fair exchange protocol.
package fairdex

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fairdex/fairdex/errors"
)

const (
	// UniverseDepth is log2 of the number of subkeys derivable from a master key.
	UniverseDepth = 14
	// UniverseSize is the number of subkeys derivable from a master key. Valid
	// subkey indices are [0, UniverseSize).
	UniverseSize uint64 = 1 << UniverseDepth
)

// MasterKey is the secret seed from which all subkeys are derived. It stays
// with the sender until it is published on the ledger.
type MasterKey [32]byte

// Hex returns the 0x-prefixed hex encoding of the key.
func (k MasterKey) Hex() string { return hexutil.Encode(k[:]) }

// Subkey is a one-time key bound to a single index of the universe.
type Subkey [32]byte

// Hex returns the 0x-prefixed hex encoding of the subkey.
func (k Subkey) Hex() string { return hexutil.Encode(k[:]) }

func (k Subkey) String() string { return k.Hex() }

// Hash is a 32-byte Keccak-256 digest: a leaf, an inner node or the root
// (the "description") of a commitment tree.
type Hash [32]byte

// Hex returns the 0x-prefixed hex encoding of the hash.
func (h Hash) Hex() string { return hexutil.Encode(h[:]) }

func (h Hash) String() string { return h.Hex() }

// ParseWord decodes a 32-byte hex string, with or without a 0x prefix.
// Malformed input is reported as InvalidArgument.
func ParseWord(s string) ([32]byte, error) {
	var w [32]byte
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	raw, err := hexutil.Decode(s)
	if err != nil {
		return w, errors.Errorf(errors.InvalidArgument, "%q: %v", s, err)
	}
	if len(raw) != len(w) {
		return w, errors.Errorf(errors.InvalidArgument, "got %d bytes, want %d", len(raw), len(w))
	}
	copy(w[:], raw)
	return w, nil
}

// Pair is a sampled subkey together with its index in the universe.
type Pair struct {
	Subkey Subkey
	Index  uint64
}

// SampledSet is the ordered list of pairs the sender commits to. Order is
// significant: it is the leaf order of the commitment tree and entry 0 is the
// canary used for disputes.
type SampledSet []Pair

// Canary returns the pair used for dispute proofs. The set must not be empty.
func (s SampledSet) Canary() Pair {
	return s[0]
}

// Indices returns the universe indices of the set in set order.
func (s SampledSet) Indices() []uint64 {
	idx := make([]uint64, len(s))
	for i, p := range s {
		idx[i] = p.Index
	}
	return idx
}

// Validate checks that the set has exactly 2^depth entries with distinct
// indices inside the universe. Violations are reported as InvalidArgument.
func (s SampledSet) Validate(depth uint) error {
	k, err := SampleSize(depth)
	if err != nil {
		return err
	}
	if got := uint64(len(s)); got != k {
		return errors.Errorf(errors.InvalidArgument, "sampled set has %d entries, want %d for depth %d", got, k, depth)
	}
	seen := make(map[uint64]bool, len(s))
	for i, p := range s {
		if p.Index >= UniverseSize {
			return errors.Errorf(errors.InvalidArgument, "entry %d: index %d outside universe of size %d", i, p.Index, UniverseSize)
		}
		if seen[p.Index] {
			return errors.Errorf(errors.InvalidArgument, "entry %d: duplicate index %d", i, p.Index)
		}
		seen[p.Index] = true
	}
	return nil
}

// SampleSize returns the number of sampled subkeys for the given description
// depth, 2^depth. The depth must be in [1, UniverseDepth].
func SampleSize(depth uint) (uint64, error) {
	if depth < 1 || depth > UniverseDepth {
		return 0, errors.Errorf(errors.InvalidArgument, "description depth %d outside [1, %d]", depth, UniverseDepth)
	}
	return uint64(1) << depth, nil
}
