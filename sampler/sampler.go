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

// Package sampler selects which subkeys of the universe the sender commits
// to. The selection must be unpredictable, so it only draws from a
// cryptographically secure source.
package sampler

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/errors"
)

// Sample returns k distinct indices drawn uniformly without replacement from
// [0, universe). The result is in draw order and is deliberately not sorted:
// its first element becomes the canary leaf.
//
// k > universe or k == 0 is reported as InvalidArgument before anything is
// read from src.
func Sample(src io.Reader, universe, k uint64) ([]uint64, error) {
	if k == 0 {
		return nil, errors.New(errors.InvalidArgument, "sample size must be positive")
	}
	if k > universe {
		return nil, errors.Errorf(errors.InvalidArgument, "sample size %d exceeds universe size %d", k, universe)
	}

	// Partial Fisher-Yates shuffle. Only displaced positions are stored, so
	// memory is O(k) regardless of the universe size.
	swapped := make(map[uint64]uint64, k)
	at := func(i uint64) uint64 {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}
	out := make([]uint64, k)
	for i := uint64(0); i < k; i++ {
		r, err := rand.Int(src, new(big.Int).SetUint64(universe-i))
		if err != nil {
			return nil, fmt.Errorf("drawing sample %d: %w", i, err)
		}
		j := i + r.Uint64()
		out[i] = at(j)
		swapped[j] = at(i)
	}

	if err := check(out, universe); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleDepth draws the 2^depth indices of a description of the given depth
// from the subkey universe.
func SampleDepth(src io.Reader, depth uint) ([]uint64, error) {
	k, err := fairdex.SampleSize(depth)
	if err != nil {
		return nil, err
	}
	return Sample(src, fairdex.UniverseSize, k)
}

func check(indices []uint64, universe uint64) error {
	seen := make(map[uint64]bool, len(indices))
	for i, idx := range indices {
		if idx >= universe {
			return errors.Errorf(errors.Internal, "sample %d: index %d outside universe of size %d", i, idx, universe)
		}
		if seen[idx] {
			return errors.Errorf(errors.Internal, "sample %d: index %d drawn twice", i, idx)
		}
		seen[idx] = true
	}
	return nil
}
