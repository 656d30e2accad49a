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

// Package merkle builds the commitment tree over sampled subkey leaves and
// the audit proof for its canary leaf.
//
// Trees are perfect binary trees: the number of leaves is always a power of
// two, and a tree is split exactly in half at every level. The canary is the
// leftmost leaf, so its audit path consists of the roots of the blocks
// [1, 2), [2, 4), [4, 8), ... of the leaf sequence.
package merkle

import (
	"github.com/fairdex/fairdex/errors"
	"github.com/transparency-dev/merkle"
)

// BuildRoot returns the root hash of the perfect binary tree over leaves.
// The number of leaves must be a power of two no smaller than 2, and every
// leaf must be a hash of the hasher's size. Anything else is reported as an
// Internal error: leaves are never padded or truncated.
func BuildRoot(h merkle.LogHasher, leaves [][]byte) ([]byte, error) {
	if err := checkLeaves(h, leaves); err != nil {
		return nil, err
	}
	return buildRoot(h, leaves), nil
}

// buildRoot assumes that len(leaves) is a power of two >= 2.
func buildRoot(h merkle.LogHasher, leaves [][]byte) []byte {
	n := len(leaves)
	if n == 2 {
		return h.HashChildren(leaves[0], leaves[1])
	}
	return h.HashChildren(buildRoot(h, leaves[:n/2]), buildRoot(h, leaves[n/2:]))
}

// Depth returns log2 of a valid leaf count, i.e. the length of the canary
// audit path for a tree with that many leaves.
func Depth(leafCount int) (int, error) {
	if !isPowerOfTwo(leafCount) || leafCount < 2 {
		return 0, errors.Errorf(errors.Internal, "leaf count %d is not a power of two >= 2", leafCount)
	}
	depth := 0
	for n := leafCount; n > 1; n >>= 1 {
		depth++
	}
	return depth, nil
}

func checkLeaves(h merkle.LogHasher, leaves [][]byte) error {
	if _, err := Depth(len(leaves)); err != nil {
		return err
	}
	for i, l := range leaves {
		if got, want := len(l), h.Size(); got != want {
			return errors.Errorf(errors.Internal, "leaf %d has %d bytes, want %d", i, got, want)
		}
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
