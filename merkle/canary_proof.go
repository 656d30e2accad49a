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

package merkle

import (
	"github.com/transparency-dev/merkle"
)

// CanaryProof returns the audit path of leaves[0], the canary leaf, ordered
// from the leaf towards the root. The path has exactly log2(len(leaves))
// entries: proof[0] is leaves[1] and proof[i] is the root of
// leaves[2^i : 2^(i+1)].
//
// Leaves are validated as in BuildRoot.
func CanaryProof(h merkle.LogHasher, leaves [][]byte) ([][]byte, error) {
	if err := checkLeaves(h, leaves); err != nil {
		return nil, err
	}
	depth, _ := Depth(len(leaves))

	proof := make([][]byte, 0, depth)
	proof = append(proof, append([]byte(nil), leaves[1]...))
	for level := 1; level < depth; level++ {
		begin, end := 1<<level, 1<<(level+1)
		proof = append(proof, buildRoot(h, leaves[begin:end]))
	}
	return proof, nil
}
