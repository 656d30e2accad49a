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
	"bytes"
	"fmt"

	"github.com/fairdex/fairdex/errors"
	"github.com/transparency-dev/merkle"
	"github.com/transparency-dev/merkle/proof"
)

// RootMismatchError occurs when a canary proof does not lead to the
// committed root.
type RootMismatchError struct {
	ExpectedRoot   []byte
	CalculatedRoot []byte
}

func (e RootMismatchError) Error() string {
	return fmt.Sprintf("calculated root %x does not match expected root %x", e.CalculatedRoot, e.ExpectedRoot)
}

// RootFromCanaryProof folds a canary leaf with its audit path the way the
// ledger contract does:
//
//	acc = combine(leaf, proof[0])
//	acc = combine(acc, proof[i]) for i = 1 .. len(proof)-1
//
// The canary is always the left child, so every step hashes the accumulator
// on the left. An empty proof is reported as an Internal error.
func RootFromCanaryProof(h merkle.LogHasher, leaf []byte, proof [][]byte) ([]byte, error) {
	if len(proof) == 0 {
		return nil, errors.New(errors.Internal, "empty canary proof")
	}
	acc := h.HashChildren(leaf, proof[0])
	for _, sibling := range proof[1:] {
		acc = h.HashChildren(acc, sibling)
	}
	return acc, nil
}

// VerifyCanaryProof checks that leaf is the canary of the tree with the
// given root. It returns a RootMismatchError if the proof leads elsewhere.
func VerifyCanaryProof(h merkle.LogHasher, leaf []byte, proof [][]byte, root []byte) error {
	calcRoot, err := RootFromCanaryProof(h, leaf, proof)
	if err != nil {
		return err
	}
	if !bytes.Equal(calcRoot, root) {
		return RootMismatchError{
			CalculatedRoot: calcRoot,
			ExpectedRoot:   root,
		}
	}
	return nil
}

// VerifyCanaryInclusion checks the same statement as VerifyCanaryProof with
// the generic RFC 6962 style inclusion verifier: a canary path of length d
// is the inclusion proof of index 0 in a tree of size 2^d. It is used to
// cross-check freshly built commitments.
func VerifyCanaryInclusion(h merkle.LogHasher, leaf []byte, canaryProof [][]byte, root []byte) error {
	if len(canaryProof) == 0 || len(canaryProof) >= 64 {
		return errors.Errorf(errors.Internal, "canary proof length %d out of range", len(canaryProof))
	}
	size := uint64(1) << len(canaryProof)
	return proof.VerifyInclusion(h, 0, size, leaf, canaryProof, root)
}
