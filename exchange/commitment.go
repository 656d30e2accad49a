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

// Package exchange assembles sampling, derivation, binding and the Merkle
// commitment into the values each party of an exchange works with.
package exchange

import (
	"io"
	"time"

	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/errors"
	"github.com/fairdex/fairdex/merkle"
	"github.com/fairdex/fairdex/merkle/keccak"
	"github.com/fairdex/fairdex/sampler"
	"github.com/fairdex/fairdex/util/clock"
	"k8s.io/klog/v2"
)

// timeSource is replaced in tests.
var timeSource clock.TimeSource = clock.System

// Commitment is a sampled set together with everything derived from it. The
// sender builds one with Commit, the receiver rebuilds the same value from
// the offchain payload with Open.
type Commitment struct {
	Depth   uint
	Samples fairdex.SampledSet
	// Leaves holds Bind(subkey, index) for each sample, in sample order.
	Leaves [][]byte
	// Root is the description the buyer pays with.
	Root fairdex.Hash
	// Proof is the canary audit path, Depth entries long.
	Proof [][]byte
}

// Commit samples 2^depth indices from rand, derives their subkeys from mk
// and builds the commitment. The canary proof is verified before returning;
// any failure is an Internal error and no commitment is returned.
func Commit(rand io.Reader, mk fairdex.MasterKey, depth uint) (*Commitment, error) {
	start := timeSource.Now()
	indices, err := sampler.SampleDepth(rand, depth)
	if err != nil {
		return nil, err
	}
	c, err := build(subkey.DeriveSet(mk, indices), depth)
	if err != nil {
		return nil, err
	}
	record(SenderSide, start)
	klog.V(1).Infof("Committed to %d subkeys with root %v", len(c.Samples), c.Root)
	return c, nil
}

// Open rebuilds the commitment of a sampled set received from the sender.
// A set that does not fit depth is reported as InvalidArgument.
func Open(set fairdex.SampledSet, depth uint) (*Commitment, error) {
	start := timeSource.Now()
	if err := set.Validate(depth); err != nil {
		return nil, err
	}
	samples := make(fairdex.SampledSet, len(set))
	copy(samples, set)
	c, err := build(samples, depth)
	if err != nil {
		return nil, err
	}
	record(ReceiverSide, start)
	klog.V(1).Infof("Opened commitment of %d subkeys with root %v", len(c.Samples), c.Root)
	return c, nil
}

func build(set fairdex.SampledSet, depth uint) (*Commitment, error) {
	h := keccak.DefaultHasher
	leaves := subkey.Leaves(set)
	root, err := merkle.BuildRoot(h, leaves)
	if err != nil {
		return nil, err
	}
	proof, err := merkle.CanaryProof(h, leaves)
	if err != nil {
		return nil, err
	}
	if got := uint(len(proof)); got != depth {
		return nil, errors.Errorf(errors.Internal, "canary proof has %d nodes, want %d", got, depth)
	}
	if err := merkle.VerifyCanaryProof(h, leaves[0], proof, root); err != nil {
		return nil, errors.Errorf(errors.Internal, "fresh canary proof does not verify: %v", err)
	}
	if err := merkle.VerifyCanaryInclusion(h, leaves[0], proof, root); err != nil {
		return nil, errors.Errorf(errors.Internal, "fresh canary proof is not an inclusion proof: %v", err)
	}

	c := &Commitment{
		Depth:   depth,
		Samples: set,
		Leaves:  leaves,
		Proof:   proof,
	}
	copy(c.Root[:], root)
	klog.V(2).Infof("Canary %d bound to leaf %x", set.Canary().Index, leaves[0])
	return c, nil
}

func record(side string, start time.Time) {
	InitMetrics(nil)
	commitments.Inc(side)
	buildLatency.Observe(clock.SecondsSince(timeSource, start), side)
}

// Canary returns the sampled pair at leaf 0.
func (c *Commitment) Canary() fairdex.Pair {
	return c.Samples.Canary()
}

// ProofHashes returns the canary proof in the bytes32[] form the ledger
// contract takes.
func (c *Commitment) ProofHashes() [][32]byte {
	out := make([][32]byte, len(c.Proof))
	for i, node := range c.Proof {
		copy(out[i][:], node)
	}
	return out
}

// Dispute checks the commitment against a master key published on the
// ledger.
func (c *Commitment) Dispute(published fairdex.MasterKey) Verdict {
	return CheckDispute(keccak.DefaultHasher, c.Canary(), c.Proof, c.Root, published)
}
