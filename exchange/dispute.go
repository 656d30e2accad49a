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

package exchange

import (
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/merkle"
	"k8s.io/klog/v2"

	tmerkle "github.com/transparency-dev/merkle"
)

// Values of the outcome label.
const (
	OutcomeFraud       = "fraud"
	OutcomeHonest      = "honest"
	OutcomeNotIncluded = "not_included"
)

// Verdict is the result of checking a canary against a published master
// key. It is a value, not an error: a dishonest sender is an expected
// outcome of the protocol.
type Verdict struct {
	// Included is set when the canary proof leads to the committed root.
	Included bool
	// KeyMismatch is set when the published key does not derive the
	// canary subkey.
	KeyMismatch bool
}

// Fraud reports whether the verdict proves the sender cheated. Both checks
// must hold.
func (v Verdict) Fraud() bool {
	return v.Included && v.KeyMismatch
}

// Outcome names the verdict for logs and metrics.
func (v Verdict) Outcome() string {
	switch {
	case !v.Included:
		return OutcomeNotIncluded
	case v.KeyMismatch:
		return OutcomeFraud
	default:
		return OutcomeHonest
	}
}

// CheckDispute evaluates both conditions of a fraud claim: that canary is
// committed under root via proof, and that published does not derive the
// canary's subkey. Both are always computed.
func CheckDispute(h tmerkle.LogHasher, canary fairdex.Pair, proof [][]byte, root fairdex.Hash, published fairdex.MasterKey) Verdict {
	leaf := subkey.Bind(canary.Subkey, canary.Index)
	err := merkle.VerifyCanaryProof(h, leaf[:], proof, root[:])
	if err != nil {
		klog.V(1).Infof("Canary %d not included under %v: %v", canary.Index, root, err)
	}
	v := Verdict{
		Included:    err == nil,
		KeyMismatch: subkey.Derive(published, canary.Index) != canary.Subkey,
	}
	InitMetrics(nil)
	disputes.Inc(v.Outcome())
	klog.V(1).Infof("Dispute over canary %d: %s", canary.Index, v.Outcome())
	return v
}
