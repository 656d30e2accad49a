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

package menu

import (
	"context"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/exchange"
	"github.com/fairdex/fairdex/ledger"
	"k8s.io/klog/v2"
)

// NewSender returns the sender's menu. mk is the key the commitment was
// derived from; wrong keys for the demo entry are drawn from rand.
func NewSender(c ledger.Contract, mk fairdex.MasterKey, sent *exchange.Commitment, rand io.Reader) *Menu {
	return &Menu{
		Title:    "Sender",
		Commands: SenderCommands,
		Contract: c,
		Header: []string{
			fmt.Sprintf("Master Key: %s", mk.Hex()),
			fmt.Sprintf("Description: %s", sent.Root.Hex()),
		},
		Handlers: map[ledger.Operation]Handler{
			ledger.PublishMasterKey: func(ctx context.Context) (common.Hash, error) {
				return c.PublishMasterKey(ctx, mk)
			},
			ledger.PublishWrongKey: func(ctx context.Context) (common.Hash, error) {
				wrong, err := subkey.NewMasterKey(rand)
				if err != nil {
					return common.Hash{}, err
				}
				klog.Infof("Publishing wrong master key %s", wrong.Hex())
				return c.PublishMasterKey(ctx, wrong)
			},
			ledger.TransferToSeller: c.TransferToSeller,
		},
	}
}

// NewReceiver returns the receiver's menu for a commitment opened from the
// offchain payload. Reading the master key also reports whether it proves
// the sender cheated.
func NewReceiver(c ledger.Contract, received *exchange.Commitment) *Menu {
	canary := received.Canary()
	return &Menu{
		Title:    "Receiver",
		Commands: ReceiverCommands,
		Contract: c,
		Header: []string{
			fmt.Sprintf("Description: %s", received.Root.Hex()),
			fmt.Sprintf("Canary: %s %d", canary.Subkey.Hex(), canary.Index),
		},
		Handlers: map[ledger.Operation]Handler{
			ledger.PayWithDescription: func(ctx context.Context) (common.Hash, error) {
				return c.PayWithDescription(ctx, received.Root)
			},
			ledger.RaiseObjection: func(ctx context.Context) (common.Hash, error) {
				return c.RaiseObjection(ctx, canary.Index, canary.Subkey, received.ProofHashes())
			},
			ledger.RefundToBuyer: c.RefundToBuyer,
		},
		OnMasterKey: func(mk fairdex.MasterKey) string {
			return VerdictText(received.Dispute(mk))
		},
	}
}

// VerdictText describes a dispute verdict to the receiver.
func VerdictText(v exchange.Verdict) string {
	switch v.Outcome() {
	case exchange.OutcomeFraud:
		return "Verdict: the master key does not derive the canary. Raise an objection."
	case exchange.OutcomeHonest:
		return "Verdict: the master key derives the canary."
	}
	return "Verdict: the canary is not included in the description."
}
