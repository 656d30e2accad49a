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

package testonly

import (
	"context"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/errors"
	"github.com/fairdex/fairdex/exchange"
	"github.com/fairdex/fairdex/ledger"
)

var (
	price   = big.NewInt(100)
	balance = big.NewInt(1000)
)

type fixture struct {
	contract *Contract
	buyer    ledger.Contract
	seller   ledger.Contract
	mk       fairdex.MasterKey
	sent     *exchange.Commitment
	received *exchange.Commitment
}

func newFixture(t *testing.T, depth uint) *fixture {
	t.Helper()
	mk, err := subkey.NewMasterKey(rand.Reader)
	if err != nil {
		t.Fatalf("NewMasterKey(): %v", err)
	}
	sent, err := exchange.Commit(rand.Reader, mk, depth)
	if err != nil {
		t.Fatalf("Commit(): %v", err)
	}
	received, err := exchange.Open(sent.Samples, depth)
	if err != nil {
		t.Fatalf("Open(): %v", err)
	}
	c := NewContract(price, balance)
	return &fixture{contract: c, buyer: c.Buyer(), seller: c.Seller(), mk: mk, sent: sent, received: received}
}

func run(ctx context.Context, t *testing.T, c ledger.Contract, op ledger.Operation, fn func(context.Context) (common.Hash, error)) {
	t.Helper()
	if _, err := ledger.Execute(ctx, c, op, fn); err != nil {
		t.Fatalf("%v: %v", op, err)
	}
}

func wantBalance(ctx context.Context, t *testing.T, who string, c ledger.Contract, want int64) {
	t.Helper()
	got, err := c.Balance(ctx)
	if err != nil {
		t.Fatalf("%s Balance(): %v", who, err)
	}
	if got.Cmp(big.NewInt(want)) != 0 {
		t.Errorf("%s balance=%v, want %d", who, got, want)
	}
}

func wantState(ctx context.Context, t *testing.T, c ledger.Contract, want ledger.State) {
	t.Helper()
	if got := ledger.CurrentState(ctx, c); got != want {
		t.Errorf("state=%v, want %v", got, want)
	}
}

func TestHonestExchange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 4)

	run(ctx, t, f.buyer, ledger.PayWithDescription, func(ctx context.Context) (common.Hash, error) {
		return f.buyer.PayWithDescription(ctx, f.received.Root)
	})
	if got := f.contract.Description(); got != f.sent.Root {
		t.Errorf("Description()=%v, want %v", got, f.sent.Root)
	}
	wantBalance(ctx, t, "buyer", f.buyer, 900)

	if _, err := f.buyer.MasterKey(ctx); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("MasterKey() before publishing: %v, want code %v", err, errors.FailedPrecondition)
	}
	run(ctx, t, f.seller, ledger.PublishMasterKey, func(ctx context.Context) (common.Hash, error) {
		return f.seller.PublishMasterKey(ctx, f.mk)
	})
	published, err := f.buyer.MasterKey(ctx)
	if err != nil {
		t.Fatalf("MasterKey(): %v", err)
	}
	if v := f.received.Dispute(published); v.Fraud() || !v.Included || v.KeyMismatch {
		t.Errorf("Dispute(honest key)=%+v, want included without mismatch", v)
	}

	// An objection against an honest key is rejected by the contract.
	canary := f.received.Canary()
	if _, err := f.buyer.RaiseObjection(ctx, canary.Index, canary.Subkey, f.received.ProofHashes()); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("RaiseObjection() against honest key: %v, want code %v", err, errors.FailedPrecondition)
	}
	wantState(ctx, t, f.buyer, ledger.Published)

	run(ctx, t, f.seller, ledger.TransferToSeller, f.seller.TransferToSeller)
	wantState(ctx, t, f.seller, ledger.Created)
	wantBalance(ctx, t, "seller", f.seller, 1100)
	wantBalance(ctx, t, "buyer", f.buyer, 900)
}

func TestFraudulentExchange(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 3)

	run(ctx, t, f.buyer, ledger.PayWithDescription, func(ctx context.Context) (common.Hash, error) {
		return f.buyer.PayWithDescription(ctx, f.received.Root)
	})
	wrongKey, err := subkey.NewMasterKey(rand.Reader)
	if err != nil {
		t.Fatalf("NewMasterKey(): %v", err)
	}
	run(ctx, t, f.seller, ledger.PublishWrongKey, func(ctx context.Context) (common.Hash, error) {
		return f.seller.PublishMasterKey(ctx, wrongKey)
	})

	published, err := f.buyer.MasterKey(ctx)
	if err != nil {
		t.Fatalf("MasterKey(): %v", err)
	}
	if v := f.received.Dispute(published); !v.Fraud() {
		t.Fatalf("Dispute(wrong key)=%+v, want fraud", v)
	}

	// Refunds need an upheld objection first.
	if _, err := ledger.Execute(ctx, f.buyer, ledger.RefundToBuyer, f.buyer.RefundToBuyer); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("RefundToBuyer() before objection: %v, want code %v", err, errors.FailedPrecondition)
	}

	canary := f.received.Canary()
	run(ctx, t, f.buyer, ledger.RaiseObjection, func(ctx context.Context) (common.Hash, error) {
		return f.buyer.RaiseObjection(ctx, canary.Index, canary.Subkey, f.received.ProofHashes())
	})
	if !f.contract.Refundable() {
		t.Error("Refundable()=false after upheld objection")
	}
	wantState(ctx, t, f.buyer, ledger.Paid)

	// The seller can neither collect nor publish again.
	if _, err := ledger.Execute(ctx, f.seller, ledger.TransferToSeller, f.seller.TransferToSeller); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("TransferToSeller() after objection: %v, want code %v", err, errors.FailedPrecondition)
	}
	if _, err := f.seller.PublishMasterKey(ctx, f.mk); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("PublishMasterKey() after objection: %v, want code %v", err, errors.FailedPrecondition)
	}

	run(ctx, t, f.buyer, ledger.RefundToBuyer, f.buyer.RefundToBuyer)
	wantState(ctx, t, f.buyer, ledger.Created)
	wantBalance(ctx, t, "buyer", f.buyer, 1000)
	wantBalance(ctx, t, "seller", f.seller, 1000)
}

func TestObjectionWithForgedProof(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	if _, err := f.buyer.PayWithDescription(ctx, f.received.Root); err != nil {
		t.Fatalf("PayWithDescription(): %v", err)
	}
	var wrongKey fairdex.MasterKey
	if _, err := f.seller.PublishMasterKey(ctx, wrongKey); err != nil {
		t.Fatalf("PublishMasterKey(): %v", err)
	}

	canary := f.received.Canary()
	proof := f.received.ProofHashes()
	proof[0][0] ^= 1
	if _, err := f.buyer.RaiseObjection(ctx, canary.Index, canary.Subkey, proof); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("RaiseObjection(forged proof): %v, want code %v", err, errors.FailedPrecondition)
	}
	// A non-canary pair does not verify against the canary path either.
	other := f.received.Samples[1]
	if _, err := f.buyer.RaiseObjection(ctx, other.Index, other.Subkey, f.received.ProofHashes()); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("RaiseObjection(non-canary): %v, want code %v", err, errors.FailedPrecondition)
	}
	wantState(ctx, t, f.buyer, ledger.Published)
}

func TestOrderingAndRoles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	for _, tc := range []struct {
		desc string
		call func() (common.Hash, error)
	}{
		{desc: "publish-before-payment", call: func() (common.Hash, error) { return f.seller.PublishMasterKey(ctx, f.mk) }},
		{desc: "transfer-before-payment", call: func() (common.Hash, error) { return f.seller.TransferToSeller(ctx) }},
		{desc: "refund-before-payment", call: func() (common.Hash, error) { return f.buyer.RefundToBuyer(ctx) }},
		{desc: "seller-pays", call: func() (common.Hash, error) { return f.seller.PayWithDescription(ctx, f.sent.Root) }},
	} {
		if _, err := tc.call(); !errors.Is(err, errors.FailedPrecondition) {
			t.Errorf("%s: %v, want code %v", tc.desc, err, errors.FailedPrecondition)
		}
	}
	wantState(ctx, t, f.buyer, ledger.Created)
}

func TestInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	c := NewContract(big.NewInt(5000), balance)
	if _, err := c.Buyer().PayWithDescription(ctx, fairdex.Hash{1}); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("PayWithDescription(): %v, want code %v", err, errors.FailedPrecondition)
	}
}

func TestUnavailable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	f.contract.SetUnavailable(true)
	if _, err := f.buyer.State(ctx); !errors.Is(err, errors.Unavailable) {
		t.Errorf("State(): %v, want code %v", err, errors.Unavailable)
	}
	if _, err := f.buyer.Balance(ctx); !errors.Is(err, errors.Unavailable) {
		t.Errorf("Balance(): %v, want code %v", err, errors.Unavailable)
	}
	if _, err := f.buyer.PayWithDescription(ctx, f.received.Root); !errors.Is(err, errors.Unavailable) {
		t.Errorf("PayWithDescription(): %v, want code %v", err, errors.Unavailable)
	}
	// Execute sees an Inactive contract.
	if _, err := ledger.Execute(ctx, f.buyer, ledger.PayWithDescription, func(ctx context.Context) (common.Hash, error) {
		return f.buyer.PayWithDescription(ctx, f.received.Root)
	}); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("Execute(): %v, want code %v", err, errors.FailedPrecondition)
	}

	f.contract.SetUnavailable(false)
	wantState(ctx, t, f.buyer, ledger.Created)
}

func TestTransactionHashesDiffer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	h1, err := f.buyer.PayWithDescription(ctx, f.received.Root)
	if err != nil {
		t.Fatalf("PayWithDescription(): %v", err)
	}
	h2, err := f.seller.PublishMasterKey(ctx, f.mk)
	if err != nil {
		t.Fatalf("PublishMasterKey(): %v", err)
	}
	if h1 == h2 || h1 == (common.Hash{}) {
		t.Errorf("transaction hashes %v and %v, want distinct non-zero", h1.Hex(), h2.Hex())
	}
}
