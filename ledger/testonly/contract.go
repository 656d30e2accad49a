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

// Package testonly holds an in-memory exchange contract for tests.
package testonly

import (
	"context"
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/errors"
	"github.com/fairdex/fairdex/ledger"
	"github.com/fairdex/fairdex/merkle"
	"github.com/fairdex/fairdex/merkle/keccak"
)

// Contract is an in-memory exchange contract. It follows the same state
// machine as the deployed contract and verifies objections with the same
// algorithm. Buyer and Seller return the views each party uses.
//
// A successful objection moves the contract from Published back to Paid and
// makes it refundable; RefundToBuyer then returns the escrow and resets the
// contract to Created.
type Contract struct {
	mu          sync.Mutex
	state       ledger.State
	price       *big.Int
	escrow      *big.Int
	balances    map[party]*big.Int
	description fairdex.Hash
	masterKey   fairdex.MasterKey
	refundable  bool
	txCount     uint64
	unavailable bool
}

type party int

const (
	buyer party = iota
	seller
)

// NewContract returns a contract in state Created. Both parties start with
// the given balance in wei, and the buyer pays price with the description.
func NewContract(price, balance *big.Int) *Contract {
	return &Contract{
		state:  ledger.Created,
		price:  new(big.Int).Set(price),
		escrow: new(big.Int),
		balances: map[party]*big.Int{
			buyer:  new(big.Int).Set(balance),
			seller: new(big.Int).Set(balance),
		},
	}
}

// Buyer returns the receiver's view of the contract.
func (c *Contract) Buyer() ledger.Contract { return &view{c: c, p: buyer} }

// Seller returns the sender's view of the contract.
func (c *Contract) Seller() ledger.Contract { return &view{c: c, p: seller} }

// SetUnavailable makes every call fail as if the ledger were unreachable.
func (c *Contract) SetUnavailable(down bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unavailable = down
}

// Description returns the stored description.
func (c *Contract) Description() fairdex.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.description
}

// Refundable reports whether an objection has succeeded and not yet been
// refunded.
func (c *Contract) Refundable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refundable
}

// view is one party's handle on the contract.
type view struct {
	c *Contract
	p party
}

// do runs fn under the lock if the contract is reachable and in state want.
func (v *view) do(method string, want ledger.State, fn func() error) (common.Hash, error) {
	c := v.c
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unavailable {
		return common.Hash{}, errors.Errorf(errors.Unavailable, "%s: ledger unreachable", method)
	}
	if c.state != want {
		return common.Hash{}, errors.Errorf(errors.FailedPrecondition, "%s reverted: state is %v, want %v", method, c.state, want)
	}
	if err := fn(); err != nil {
		return common.Hash{}, err
	}
	c.txCount++
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], c.txCount)
	return common.BytesToHash(keccak.Sum([]byte(method), n[:])), nil
}

func (v *view) State(context.Context) (ledger.State, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if v.c.unavailable {
		return ledger.Inactive, errors.New(errors.Unavailable, "state: ledger unreachable")
	}
	return v.c.state, nil
}

func (v *view) MasterKey(context.Context) (fairdex.MasterKey, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if v.c.unavailable {
		return fairdex.MasterKey{}, errors.New(errors.Unavailable, "masterKey: ledger unreachable")
	}
	if v.c.state != ledger.Published {
		return fairdex.MasterKey{}, errors.Errorf(errors.FailedPrecondition, "master key is not published, contract is %v", v.c.state)
	}
	return v.c.masterKey, nil
}

func (v *view) Balance(context.Context) (*big.Int, error) {
	v.c.mu.Lock()
	defer v.c.mu.Unlock()
	if v.c.unavailable {
		return nil, errors.New(errors.Unavailable, "balance: ledger unreachable")
	}
	return new(big.Int).Set(v.c.balances[v.p]), nil
}

func (v *view) PayWithDescription(_ context.Context, root fairdex.Hash) (common.Hash, error) {
	return v.do("PayWithDescription", ledger.Created, func() error {
		c := v.c
		if v.p != buyer {
			return errors.New(errors.FailedPrecondition, "PayWithDescription reverted: only the buyer pays")
		}
		if c.balances[buyer].Cmp(c.price) < 0 {
			return errors.New(errors.FailedPrecondition, "PayWithDescription reverted: insufficient funds")
		}
		c.balances[buyer].Sub(c.balances[buyer], c.price)
		c.escrow.Add(c.escrow, c.price)
		c.description = root
		c.state = ledger.Paid
		return nil
	})
}

func (v *view) PublishMasterKey(_ context.Context, key fairdex.MasterKey) (common.Hash, error) {
	return v.do("PublishMasterKey", ledger.Paid, func() error {
		if v.p != seller {
			return errors.New(errors.FailedPrecondition, "PublishMasterKey reverted: only the seller publishes")
		}
		if v.c.refundable {
			return errors.New(errors.FailedPrecondition, "PublishMasterKey reverted: objection already upheld")
		}
		v.c.masterKey = key
		v.c.state = ledger.Published
		return nil
	})
}

func (v *view) RaiseObjection(_ context.Context, index0 uint64, subkey0 fairdex.Subkey, proof [][32]byte) (common.Hash, error) {
	return v.do("RaiseObjection", ledger.Published, func() error {
		c := v.c
		if v.p != buyer {
			return errors.New(errors.FailedPrecondition, "RaiseObjection reverted: only the buyer objects")
		}
		nodes := make([][]byte, len(proof))
		for i := range proof {
			nodes[i] = proof[i][:]
		}
		leaf := subkey.Bind(subkey0, index0)
		if err := merkle.VerifyCanaryProof(keccak.DefaultHasher, leaf[:], nodes, c.description[:]); err != nil {
			return errors.Errorf(errors.FailedPrecondition, "RaiseObjection reverted: %v", err)
		}
		if subkey.Derive(c.masterKey, index0) == subkey0 {
			return errors.New(errors.FailedPrecondition, "RaiseObjection reverted: published key derives the canary")
		}
		c.refundable = true
		c.state = ledger.Paid
		return nil
	})
}

func (v *view) RefundToBuyer(context.Context) (common.Hash, error) {
	return v.do("RefundToBuyer", ledger.Paid, func() error {
		c := v.c
		if !c.refundable {
			return errors.New(errors.FailedPrecondition, "RefundToBuyer reverted: no upheld objection")
		}
		v.c.payOut(buyer)
		return nil
	})
}

func (v *view) TransferToSeller(context.Context) (common.Hash, error) {
	return v.do("TransferToSeller", ledger.Published, func() error {
		v.c.payOut(seller)
		return nil
	})
}

// payOut moves the escrow to p and resets the contract for a new exchange.
func (c *Contract) payOut(p party) {
	c.balances[p].Add(c.balances[p], c.escrow)
	c.escrow = new(big.Int)
	c.refundable = false
	c.description = fairdex.Hash{}
	c.masterKey = fairdex.MasterKey{}
	c.state = ledger.Created
}
