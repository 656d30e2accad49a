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

package ledger

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/errors"
	"github.com/google/go-cmp/cmp"
)

const testKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

var testContract = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")

// fakeBackend answers contract calls from fields and records transactions.
type fakeBackend struct {
	abi       abi.ABI
	chainID   *big.Int
	nonce     uint64
	balance   *big.Int
	state     uint8
	masterKey [32]byte
	err       error
	empty     bool
	sent      []*types.Transaction
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	parsed, err := abi.JSON(bytes.NewReader(contractABI))
	if err != nil {
		t.Fatalf("abi.JSON(): %v", err)
	}
	return &fakeBackend{abi: parsed, chainID: big.NewInt(3), nonce: 7, balance: big.NewInt(12345)}
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return f.chainID, f.err
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	return f.nonce, f.err
}

func (f *fakeBackend) BalanceAt(context.Context, common.Address, *big.Int) (*big.Int, error) {
	return f.balance, f.err
}

func (f *fakeBackend) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return nil, nil
	}
	method, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	switch method.Name {
	case "state":
		return method.Outputs.Pack(f.state)
	case "masterKey":
		return method.Outputs.Pack(f.masterKey)
	}
	return nil, fmt.Errorf("unexpected call to %s", method.Name)
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, tx)
	return nil
}

func testKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.HexToECDSA(testKeyHex)
	if err != nil {
		t.Fatalf("HexToECDSA(): %v", err)
	}
	return key
}

func testOptions(t *testing.T) Options {
	key := testKey(t)
	return Options{
		Contract: testContract,
		Account:  crypto.PubkeyToAddress(key.PublicKey),
		Key:      key,
		GasPrice: big.NewInt(20000000000),
		Payment:  big.NewInt(100000000000000000),
		Timeout:  time.Minute,
	}
}

func newTestClient(t *testing.T) (*Client, *fakeBackend) {
	t.Helper()
	b := newFakeBackend(t)
	c, err := NewClient(context.Background(), b, testOptions(t))
	if err != nil {
		t.Fatalf("NewClient(): %v", err)
	}
	return c, b
}

func TestNewClientErrors(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		desc   string
		modify func(*Options, *fakeBackend)
		code   errors.Code
	}{
		{desc: "no-key", modify: func(o *Options, _ *fakeBackend) { o.Key = nil }, code: errors.InvalidArgument},
		{desc: "wrong-account", modify: func(o *Options, _ *fakeBackend) { o.Account = testContract }, code: errors.InvalidArgument},
		{desc: "no-gas-price", modify: func(o *Options, _ *fakeBackend) { o.GasPrice = nil }, code: errors.InvalidArgument},
		{desc: "zero-gas-price", modify: func(o *Options, _ *fakeBackend) { o.GasPrice = new(big.Int) }, code: errors.InvalidArgument},
		{desc: "unreachable", modify: func(_ *Options, b *fakeBackend) { b.err = fmt.Errorf("connection refused") }, code: errors.Unavailable},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			opts := testOptions(t)
			b := newFakeBackend(t)
			tc.modify(&opts, b)
			c, err := NewClient(ctx, b, opts)
			if got := errors.ErrorCode(err); got != tc.code {
				t.Errorf("NewClient(): %v, want code %v", err, tc.code)
			}
			if c != nil {
				t.Error("NewClient() returned a client on error")
			}
		})
	}
}

func TestClientState(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)
	for raw, want := range map[uint8]State{0: Created, 1: Paid, 2: Published} {
		b.state = raw
		got, err := c.State(ctx)
		if err != nil || got != want {
			t.Errorf("State() with raw %d = (%v, %v), want (%v, nil)", raw, got, err, want)
		}
	}

	b.err = fmt.Errorf("connection reset")
	if _, err := c.State(ctx); !errors.Is(err, errors.Unavailable) {
		t.Errorf("State() with failing backend: %v, want code %v", err, errors.Unavailable)
	}
	b.err = nil
	b.empty = true
	if _, err := c.State(ctx); !errors.Is(err, errors.Unavailable) {
		t.Errorf("State() without contract code: %v, want code %v", err, errors.Unavailable)
	}
}

func TestClientMasterKey(t *testing.T) {
	ctx := context.Background()
	c, b := newTestClient(t)
	b.masterKey = [32]byte{1, 2, 3}

	b.state = 1
	if _, err := c.MasterKey(ctx); !errors.Is(err, errors.FailedPrecondition) {
		t.Errorf("MasterKey() while Paid: %v, want code %v", err, errors.FailedPrecondition)
	}
	b.state = 2
	got, err := c.MasterKey(ctx)
	if err != nil {
		t.Fatalf("MasterKey(): %v", err)
	}
	if want := fairdex.MasterKey(b.masterKey); got != want {
		t.Errorf("MasterKey()=%v, want %v", got.Hex(), want.Hex())
	}
}

func TestClientBalance(t *testing.T) {
	c, b := newTestClient(t)
	got, err := c.Balance(context.Background())
	if err != nil {
		t.Fatalf("Balance(): %v", err)
	}
	if got.Cmp(b.balance) != 0 {
		t.Errorf("Balance()=%v, want %v", got, b.balance)
	}
}

func TestClientTransactions(t *testing.T) {
	ctx := context.Background()
	root := fairdex.Hash{0xaa}
	sk := fairdex.Subkey{0xbb}
	key := fairdex.MasterKey{0xcc}
	proof := [][32]byte{{0x01}, {0x02}, {0x03}}

	for _, tc := range []struct {
		method string
		send   func(*Client) (common.Hash, error)
		value  int64
		args   []interface{}
	}{
		{
			method: "PayWithDescription",
			send:   func(c *Client) (common.Hash, error) { return c.PayWithDescription(ctx, root) },
			value:  100000000000000000,
			args:   []interface{}{[32]byte(root)},
		},
		{
			method: "RaiseObjection",
			send:   func(c *Client) (common.Hash, error) { return c.RaiseObjection(ctx, 16383, sk, proof) },
			args:   []interface{}{big.NewInt(16383), [32]byte(sk), proof},
		},
		{
			method: "RefundToBuyer",
			send:   func(c *Client) (common.Hash, error) { return c.RefundToBuyer(ctx) },
			args:   []interface{}{},
		},
		{
			method: "PublishMasterKey",
			send:   func(c *Client) (common.Hash, error) { return c.PublishMasterKey(ctx, key) },
			args:   []interface{}{[32]byte(key)},
		},
		{
			method: "TransferToSeller",
			send:   func(c *Client) (common.Hash, error) { return c.TransferToSeller(ctx) },
			args:   []interface{}{},
		},
	} {
		t.Run(tc.method, func(t *testing.T) {
			c, b := newTestClient(t)
			hash, err := tc.send(c)
			if err != nil {
				t.Fatalf("%s(): %v", tc.method, err)
			}
			if len(b.sent) != 1 {
				t.Fatalf("%s() sent %d transactions, want 1", tc.method, len(b.sent))
			}
			tx := b.sent[0]
			if got := tx.Hash(); got != hash {
				t.Errorf("%s() returned %v, sent %v", tc.method, hash.Hex(), got.Hex())
			}
			if got := tx.To(); got == nil || *got != testContract {
				t.Errorf("tx.To()=%v, want %v", got, testContract)
			}
			if got := tx.Gas(); got != DefaultGasLimit {
				t.Errorf("tx.Gas()=%d, want %d", got, DefaultGasLimit)
			}
			if got, want := tx.GasPrice(), big.NewInt(20000000000); got.Cmp(want) != 0 {
				t.Errorf("tx.GasPrice()=%v, want %v", got, want)
			}
			if got := tx.Nonce(); got != b.nonce {
				t.Errorf("tx.Nonce()=%d, want %d", got, b.nonce)
			}
			if got, want := tx.Value(), big.NewInt(tc.value); got.Cmp(want) != 0 {
				t.Errorf("tx.Value()=%v, want %v", got, want)
			}
			from, err := types.Sender(types.LatestSignerForChainID(b.chainID), tx)
			if err != nil {
				t.Fatalf("types.Sender(): %v", err)
			}
			if want := crypto.PubkeyToAddress(testKey(t).PublicKey); from != want {
				t.Errorf("signed by %v, want %v", from.Hex(), want.Hex())
			}

			method, err := b.abi.MethodById(tx.Data()[:4])
			if err != nil {
				t.Fatalf("MethodById(): %v", err)
			}
			if method.Name != tc.method {
				t.Errorf("called %s, want %s", method.Name, tc.method)
			}
			args, err := method.Inputs.Unpack(tx.Data()[4:])
			if err != nil {
				t.Fatalf("Unpack(): %v", err)
			}
			if diff := cmp.Diff(tc.args, args, cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })); diff != "" {
				t.Errorf("%s arguments diff (-want +got):\n%s", tc.method, diff)
			}
		})
	}
}

func TestClientTransactionUnavailable(t *testing.T) {
	c, b := newTestClient(t)
	b.err = fmt.Errorf("broken pipe")
	if _, err := c.TransferToSeller(context.Background()); !errors.Is(err, errors.Unavailable) {
		t.Errorf("TransferToSeller(): %v, want code %v", err, errors.Unavailable)
	}
	if len(b.sent) != 0 {
		t.Errorf("sent %d transactions, want 0", len(b.sent))
	}
}
