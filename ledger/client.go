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
	_ "embed"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/config"
	"github.com/fairdex/fairdex/errors"
	"k8s.io/klog/v2"
)

//go:embed fairdex.abi.json
var contractABI []byte

// DefaultGasLimit is the gas limit of every transaction unless configured
// otherwise.
const DefaultGasLimit = 3000000

// Backend is the subset of an Ethereum RPC client the contract client
// needs. *ethclient.Client implements it.
type Backend interface {
	ethereum.ContractCaller
	ethereum.TransactionSender
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Options configures a Client.
type Options struct {
	Contract common.Address
	// Account must be the address of Key.
	Account common.Address
	Key     *ecdsa.PrivateKey
	// GasPrice and Payment are in wei. Payment is the value sent with
	// PayWithDescription.
	GasPrice *big.Int
	GasLimit uint64
	Payment  *big.Int
	// Timeout bounds every RPC; zero means no bound beyond the caller's
	// context.
	Timeout time.Duration
}

// OptionsFromConfig builds client options from a validated configuration.
func OptionsFromConfig(cfg *config.Config, timeout time.Duration) (Options, error) {
	key, err := cfg.Key()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Contract: cfg.ContractAddress(),
		Account:  cfg.AccountAddress(),
		Key:      key,
		GasPrice: cfg.GasPriceWei(),
		GasLimit: cfg.GasLimit,
		Payment:  cfg.PaymentWei(),
		Timeout:  timeout,
	}, nil
}

// Client talks to a deployed exchange contract on behalf of one account.
type Client struct {
	backend Backend
	abi     abi.ABI
	signer  types.Signer
	opts    Options
	close   func()
}

var _ Contract = (*Client)(nil)

// Dial connects to the node at rpcURL and returns a client for the
// contract described by opts.
func Dial(ctx context.Context, rpcURL string, opts Options) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, errors.Errorf(errors.Unavailable, "dialing %s: %w", rpcURL, err)
	}
	c, err := NewClient(ctx, ec, opts)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.close = ec.Close
	return c, nil
}

// NewClient returns a client that uses backend. It reads the chain ID so
// that transactions are replay protected.
func NewClient(ctx context.Context, backend Backend, opts Options) (*Client, error) {
	if opts.Key == nil {
		return nil, errors.New(errors.InvalidArgument, "no private key")
	}
	if got := crypto.PubkeyToAddress(opts.Key.PublicKey); got != opts.Account {
		return nil, errors.Errorf(errors.InvalidArgument, "private key belongs to %v, not account %v", got.Hex(), opts.Account.Hex())
	}
	if opts.GasPrice == nil || opts.GasPrice.Sign() <= 0 {
		return nil, errors.New(errors.InvalidArgument, "gas price must be positive")
	}
	if opts.GasLimit == 0 {
		opts.GasLimit = DefaultGasLimit
	}
	if opts.Payment == nil {
		opts.Payment = new(big.Int)
	}
	parsed, err := abi.JSON(bytes.NewReader(contractABI))
	if err != nil {
		return nil, errors.Errorf(errors.Internal, "parsing contract ABI: %w", err)
	}

	c := &Client{backend: backend, abi: parsed, opts: opts, close: func() {}}
	rctx, cancel := c.rpcContext(ctx)
	defer cancel()
	chainID, err := backend.ChainID(rctx)
	if err != nil {
		return nil, errors.Errorf(errors.Unavailable, "reading chain ID: %w", err)
	}
	c.signer = types.LatestSignerForChainID(chainID)
	klog.V(1).Infof("Contract client for %v on chain %v as %v", opts.Contract.Hex(), chainID, opts.Account.Hex())
	return c, nil
}

// Close releases the connection opened by Dial.
func (c *Client) Close() {
	c.close()
}

func (c *Client) rpcContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.opts.Timeout)
}

// call runs a view method and returns its single output.
func (c *Client) call(ctx context.Context, method string) (interface{}, error) {
	data, err := c.abi.Pack(method)
	if err != nil {
		return nil, errors.Errorf(errors.Internal, "packing %s: %w", method, err)
	}
	ctx, cancel := c.rpcContext(ctx)
	defer cancel()
	out, err := c.backend.CallContract(ctx, ethereum.CallMsg{From: c.opts.Account, To: &c.opts.Contract, Data: data}, nil)
	if err != nil {
		return nil, errors.Errorf(errors.Unavailable, "calling %s: %w", method, err)
	}
	vals, err := c.abi.Unpack(method, out)
	if err != nil {
		// A missing contract answers with no data at all.
		return nil, errors.Errorf(errors.Unavailable, "decoding %s: %w", method, err)
	}
	if len(vals) != 1 {
		return nil, errors.Errorf(errors.Internal, "%s returned %d values", method, len(vals))
	}
	return vals[0], nil
}

// State implements Contract.
func (c *Client) State(ctx context.Context) (State, error) {
	v, err := c.call(ctx, "state")
	if err != nil {
		return Inactive, err
	}
	raw, ok := v.(uint8)
	if !ok {
		return Inactive, errors.Errorf(errors.Internal, "state returned %T", v)
	}
	return StateFromContract(raw)
}

// MasterKey implements Contract.
func (c *Client) MasterKey(ctx context.Context) (fairdex.MasterKey, error) {
	s, err := c.State(ctx)
	if err != nil {
		return fairdex.MasterKey{}, err
	}
	if s != Published {
		return fairdex.MasterKey{}, errors.Errorf(errors.FailedPrecondition, "master key is not published, contract is %v", s)
	}
	v, err := c.call(ctx, "masterKey")
	if err != nil {
		return fairdex.MasterKey{}, err
	}
	raw, ok := v.([32]byte)
	if !ok {
		return fairdex.MasterKey{}, errors.Errorf(errors.Internal, "masterKey returned %T", v)
	}
	return fairdex.MasterKey(raw), nil
}

// Balance implements Contract.
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.rpcContext(ctx)
	defer cancel()
	b, err := c.backend.BalanceAt(ctx, c.opts.Account, nil)
	if err != nil {
		return nil, errors.Errorf(errors.Unavailable, "reading balance of %v: %w", c.opts.Account.Hex(), err)
	}
	return b, nil
}

// PayWithDescription implements Contract. The configured payment is sent
// with the call.
func (c *Client) PayWithDescription(ctx context.Context, root fairdex.Hash) (common.Hash, error) {
	return c.transact(ctx, c.opts.Payment, "PayWithDescription", [32]byte(root))
}

// RaiseObjection implements Contract.
func (c *Client) RaiseObjection(ctx context.Context, index0 uint64, subkey0 fairdex.Subkey, proof [][32]byte) (common.Hash, error) {
	return c.transact(ctx, nil, "RaiseObjection", new(big.Int).SetUint64(index0), [32]byte(subkey0), proof)
}

// RefundToBuyer implements Contract.
func (c *Client) RefundToBuyer(ctx context.Context) (common.Hash, error) {
	return c.transact(ctx, nil, "RefundToBuyer")
}

// PublishMasterKey implements Contract.
func (c *Client) PublishMasterKey(ctx context.Context, key fairdex.MasterKey) (common.Hash, error) {
	return c.transact(ctx, nil, "PublishMasterKey", [32]byte(key))
}

// TransferToSeller implements Contract.
func (c *Client) TransferToSeller(ctx context.Context) (common.Hash, error) {
	return c.transact(ctx, nil, "TransferToSeller")
}

func (c *Client) transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (common.Hash, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return common.Hash{}, errors.Errorf(errors.Internal, "packing %s: %w", method, err)
	}
	if value == nil {
		value = new(big.Int)
	}
	ctx, cancel := c.rpcContext(ctx)
	defer cancel()

	nonce, err := c.backend.PendingNonceAt(ctx, c.opts.Account)
	if err != nil {
		return common.Hash{}, errors.Errorf(errors.Unavailable, "reading nonce of %v: %w", c.opts.Account.Hex(), err)
	}
	to := c.opts.Contract
	tx, err := types.SignTx(types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: c.opts.GasPrice,
		Gas:      c.opts.GasLimit,
		To:       &to,
		Value:    value,
		Data:     data,
	}), c.signer, c.opts.Key)
	if err != nil {
		return common.Hash{}, errors.Errorf(errors.Internal, "signing %s: %w", method, err)
	}
	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		return common.Hash{}, errors.Errorf(errors.Unavailable, "sending %s: %w", method, err)
	}
	klog.V(1).Infof("Sent %s with nonce %d in %v", method, nonce, tx.Hash().Hex())
	return tx.Hash(), nil
}
