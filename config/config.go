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

// Package config loads the settings a fairdex party needs to reach the
// ledger and build or open a commitment.
package config

import (
	"crypto/ecdsa"
	"math/big"
	"net/url"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/errors"
	"gopkg.in/yaml.v2"
)

// Defaults applied by Load to unset fields.
const (
	DefaultGasLimit      = 3000000
	DefaultPaymentFinney = 100
	DefaultOffchainFile  = "offchain.txt"
)

// Config holds one party's settings.
type Config struct {
	// RPCURL is the Ethereum node endpoint, ws(s) or http(s).
	RPCURL string `yaml:"rpc_url"`
	// Account is the party's address and PrivateKey its hex encoded key.
	Account    string `yaml:"account"`
	PrivateKey string `yaml:"private_key"`
	// Contract is the address of the deployed exchange contract.
	Contract string `yaml:"contract"`

	GasPriceGwei  uint64 `yaml:"gas_price_gwei"`
	GasLimit      uint64 `yaml:"gas_limit"`
	PaymentFinney uint64 `yaml:"payment_finney"`

	// DescriptionDepth is d, the commitment covers 2^d subkeys.
	DescriptionDepth uint   `yaml:"description_depth"`
	OffchainFile     string `yaml:"offchain_file"`
}

// Load reads the YAML file at path, applies defaults and validates the
// result. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf(errors.ErrorCode(err), "%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, errors.Errorf(errors.InvalidArgument, "parsing config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults sets unset optional fields to their defaults.
func (c *Config) ApplyDefaults() {
	if c.GasLimit == 0 {
		c.GasLimit = DefaultGasLimit
	}
	if c.PaymentFinney == 0 {
		c.PaymentFinney = DefaultPaymentFinney
	}
	if c.OffchainFile == "" {
		c.OffchainFile = DefaultOffchainFile
	}
}

// Validate checks every field. All problems are InvalidArgument errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.RPCURL)
	if err != nil {
		return errors.Errorf(errors.InvalidArgument, "rpc_url: %v", err)
	}
	switch u.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return errors.Errorf(errors.InvalidArgument, "rpc_url %q: scheme must be ws, wss, http or https", c.RPCURL)
	}
	if u.Host == "" {
		return errors.Errorf(errors.InvalidArgument, "rpc_url %q has no host", c.RPCURL)
	}
	if !common.IsHexAddress(c.Account) {
		return errors.Errorf(errors.InvalidArgument, "account %q is not a hex address", c.Account)
	}
	if !common.IsHexAddress(c.Contract) {
		return errors.Errorf(errors.InvalidArgument, "contract %q is not a hex address", c.Contract)
	}
	key, err := c.Key()
	if err != nil {
		return err
	}
	if got, want := crypto.PubkeyToAddress(key.PublicKey), c.AccountAddress(); got != want {
		return errors.Errorf(errors.InvalidArgument, "private_key belongs to %v, not account %v", got.Hex(), want.Hex())
	}
	if c.GasPriceGwei == 0 {
		return errors.New(errors.InvalidArgument, "gas_price_gwei must be positive")
	}
	if _, err := fairdex.SampleSize(c.DescriptionDepth); err != nil {
		return errors.Errorf(errors.InvalidArgument, "description_depth: %v", err)
	}
	return nil
}

// Key decodes PrivateKey, with or without a 0x prefix.
func (c *Config) Key() (*ecdsa.PrivateKey, error) {
	raw, err := fairdex.ParseWord(c.PrivateKey)
	if err != nil {
		return nil, errors.Errorf(errors.InvalidArgument, "private_key: %v", err)
	}
	key, err := crypto.ToECDSA(raw[:])
	if err != nil {
		return nil, errors.Errorf(errors.InvalidArgument, "private_key: %v", err)
	}
	return key, nil
}

// AccountAddress returns Account as an address.
func (c *Config) AccountAddress() common.Address {
	return common.HexToAddress(c.Account)
}

// ContractAddress returns Contract as an address.
func (c *Config) ContractAddress() common.Address {
	return common.HexToAddress(c.Contract)
}

// GasPriceWei returns the gas price in wei.
func (c *Config) GasPriceWei() *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(c.GasPriceGwei), big.NewInt(params.GWei))
}

// PaymentWei returns the payment sent with the description, in wei.
func (c *Config) PaymentWei() *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(c.PaymentFinney), big.NewInt(params.Ether/1000))
}
