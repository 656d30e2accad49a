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

// The fairdex_hasher binary prints the hashes the exchange contract computes,
// for checking a deployment by hand.
//
// Usage:
//
//	fairdex_hasher derive <master key> <index>
//	fairdex_hasher bind <subkey> <index>
//	fairdex_hasher combine <left> <right>
//
// Words are 32-byte hex strings, with or without a 0x prefix.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/cmd"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/errors"
	"github.com/fairdex/fairdex/merkle/keccak"
	"k8s.io/klog/v2"
)

var configFile = flag.String("config", "", "Config file containing flags, file contents can be overridden by command line flags")

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if *configFile != "" {
		if err := cmd.ParseFlagFile(*configFile); err != nil {
			klog.Exitf("Failed to load flags from config file %q: %s", *configFile, err)
		}
	}

	if err := run(flag.Args(), os.Stdout); err != nil {
		klog.Exitf("fairdex_hasher: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) != 3 {
		return errors.New(errors.InvalidArgument, "usage: fairdex_hasher derive|bind|combine <word> <index|word>")
	}
	word, err := fairdex.ParseWord(args[1])
	if err != nil {
		return err
	}

	var sum []byte
	switch args[0] {
	case "derive":
		index, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		sk := subkey.Derive(fairdex.MasterKey(word), index)
		sum = sk[:]
	case "bind":
		index, err := parseIndex(args[2])
		if err != nil {
			return err
		}
		leaf := subkey.Bind(fairdex.Subkey(word), index)
		sum = leaf[:]
	case "combine":
		right, err := fairdex.ParseWord(args[2])
		if err != nil {
			return err
		}
		sum = keccak.DefaultHasher.HashChildren(word[:], right[:])
	default:
		return errors.Errorf(errors.InvalidArgument, "unknown hash %q, want derive, bind or combine", args[0])
	}
	_, err = fmt.Fprintln(out, hexutil.Encode(sum))
	return err
}

func parseIndex(s string) (uint64, error) {
	index, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf(errors.InvalidArgument, "index %q: %v", s, err)
	}
	if index >= fairdex.UniverseSize {
		return 0, errors.Errorf(errors.InvalidArgument, "index %d outside universe of size %d", index, fairdex.UniverseSize)
	}
	return index, nil
}
