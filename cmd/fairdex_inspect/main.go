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

// The fairdex_inspect binary opens an offchain payload and prints the
// description and canary proof the receiver would send to the ledger.
// Given the published master key it also prints the dispute verdict.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fairdex/fairdex"
	"github.com/fairdex/fairdex/cmd"
	"github.com/fairdex/fairdex/config"
	"github.com/fairdex/fairdex/exchange"
	"github.com/fairdex/fairdex/offchain"
	"k8s.io/klog/v2"
)

var (
	offchainFile = flag.String("offchain_file", config.DefaultOffchainFile, "Offchain payload to inspect")
	depth        = flag.Uint("description_depth", 0, "Depth of the commitment tree, the payload holds 2^depth subkeys")
	masterKey    = flag.String("master_key", "", "If set, check the canary against this published master key")
	configFile   = flag.String("config", "", "Config file containing flags, file contents can be overridden by command line flags")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	if *configFile != "" {
		if err := cmd.ParseFlagFile(*configFile); err != nil {
			klog.Exitf("Failed to load flags from config file %q: %s", *configFile, err)
		}
	}

	if err := run(os.Stdout, *offchainFile, *depth, *masterKey); err != nil {
		klog.Exitf("fairdex_inspect: %v", err)
	}
}

func run(out io.Writer, path string, depth uint, published string) error {
	set, err := offchain.ReadFile(path, depth)
	if err != nil {
		return err
	}
	c, err := exchange.Open(set, depth)
	if err != nil {
		return err
	}

	canary := c.Canary()
	fmt.Fprintf(out, "Description: %s\n", c.Root.Hex())
	fmt.Fprintf(out, "Canary: %s %d\n", canary.Subkey.Hex(), canary.Index)
	for i, node := range c.Proof {
		fmt.Fprintf(out, "Proof[%d]: %s\n", i, hexutil.Encode(node))
	}

	if published != "" {
		w, err := fairdex.ParseWord(published)
		if err != nil {
			return err
		}
		v := c.Dispute(fairdex.MasterKey(w))
		fmt.Fprintf(out, "Verdict: %s\n", v.Outcome())
	}
	return nil
}
