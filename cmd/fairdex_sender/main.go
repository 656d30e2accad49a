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

// The fairdex_sender binary commits to a freshly generated master key,
// writes the sampled subkeys for the receiver and then drives the seller's
// side of the exchange contract.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"os"
	"time"

	"github.com/fairdex/fairdex/cmd"
	"github.com/fairdex/fairdex/cmd/internal/menu"
	"github.com/fairdex/fairdex/cmd/internal/serverutil"
	"github.com/fairdex/fairdex/config"
	"github.com/fairdex/fairdex/crypto/subkey"
	"github.com/fairdex/fairdex/exchange"
	"github.com/fairdex/fairdex/ledger"
	"github.com/fairdex/fairdex/monitoring/prometheus"
	"github.com/fairdex/fairdex/offchain"
	"k8s.io/klog/v2"
)

var (
	exchangeConfig  = flag.String("exchange_config", "sender.yaml", "YAML file with the ledger account and exchange settings")
	rpcTimeout      = flag.Duration("rpc_timeout", 30*time.Second, "Deadline for each ledger RPC")
	metricsEndpoint = flag.String("metrics_endpoint", "", "Endpoint for serving metrics and healthz (host:port, empty means disabled)")
	healthzTimeout  = flag.Duration("healthz_timeout", time.Second*5, "Timeout used during healthz checks")

	configFile = flag.String("config", "", "Config file containing flags, file contents can be overridden by command line flags")
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

	klog.CopyStandardLogTo("WARNING")
	klog.Info("**** Sender Starting ****")

	cfg, err := config.Load(*exchangeConfig)
	if err != nil {
		klog.Exitf("Failed to load exchange config: %v", err)
	}

	mf := prometheus.MetricFactory{Prefix: "fairdex_sender_"}
	exchange.InitMetrics(mf)
	ledger.InitMetrics(mf)

	ctx := context.Background()
	opts, err := ledger.OptionsFromConfig(cfg, *rpcTimeout)
	if err != nil {
		klog.Exitf("Invalid ledger options: %v", err)
	}
	client, err := ledger.Dial(ctx, cfg.RPCURL, opts)
	if err != nil {
		klog.Exitf("Failed to connect to ledger: %v", err)
	}
	defer client.Close()

	mk, err := subkey.NewMasterKey(rand.Reader)
	if err != nil {
		klog.Exitf("Failed to generate master key: %v", err)
	}
	sent, err := exchange.Commit(rand.Reader, mk, cfg.DescriptionDepth)
	if err != nil {
		klog.Exitf("Failed to build commitment: %v", err)
	}
	if err := offchain.WriteFile(cfg.OffchainFile, sent.Samples); err != nil {
		klog.Exitf("Failed to write offchain payload: %v", err)
	}
	klog.Infof("Wrote %d sampled subkeys for description %v to %s", len(sent.Samples), sent.Root, cfg.OffchainFile)

	m := menu.NewSender(client, mk, sent, rand.Reader)
	srv := &serverutil.Main{
		MetricsEndpoint: *metricsEndpoint,
		IsHealthy: func(ctx context.Context) error {
			_, err := client.State(ctx)
			return err
		},
		HealthyDeadline: *healthzTimeout,
		Work: func(ctx context.Context) error {
			return m.Run(ctx, os.Stdin, os.Stdout)
		},
	}
	if err := srv.Run(ctx); err != nil && err != context.Canceled {
		klog.Exitf("Sender failed: %v", err)
	}
}
