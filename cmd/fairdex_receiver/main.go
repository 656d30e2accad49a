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

// The fairdex_receiver binary opens the sender's commitment from the
// offchain payload and drives the buyer's side of the exchange contract.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/fairdex/fairdex/cmd"
	"github.com/fairdex/fairdex/cmd/internal/menu"
	"github.com/fairdex/fairdex/cmd/internal/serverutil"
	"github.com/fairdex/fairdex/config"
	"github.com/fairdex/fairdex/exchange"
	"github.com/fairdex/fairdex/ledger"
	"github.com/fairdex/fairdex/monitoring/prometheus"
	"github.com/fairdex/fairdex/offchain"
	"k8s.io/klog/v2"
)

var (
	exchangeConfig  = flag.String("exchange_config", "receiver.yaml", "YAML file with the ledger account and exchange settings")
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
	klog.Info("**** Receiver Starting ****")

	cfg, err := config.Load(*exchangeConfig)
	if err != nil {
		klog.Exitf("Failed to load exchange config: %v", err)
	}

	mf := prometheus.MetricFactory{Prefix: "fairdex_receiver_"}
	exchange.InitMetrics(mf)
	ledger.InitMetrics(mf)

	set, err := offchain.ReadFile(cfg.OffchainFile, cfg.DescriptionDepth)
	if err != nil {
		klog.Exitf("Failed to read offchain payload: %v", err)
	}
	received, err := exchange.Open(set, cfg.DescriptionDepth)
	if err != nil {
		klog.Exitf("Failed to open commitment: %v", err)
	}
	klog.Infof("Opened description %v with canary %d", received.Root, received.Canary().Index)

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

	m := menu.NewReceiver(client, received)
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
		klog.Exitf("Receiver failed: %v", err)
	}
}
