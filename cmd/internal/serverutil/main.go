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

// Package serverutil holds the process scaffolding shared by the fairdex
// binaries.
package serverutil

import (
	"context"
	"net/http"
	"time"

	"github.com/fairdex/fairdex/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Main encapsulates the data and logic to run a fairdex binary.
type Main struct {
	// MetricsEndpoint is optional, if empty no HTTP server is bound.
	MetricsEndpoint string
	// Gatherer is served on /metrics. nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// IsHealthy will be called whenever "/healthz" is called on the mux.
	// A nil return value from this function will result in a 200-OK response
	// on the /healthz endpoint.
	IsHealthy func(context.Context) error
	// HealthyDeadline is the maximum duration to wait wait for a successful
	// IsHealthy() call.
	HealthyDeadline time.Duration

	// Work is the body of the binary. Its context is canceled on SIGINT or
	// SIGTERM, and Run returns once it does.
	Work func(context.Context) error
}

func (m *Main) healthz(rw http.ResponseWriter, req *http.Request) {
	if m.IsHealthy != nil {
		ctx, cancel := context.WithTimeout(req.Context(), m.HealthyDeadline)
		defer cancel()
		if err := m.IsHealthy(ctx); err != nil {
			rw.WriteHeader(http.StatusServiceUnavailable)
			rw.Write([]byte(err.Error()))
			return
		}
	}
	rw.Write([]byte("ok"))
}

// Handler returns the mux served on MetricsEndpoint.
func (m *Main) Handler() http.Handler {
	if m.HealthyDeadline == 0 {
		m.HealthyDeadline = 5 * time.Second
	}
	g := m.Gatherer
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", m.healthz)
	return mux
}

// Run runs Work alongside the metrics server. Blocks until Work returns or
// a signal arrives, and returns the first error of either.
func (m *Main) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return util.AwaitSignal(ctx, cancel) })

	if endpoint := m.MetricsEndpoint; endpoint != "" {
		srv := &http.Server{Addr: endpoint, Handler: m.Handler()}
		g.Go(func() error {
			klog.Infof("HTTP server starting on %v", endpoint)
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				klog.Errorf("HTTP server stopped: %v", err)
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		return m.Work(ctx)
	})

	err := g.Wait()
	klog.Infof("Stopping, about to exit")
	klog.Flush()
	return err
}
