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

package exchange

import (
	"sync"

	"github.com/fairdex/fairdex/monitoring"
)

// Values of the side label.
const (
	SenderSide   = "sender"
	ReceiverSide = "receiver"
)

var (
	metricsOnce  sync.Once
	commitments  monitoring.Counter
	disputes     monitoring.Counter
	buildLatency monitoring.Histogram
)

// InitMetrics creates the exchange metrics with mf. Only the first call has
// any effect; commitments built before any call get inert metrics.
func InitMetrics(mf monitoring.MetricFactory) {
	metricsOnce.Do(func() {
		if mf == nil {
			mf = monitoring.InertMetricFactory{}
		}
		commitments = mf.NewCounter("commitments", "Number of commitments built or opened", monitoring.SideLabel)
		disputes = mf.NewCounter("dispute_checks", "Number of dispute checks by outcome", monitoring.OutcomeLabel)
		buildLatency = mf.NewHistogramWithBuckets("commitment_build_seconds", "Time spent building a commitment", monitoring.HashingBuckets(), monitoring.SideLabel)
	})
}
