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
	"sync"

	"github.com/fairdex/fairdex/monitoring"
)

const (
	resultSent    = "sent"
	resultRefused = "refused"
	resultFailed  = "failed"
)

var (
	metricsOnce sync.Once
	operations  monitoring.Counter
	stateGauge  monitoring.Gauge
)

// InitMetrics creates the ledger metrics with mf. Only the first call has
// any effect.
func InitMetrics(mf monitoring.MetricFactory) {
	metricsOnce.Do(func() {
		if mf == nil {
			mf = monitoring.InertMetricFactory{}
		}
		operations = mf.NewCounter("ledger_operations", "Number of ledger operations by result", monitoring.OperationLabel, "result")
		stateGauge = mf.NewGauge("contract_state", "Last observed contract state, 0 when unreachable")
	})
}
