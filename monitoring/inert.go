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

package monitoring

import (
	"fmt"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// InertMetricFactory creates in-memory metrics that are never exported. It
// is used by tests and by binaries started without a metrics endpoint.
type InertMetricFactory struct{}

// NewCounter creates a new inert Counter.
func (InertMetricFactory) NewCounter(name, help string, labelNames ...string) Counter {
	return &InertCounter{labelCount: len(labelNames), vals: make(map[string]float64)}
}

// NewGauge creates a new inert Gauge.
func (InertMetricFactory) NewGauge(name, help string, labelNames ...string) Gauge {
	return &InertGauge{labelCount: len(labelNames), vals: make(map[string]float64)}
}

// NewHistogram creates a new inert Histogram.
func (InertMetricFactory) NewHistogram(name, help string, labelNames ...string) Histogram {
	return &InertHistogram{
		labelCount: len(labelNames),
		counts:     make(map[string]uint64),
		sums:       make(map[string]float64),
	}
}

// NewHistogramWithBuckets creates a new inert Histogram. The buckets are
// not used.
func (f InertMetricFactory) NewHistogramWithBuckets(name, help string, _ []float64, labelNames ...string) Histogram {
	return f.NewHistogram(name, help, labelNames...)
}

// InertCounter is an in-memory Counter.
type InertCounter struct {
	labelCount int
	mu         sync.Mutex
	vals       map[string]float64
}

// Inc adds 1 to the value.
func (m *InertCounter) Inc(labelVals ...string) {
	m.Add(1.0, labelVals...)
}

// Add adds the given amount to the value.
func (m *InertCounter) Add(val float64, labelVals ...string) {
	key, ok := labelKey(labelVals, m.labelCount)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] += val
}

// Value returns the current value.
func (m *InertCounter) Value(labelVals ...string) float64 {
	key, ok := labelKey(labelVals, m.labelCount)
	if !ok {
		return 0.0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vals[key]
}

// InertGauge is an in-memory Gauge.
type InertGauge struct {
	labelCount int
	mu         sync.Mutex
	vals       map[string]float64
}

// Set sets the value.
func (m *InertGauge) Set(val float64, labelVals ...string) {
	key, ok := labelKey(labelVals, m.labelCount)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = val
}

// Value returns the current value.
func (m *InertGauge) Value(labelVals ...string) float64 {
	key, ok := labelKey(labelVals, m.labelCount)
	if !ok {
		return 0.0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vals[key]
}

// InertHistogram is an in-memory Histogram that keeps counts and sums only.
type InertHistogram struct {
	labelCount int
	mu         sync.Mutex
	counts     map[string]uint64
	sums       map[string]float64
}

// Observe adds a single observation to the distribution.
func (m *InertHistogram) Observe(val float64, labelVals ...string) {
	key, ok := labelKey(labelVals, m.labelCount)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	m.sums[key] += val
}

// Info returns count, sum for the distribution.
func (m *InertHistogram) Info(labelVals ...string) (uint64, float64) {
	key, ok := labelKey(labelVals, m.labelCount)
	if !ok {
		return 0, 0.0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[key], m.sums[key]
}

// labelKey joins label values into a map key, logging and returning false
// if the number of values does not match the metric definition.
func labelKey(labelVals []string, count int) (string, bool) {
	if len(labelVals) != count {
		klog.Error(fmt.Sprintf("invalid label count %d; want %d", len(labelVals), count))
		return "", false
	}
	return strings.Join(labelVals, "|"), true
}
