/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package hlc

import (
	"fmt"

	"github.com/Knetic/govaluate"
	"github.com/eclesh/welford"

	"github.com/SergioCKS/k-crdt/clock"
)

// DriftMonitorHelp documents the variables and functions available to a
// DriftMonitor's alert formula.
const DriftMonitorHelp = `When composing a drift alert formula, here is what you can use:
supported variables:
  drift_ms   - the most recent observed drift sample, in milliseconds
  mean_ms    - running mean of observed drift, in milliseconds
  stddev_ms  - running standard deviation of observed drift, in milliseconds
  max_ms     - clock.MaxOffsetMillis, the hard drift bound
evaluation is done with govaluate, see https://github.com/Knetic/govaluate/blob/master/MANUAL.md`

// DefaultAlertFormula fires when a single sample is already more than
// three running standard deviations away from the mean, and already beyond
// half the hard bound in either direction — an early warning before
// UpdateWithTimestamp itself would start rejecting updates. It uses only
// the variables listed in DriftMonitorHelp.
const DefaultAlertFormula = "(drift_ms - mean_ms > 3 * stddev_ms || mean_ms - drift_ms > 3 * stddev_ms) && (drift_ms > max_ms / 2 || drift_ms < -max_ms / 2)"

// DriftMonitor tracks the streaming mean/stddev of HLC-vs-wallclock drift
// observed across calls to UpdateWithTimestamp, and evaluates a
// host-supplied alert expression against it. It is a pure observability
// side-channel: it never influences UpdateWithTimestamp's accept/reject
// decision, which is governed solely by clock.MaxOffsetSeconds.
type DriftMonitor struct {
	stats  *welford.Stats
	expr   *govaluate.EvaluableExpression
	lastMs float64
}

// NewDriftMonitor parses formula (use DefaultAlertFormula if the host has
// no preference) and returns a ready-to-use monitor.
func NewDriftMonitor(formula string) (*DriftMonitor, error) {
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return nil, fmt.Errorf("hlc: invalid drift alert formula %q: %w", formula, err)
	}
	return &DriftMonitor{
		stats: welford.New(),
		expr:  expr,
	}, nil
}

// Observe records a drift sample (last_time.Seconds() - local.Seconds(),
// in whole seconds, converted to ms for formula readability) and reports
// whether the alert formula fires.
func (m *DriftMonitor) Observe(driftSeconds int64) (bool, error) {
	driftMs := float64(driftSeconds) * 1000
	m.stats.Add(driftMs)
	m.lastMs = driftMs

	result, err := m.expr.Evaluate(map[string]any{
		"drift_ms":  driftMs,
		"mean_ms":   m.stats.Mean(),
		"stddev_ms": m.stats.Stddev(),
		"max_ms":    float64(clock.MaxOffsetMillis),
	})
	if err != nil {
		return false, fmt.Errorf("hlc: drift alert formula evaluation failed: %w", err)
	}
	fired, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("hlc: drift alert formula must evaluate to a boolean, got %T", result)
	}
	return fired, nil
}

// Mean returns the running mean of observed drift, in milliseconds.
func (m *DriftMonitor) Mean() float64 { return m.stats.Mean() }

// Stddev returns the running standard deviation of observed drift, in
// milliseconds.
func (m *DriftMonitor) Stddev() float64 { return m.stats.Stddev() }

// Last returns the most recently observed drift sample, in milliseconds.
func (m *DriftMonitor) Last() float64 { return m.lastMs }
