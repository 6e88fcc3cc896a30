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

// Package stats exposes the CRDT core's runtime health — HLC drift,
// register merge activity, counter totals — as Prometheus metrics, plus
// host process stats, for a long-running crdtctl daemon to scrape
// (adapted from ptp/sptp/stats/prom_exporter.go and sptp/client/sysstats.go).
package stats

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter holds the Prometheus collectors this module publishes. The host
// feeds it through in-process calls to its Observe/Inc/Set methods rather
// than scraping a separate daemon's counters over HTTP; the hlc, register
// and counter packages do not call it themselves.
type Exporter struct {
	registry *prometheus.Registry

	hlcDriftMs     prometheus.Gauge
	hlcOverflows   prometheus.Counter
	registerMerges prometheus.Counter
	gcounterTotal  *prometheus.GaugeVec
	pncounterTotal *prometheus.GaugeVec
}

// NewExporter creates an Exporter with a fresh registry and registers all
// of its collectors.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		hlcDriftMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kcrdt_hlc_drift_ms",
			Help: "Most recent HLC-vs-wallclock drift observed by UpdateWithTimestamp, in milliseconds.",
		}),
		hlcOverflows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kcrdt_hlc_counter_overflows_total",
			Help: "Count of HLC logical-counter overflow errors.",
		}),
		registerMerges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kcrdt_register_merges_total",
			Help: "Count of LWWRegister.Merge calls that adopted the peer's value.",
		}),
		gcounterTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kcrdt_gcounter_value",
			Help: "Current GCounter.Value() for a named counter instance.",
		}, []string{"name"}),
		pncounterTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "kcrdt_pncounter_value",
			Help: "Current PNCounter.Value() for a named counter instance.",
		}, []string{"name"}),
	}
	e.registry.MustRegister(e.hlcDriftMs, e.hlcOverflows, e.registerMerges, e.gcounterTotal, e.pncounterTotal)
	return e
}

// ObserveHLCDrift records the latest drift sample, in milliseconds.
func (e *Exporter) ObserveHLCDrift(driftMs float64) { e.hlcDriftMs.Set(driftMs) }

// IncHLCOverflow records a logical-counter overflow.
func (e *Exporter) IncHLCOverflow() { e.hlcOverflows.Inc() }

// IncRegisterMerge records a register merge that adopted the peer's value.
func (e *Exporter) IncRegisterMerge() { e.registerMerges.Inc() }

// SetGCounterValue publishes a named GCounter's current total.
func (e *Exporter) SetGCounterValue(name string, value uint64) {
	e.gcounterTotal.WithLabelValues(name).Set(float64(value))
}

// SetPNCounterValue publishes a named PNCounter's current total.
func (e *Exporter) SetPNCounterValue(name string, value int64) {
	e.pncounterTotal.WithLabelValues(name).Set(float64(value))
}

// Handler returns the http.Handler that serves this Exporter's metrics in
// OpenMetrics-compatible format, for the host to mount at /metrics
// (cmd/crdtctl's "store serve-metrics" subcommand does exactly this).
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
