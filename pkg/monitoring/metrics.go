/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics.go
Description: Prometheus metrics for augmentation runs. Counts sampling draws by outcome,
records the induced grammar's shape and writes everything to a textfile that a node
exporter textfile collector can pick up after a batch run.
*/

package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label names and draw outcomes
const (
	OutcomeLabel  = "outcome"
	CategoryLabel = "category"
	StrategyLabel = "strategy"

	Accepted  = "accepted"
	Duplicate = "duplicate" // copy of an input row
	Repeat    = "repeat"    // copy of an earlier sample, with uniqueness on
	Failure   = "failure"   // depth bound hit
)

// Metrics holds the collectors of one run on a private registry. A nil
// *Metrics ignores every observation.
type Metrics struct {
	registry *prometheus.Registry

	draws         *prometheus.CounterVec
	rules         *prometheus.GaugeVec
	induction     *prometheus.HistogramVec
	sampleSeconds prometheus.Histogram
}

// NewMetrics creates and registers the run collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		draws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recomb_sample_draws_total",
				Help: "Grammar draws by outcome",
			},
			[]string{OutcomeLabel},
		),
		rules: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "recomb_grammar_rules",
				Help: "Rules of the induced grammar per category",
			},
			[]string{CategoryLabel},
		),
		induction: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "recomb_induction_duration_seconds",
				Help:    "Time spent applying one induction strategy",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
			[]string{StrategyLabel},
		),
		sampleSeconds: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recomb_sample_duration_seconds",
				Help:    "Wall time of one Sample call",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
		),
	}
	m.registry.MustRegister(m.draws, m.rules, m.induction, m.sampleSeconds)
	return m
}

// Registry returns the registry holding the run collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Draw counts one grammar draw with the given outcome.
func (m *Metrics) Draw(outcome string) {
	if m == nil {
		return
	}
	m.draws.WithLabelValues(outcome).Inc()
}

// SetRules records the rule count of a category.
func (m *Metrics) SetRules(category string, n int) {
	if m == nil {
		return
	}
	m.rules.WithLabelValues(category).Set(float64(n))
}

// ObserveInduction records the duration of one strategy application.
func (m *Metrics) ObserveInduction(strategy string, d time.Duration) {
	if m == nil {
		return
	}
	m.induction.WithLabelValues(strategy).Observe(d.Seconds())
}

// ObserveSample records the duration of one Sample call.
func (m *Metrics) ObserveSample(d time.Duration) {
	if m == nil {
		return
	}
	m.sampleSeconds.Observe(d.Seconds())
}

// WriteTextfile writes the collected metrics in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
