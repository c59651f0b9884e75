// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the wordscope
// service.
//
// # Description
//
// Metrics include:
//   - HTTP request counters and latency histograms by route
//   - Affix records produced by decomposition, by kind
//   - Upstream failures by collaborator (tagger, grammar)
//
// Metrics are exposed on /metrics.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AleutianAI/wordscope/services/wordscope/affix"
)

// =============================================================================
// Metric Definitions
// =============================================================================

const metricsNamespace = "wordscope"

// Collaborator names an upstream dependency for error labeling.
type Collaborator string

const (
	// CollaboratorTagger is the part-of-speech tagger.
	CollaboratorTagger Collaborator = "tagger"

	// CollaboratorGrammar is the grammar checker.
	CollaboratorGrammar Collaborator = "grammar"
)

// Metrics holds the service's Prometheus collectors.
//
// # Fields
//
//   - RequestsTotal: Requests by route and HTTP status code
//   - RequestDurationSeconds: Request latency by route
//   - AffixMatchesTotal: Decomposition records by kind (prefix, suffix, none)
//   - UpstreamErrorsTotal: Collaborator failures
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec
	AffixMatchesTotal      *prometheus.CounterVec
	UpstreamErrorsTotal    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
//
// # Inputs
//
//   - reg: Registry to register with. Use prometheus.DefaultRegisterer in
//     production and prometheus.NewRegistry() in tests.
//
// # Limitations
//
//   - Panics if the collectors are already registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),

		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds by route",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route"},
		),

		AffixMatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "affix_matches_total",
				Help:      "Decomposition records produced, by kind",
			},
			[]string{"kind"},
		),

		UpstreamErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "upstream_errors_total",
				Help:      "Failed calls to NLP collaborators",
			},
			[]string{"collaborator"},
		),
	}
}

// =============================================================================
// Helper Methods
// =============================================================================

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, seconds float64) {
	m.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDurationSeconds.WithLabelValues(route).Observe(seconds)
}

// RecordMatches counts each decomposition record by kind.
func (m *Metrics) RecordMatches(matches []affix.Match) {
	for _, match := range matches {
		m.AffixMatchesTotal.WithLabelValues(string(match.Kind)).Inc()
	}
}

// RecordUpstreamError counts a collaborator failure.
func (m *Metrics) RecordUpstreamError(c Collaborator) {
	m.UpstreamErrorsTotal.WithLabelValues(string(c)).Inc()
}
