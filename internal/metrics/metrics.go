// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ApplicantLookups counts upstream applicant fetches by outcome
	// (success, not_found, error).
	ApplicantLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "apexscore",
		Name:      "applicant_lookups_total",
		Help:      "Upstream applicant lookups by outcome.",
	}, []string{"outcome"})

	// ApplicantCache counts applicant cache hits and misses.
	ApplicantCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "apexscore",
		Name:      "applicant_cache_total",
		Help:      "Applicant cache lookups by result.",
	}, []string{"result"})

	// RiskCalculations counts risk engine invocations by operation
	// (breakdown, recommendation).
	RiskCalculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "apexscore",
		Name:      "risk_calculations_total",
		Help:      "Risk engine invocations by operation.",
	}, []string{"operation"})

	// UpstreamLatency observes upstream scoring API request durations.
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "apexscore",
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream scoring API request duration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	// SettingsFallbacks counts times the risk settings store fell back to
	// hardcoded defaults.
	SettingsFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "apexscore",
		Name:      "settings_fallbacks_total",
		Help:      "Risk settings reads served from hardcoded defaults.",
	})
)
