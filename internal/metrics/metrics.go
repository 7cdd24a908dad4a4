// Package metrics holds the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts upstream calls by provider and result (ok, error)
	ProviderRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixture_analyst_provider_requests_total",
		Help: "Upstream provider requests by provider and result",
	}, []string{"provider", "result"})

	// ProviderLatency tracks upstream call duration
	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fixture_analyst_provider_request_seconds",
		Help:    "Upstream provider request duration",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"provider"})

	// CacheLookups counts cache lookups by kind (fixtures, statistics) and result (hit, miss)
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixture_analyst_cache_lookups_total",
		Help: "Cache lookups by kind and result",
	}, []string{"kind", "result"})

	// AnalysesGenerated counts analyses by outcome (parsed, fallback, superseded)
	AnalysesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixture_analyst_analyses_total",
		Help: "Analyses produced by outcome",
	}, []string{"outcome"})

	// LedgerWrites counts ledger mutations by operation
	LedgerWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixture_analyst_ledger_writes_total",
		Help: "Ledger mutations by operation",
	}, []string{"op"})

	// LedgerRecords is the current number of bet records
	LedgerRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fixture_analyst_ledger_records",
		Help: "Bet records currently held in the ledger",
	})
)
