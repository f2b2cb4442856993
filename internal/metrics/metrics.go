package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CatalogRefreshTotal counts refresh attempts per source and outcome
var CatalogRefreshTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_refresh_total",
		Help: "Total number of catalog refresh attempts",
	}, []string{"source", "outcome"},
)

// AnalysisRequestsTotal counts proxied analytics calls per endpoint and outcome
var AnalysisRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "analysis_requests_total",
		Help: "Total number of analysis requests forwarded to the analytics API",
	}, []string{"endpoint", "outcome"},
)

func init() {
	prometheus.MustRegister(CatalogRefreshTotal, AnalysisRequestsTotal)
}
