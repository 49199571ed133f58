package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics live in a registry per handler so several handlers can coexist.
type metrics struct {
	registry *prometheus.Registry

	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	bestMakespan  *prometheus.GaugeVec
	cacheHits     prometheus.Counter
	requests      *prometheus.CounterVec
}

func newMetrics() *metrics {
	result := metrics{
		registry: prometheus.NewRegistry(),

		solves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobshop_solves_total",
				Help: "Completed solves by termination reason.",
			},
			[]string{"termination"},
		),
		solveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "jobshop_solve_duration_seconds",
				Help:    "Wall time of a solve.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		bestMakespan: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "jobshop_best_makespan",
				Help: "Makespan of the latest solve per job set file, inline sets share one series.",
			},
			[]string{"source"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "jobshop_cache_hits_total",
				Help: "Solves answered from the result cache.",
			},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobshop_http_requests_total",
				Help: "HTTP requests by method and status.",
			},
			[]string{"method", "status"},
		),
	}

	result.registry.MustRegister(
		result.solves,
		result.solveDuration,
		result.bestMakespan,
		result.cacheHits,
		result.requests,
	)

	return &result
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
