package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookai_http_requests_total",
		Help: "Total number of inbound HTTP requests",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookai_http_request_duration_seconds",
		Help:    "Duration of inbound HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// StageOutcomes counts every fallback stage attempt by pipeline, stage and outcome
	StageOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookai_fallback_stage_total",
		Help: "Fallback stage attempts by pipeline, stage and outcome (ok, failed)",
	}, []string{"pipeline", "stage", "outcome"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookai_upstream_request_duration_seconds",
		Help:    "Duration of outbound provider calls in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 3, 5, 10, 15, 20},
	}, []string{"host", "status"})

	LLMQuotaErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookai_llm_quota_errors_total",
		Help: "LLM calls rejected for rate limit or quota exhaustion",
	})
)
