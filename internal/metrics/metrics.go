// Package metrics holds the Prometheus instruments shared by the API. All
// collectors are registered with the default registry in init, so serving
// promhttp.Handler is enough to expose them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline stages reported through StageTotal.
const (
	StageFetch       = "fetch"
	StageAnalyze     = "analyze"
	StageOpportunity = "opportunity"
	StageDraft       = "draft"
	StagePersist     = "persist"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesgpt_http_requests_total",
			Help: "HTTP requests served, by method, route and status code.",
		}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salesgpt_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"})

	StageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salesgpt_pipeline_stage_total",
			Help: "Pipeline stage executions, by stage and outcome.",
		}, []string{"stage", "outcome"})

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salesgpt_llm_request_duration_seconds",
			Help:    "Language model completion latency, by outcome.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		StageTotal,
		LLMRequestDuration,
	)
}

// ObserveStage records the outcome of one pipeline stage.
func ObserveStage(stage string, err error) {
	StageTotal.WithLabelValues(stage, outcome(err)).Inc()
}

// ObserveLLM records the latency of one language model call.
func ObserveLLM(start time.Time, err error) {
	LLMRequestDuration.WithLabelValues(outcome(err)).Observe(time.Since(start).Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
