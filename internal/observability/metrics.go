package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	interviewOutcomes    *prometheus.CounterVec
	interviewLatencySecs prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30, 60, 180},
		}, []string{"method", "route"})

		interviewOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interview_outcomes_total",
			Help: "Interview requests by outcome.",
		}, []string{"outcome"})

		interviewLatencySecs = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "interview_duration_seconds",
			Help:    "End-to-end duration of the interview pipeline.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 180},
		})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, interviewOutcomes, interviewLatencySecs)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// InterviewOutcomes counts interviews by how they ended.
func InterviewOutcomes() *prometheus.CounterVec {
	RegisterMetrics()
	return interviewOutcomes
}

// InterviewLatency exposes the pipeline duration histogram.
func InterviewLatency() prometheus.Histogram {
	RegisterMetrics()
	return interviewLatencySecs
}
