package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "agentdeck"

var (
	CommandInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_invocations_total",
			Help:      "Total number of dashboard commands proxied to the backend.",
		},
		[]string{"command"},
	)

	CommandFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_failures_total",
			Help:      "Total number of failed dashboard commands, labeled by failure kind.",
		},
		[]string{"command", "kind"},
	)

	CommandDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "End-to-end latency of dashboard commands including backend round trip (seconds).",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"command"},
	)
)

func init() {
	prometheus.MustRegister(
		CommandInvocationsTotal,
		CommandFailuresTotal,
		CommandDurationSeconds,
	)
}
