package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PermissionChecks counts permission evaluations by source (snapshot|server) and outcome (allowed|denied|error).
	PermissionChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedulr_permission_checks_total",
			Help: "Total number of permission checks",
		},
		[]string{"permission", "source", "result"},
	)

	// PermissionInitializations counts self-provisioning attempts for missing permission records.
	PermissionInitializations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedulr_permission_initializations_total",
			Help: "Total number of permission record initialization attempts",
		},
		[]string{"role", "result"},
	)

	// PermissionLoads counts snapshot loads by terminal state.
	PermissionLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedulr_permission_loads_total",
			Help: "Total number of permission snapshot loads by resulting state",
		},
		[]string{"state"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedulr_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
