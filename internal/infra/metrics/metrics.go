// Package metrics defines the Prometheus collectors exported by the service.
// Collectors register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quill"

// Authentication operations and outcomes used as label values.
const (
	OperationRegister = "register"
	OperationLogin    = "login"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - operation: register or login
//   - outcome: success or failure
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts by outcome.",
	},
	[]string{"operation", "outcome"},
)

// HTTPRequestsTotal counts served requests by route template.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Count of HTTP requests.",
	},
	[]string{"route", "method", "status"},
)

// HTTPRequestDuration observes request latency in seconds by route template.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route", "method"},
)

// RecordAuthAttempt increments AuthAttemptsTotal for one attempt.
func RecordAuthAttempt(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}
