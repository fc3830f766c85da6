// Package metrics exposes Prometheus counters for testbed operations.
//
// The CLI is short-lived, so the counters mostly matter when the library
// is embedded in a long-running experiment controller.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LeaseOperations counts lease create/delete outcomes.
	LeaseOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expeca_lease_operations_total",
		Help: "Lease operations by kind and result.",
	}, []string{"operation", "result"})

	// ContainerOperations counts container create/delete outcomes.
	ContainerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expeca_container_operations_total",
		Help: "Container operations by kind and result.",
	}, []string{"operation", "result"})

	// RetryAttempts counts retried attempts per operation.
	RetryAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expeca_retry_attempts_total",
		Help: "Retries performed while driving testbed operations.",
	}, []string{"operation"})

	// WaitTimeouts counts status polls that ran out of time.
	WaitTimeouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expeca_wait_timeouts_total",
		Help: "Status waits that hit their deadline.",
	}, []string{"resource"})
)

const (
	ResultOK    = "ok"
	ResultError = "error"
	OpCreate    = "create"
	OpDelete    = "delete"
)
