package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the poll and retry knobs for lease and container
// lifecycle operations. The defaults are the periods the testbed
// operators recommend; each can be overridden via environment variables.
type Timeouts struct {
	LeaseWait     time.Duration // Deadline for a lease to reach the desired status
	ContainerWait time.Duration // Deadline for a container to reach Running
	PollInterval  time.Duration // Pause between status probes
	CreateRetries int           // Retries after a failed create
	RemoveRetries int           // Retries after a failed remove
	RetryDelay    time.Duration // Pause between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// Unset or invalid values fall back to defaults.
//
// Environment Variables:
//   - EXPECA_TIMEOUT_LEASE_WAIT (default: 120s)
//   - EXPECA_TIMEOUT_CONTAINER_WAIT (default: 600s)
//   - EXPECA_POLL_INTERVAL (default: 5s)
//   - EXPECA_RETRY_CREATE (default: 2)
//   - EXPECA_RETRY_REMOVE (default: 1)
//   - EXPECA_RETRY_DELAY (default: 5s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		LeaseWait:     parseDuration("EXPECA_TIMEOUT_LEASE_WAIT", 120*time.Second),
		ContainerWait: parseDuration("EXPECA_TIMEOUT_CONTAINER_WAIT", 600*time.Second),
		PollInterval:  parseDuration("EXPECA_POLL_INTERVAL", 5*time.Second),
		CreateRetries: parseInt("EXPECA_RETRY_CREATE", 2),
		RemoveRetries: parseInt("EXPECA_RETRY_REMOVE", 1),
		RetryDelay:    parseDuration("EXPECA_RETRY_DELAY", 5*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}
