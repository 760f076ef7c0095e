package ratelimit

import "time"

// NoOpMetrics implements the Metrics interface with no-op implementations.
// It is used when metrics collection is disabled and as the default sink
// for engines constructed without one.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics instance.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// RecordAllowed is a no-op implementation.
func (m *NoOpMetrics) RecordAllowed(tier, source string) {}

// RecordDenied is a no-op implementation.
func (m *NoOpMetrics) RecordDenied(tier, source string) {}

// RecordCheckDuration is a no-op implementation.
func (m *NoOpMetrics) RecordCheckDuration(d time.Duration) {}

// RecordStoreError is a no-op implementation.
func (m *NoOpMetrics) RecordStoreError(op string) {}
