package models

import "time"

// SystemMetrics is a lightweight aggregate for API consumption, complementing
// the Prometheus exposition endpoint.
type SystemMetrics struct {
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	EventMutations           uint64    `json:"event_mutations"`
	ToastsEmitted            uint64    `json:"toasts_emitted"`
	ExportsCompleted         uint64    `json:"exports_completed"`
	ExportsFailed            uint64    `json:"exports_failed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
