package genjob

import (
	"time"

	"github.com/Abraxas-365/packwright/pkg/plan"
)

// Status is the lifecycle state of a generation job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transitions can occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Kind classifies a job failure. It is a closed set: every failure observed
// by the runner is mapped onto exactly one kind at the boundary.
type Kind string

const (
	KindTransient  Kind = "transient"
	KindValidation Kind = "validation"
	KindAPIError   Kind = "api_error"
	KindTimeout    Kind = "timeout"
	KindUnknown    Kind = "unknown"
)

// Retryable reports whether failures of this kind qualify for re-queueing.
func (k Kind) Retryable() bool {
	return k == KindTransient || k == KindTimeout
}

// Job is one asynchronous request to generate a packing plan.
type Job struct {
	ID      string       `json:"id"`
	Status  Status       `json:"status"`
	Request plan.Request `json:"request"`

	// ResultRef is the artifact id, set if and only if Status is completed.
	ResultRef string `json:"result_ref,omitempty"`

	ErrorMessage string `json:"error_message,omitempty"`
	ErrorKind    Kind   `json:"error_kind,omitempty"`

	RetryCount int `json:"retry_count"`
	MaxRetries int `json:"max_retries"`

	// Warnings carries per-traveler failure messages from a partially
	// successful generation.
	Warnings []string `json:"warnings,omitempty"`

	// Version guards concurrent writers: every persisted transition
	// increments it, and a writer holding a stale version must abandon.
	Version int64 `json:"version"`

	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CanRetry reports whether a failure of the given kind should re-queue the
// job instead of terminating it.
func (j Job) CanRetry(kind Kind) bool {
	return kind.Retryable() && j.RetryCount < j.MaxRetries
}

// Backoff is the delay before retry attempt retryCount, 2^retryCount units.
// With the default one-second unit the first retry waits 2s and the second
// 4s.
func Backoff(retryCount int, unit time.Duration) time.Duration {
	return time.Duration(1<<uint(retryCount)) * unit
}

// Stuck reports whether the job sits in processing past the deadline,
// the signature of a crashed or hung worker.
func (j Job) Stuck(now time.Time, deadline time.Duration) bool {
	return j.Status == StatusProcessing &&
		j.StartedAt != nil &&
		now.Sub(*j.StartedAt) > deadline
}

// Stats is a point-in-time census of the record store.
type Stats struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Stuck      int `json:"stuck"`
	Total      int `json:"total"`
}

// HealthStatus is the derived engine verdict.
type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"
)

// degradedProcessingThreshold is the processing count at which the engine
// reports degraded even without stuck jobs.
const degradedProcessingThreshold = 10

// Health is the report returned by the aggregator.
type Health struct {
	Status             HealthStatus `json:"status"`
	StuckJobsCount     int          `json:"stuck_jobs_count"`
	ProcessingJobCount int          `json:"processing_jobs_count"`
	Timestamp          time.Time    `json:"timestamp"`
}
