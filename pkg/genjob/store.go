package genjob

import (
	"context"
	"time"
)

// RecordStore is the single source of truth for job state. All components
// mutate jobs exclusively through it; no component keeps an authoritative
// in-memory copy across suspension points.
//
// Writes are guarded by the record's Version: Update and Requeue fail with
// ErrStaleVersion when the caller's copy is behind, and the caller must
// abandon its write.
type RecordStore interface {
	// Create persists a new pending job and makes it claimable.
	Create(ctx context.Context, job Job) error

	// Get returns the current record, ErrJobNotFound when absent.
	Get(ctx context.Context, id string) (Job, error)

	// Claim blocks up to timeout for the next ready job and atomically
	// transitions it pending -> processing, setting StartedAt and bumping
	// Version. Returns nil without error when nothing became ready; a
	// redelivered id whose record is no longer pending is skipped, which is
	// what makes duplicate redelivery harmless.
	Claim(ctx context.Context, timeout time.Duration) (*Job, error)

	// Update persists a transition on a claimed job.
	Update(ctx context.Context, job Job) (Job, error)

	// Requeue returns a retryable job to pending and schedules redelivery
	// no earlier than delay from now.
	Requeue(ctx context.Context, job Job, delay time.Duration) (Job, error)

	// PromoteDue moves scheduled jobs whose delay has elapsed onto the
	// ready queue, returning how many were promoted.
	PromoteDue(ctx context.Context) (int, error)

	// All returns every job record. Used by the stats aggregator and the
	// cleanup sweeper; never by the hot path.
	All(ctx context.Context) ([]Job, error)

	// Delete removes a record. Only the cleanup sweeper calls this.
	Delete(ctx context.Context, id string) error
}
