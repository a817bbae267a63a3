package genjob

import (
	"context"
	"time"

	"github.com/Abraxas-365/packwright/pkg/logx"
)

// Sweeper periodically deletes terminal job records older than maxAge. It
// is the only component that deletes records. Deletion is best-effort:
// failures are logged and retried implicitly on the next sweep.
type Sweeper struct {
	store    RecordStore
	interval time.Duration
	maxAge   time.Duration
}

// NewSweeper creates a sweeper. Non-positive interval and maxAge fall back
// to 300s and 1h.
func NewSweeper(store RecordStore, interval, maxAge time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 300 * time.Second
	}
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	logx.Infof("genjob: cleanup sweeper started (interval %s, max age %s)", s.interval, s.maxAge)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logx.Info("genjob: cleanup sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep performs one cleanup pass and returns how many records it deleted.
func (s *Sweeper) Sweep(ctx context.Context) int {
	jobs, err := s.store.All(ctx)
	if err != nil {
		logx.WithError(err).Warn("genjob: cleanup sweep could not list jobs")
		return 0
	}

	cutoff := time.Now().UTC().Add(-s.maxAge)
	deleted := 0

	for _, job := range jobs {
		if !job.Status.IsTerminal() {
			continue
		}
		if job.CompletedAt == nil || !job.CompletedAt.Before(cutoff) {
			continue
		}

		if err := s.store.Delete(ctx, job.ID); err != nil {
			logx.WithError(err).WithField("job_id", job.ID).
				Warn("genjob: failed to delete old job")
			continue
		}
		deleted++
	}

	if deleted > 0 {
		logx.Infof("genjob: cleaned up %d old jobs", deleted)
	}
	return deleted
}
