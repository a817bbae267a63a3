package genjob

import (
	"context"
	"time"
)

// computeStats counts jobs by status and flags jobs in processing past the
// deadline as stuck. Read-only; never mutates the store.
func computeStats(ctx context.Context, store RecordStore, deadline time.Duration) (Stats, error) {
	jobs, err := store.All(ctx)
	if err != nil {
		return Stats{}, err
	}

	now := time.Now().UTC()
	var stats Stats
	for _, job := range jobs {
		switch job.Status {
		case StatusPending:
			stats.Pending++
		case StatusProcessing:
			stats.Processing++
		case StatusCompleted:
			stats.Completed++
		case StatusFailed:
			stats.Failed++
		}
		stats.Total++

		if job.Stuck(now, deadline) {
			stats.Stuck++
		}
	}

	return stats, nil
}

// healthFromStats derives the verdict: degraded when any job is stuck or
// the processing backlog reaches the threshold.
func healthFromStats(stats Stats) Health {
	status := HealthHealthy
	if stats.Stuck > 0 || stats.Processing >= degradedProcessingThreshold {
		status = HealthDegraded
	}
	return Health{
		Status:             status,
		StuckJobsCount:     stats.Stuck,
		ProcessingJobCount: stats.Processing,
		Timestamp:          time.Now().UTC(),
	}
}
