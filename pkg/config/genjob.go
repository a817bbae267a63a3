package config

import "time"

// GenJobConfig configures the plan generation job engine.
type GenJobConfig struct {
	// Workers is the number of concurrent job runner goroutines.
	Workers int

	// MaxRetries caps how many times a retryable failure re-queues a job.
	MaxRetries int

	// Deadline is the hard per-job execution deadline.
	Deadline time.Duration

	// WarnAfter is how long a job may run before a slow-job warning is logged.
	WarnAfter time.Duration

	// ClaimTimeout is the timeout passed to the blocking claim call.
	ClaimTimeout time.Duration

	// PromoteInterval is how often scheduled retries are promoted to ready.
	PromoteInterval time.Duration

	// CleanupInterval is how often the sweeper purges old terminal jobs.
	CleanupInterval time.Duration

	// MaxAge is how long terminal jobs are retained before the sweeper
	// deletes them.
	MaxAge time.Duration

	// ShutdownTimeout bounds the graceful drain of in-flight jobs.
	ShutdownTimeout time.Duration
}

func loadGenJobConfig() GenJobConfig {
	return GenJobConfig{
		Workers:         getEnvInt("GENJOB_WORKERS", 4),
		MaxRetries:      getEnvInt("GENJOB_MAX_RETRIES", 2),
		Deadline:        getEnvDuration("GENJOB_DEADLINE", 180*time.Second),
		WarnAfter:       getEnvDuration("GENJOB_WARN_AFTER", 60*time.Second),
		ClaimTimeout:    getEnvDuration("GENJOB_CLAIM_TIMEOUT", 5*time.Second),
		PromoteInterval: getEnvDuration("GENJOB_PROMOTE_INTERVAL", time.Second),
		CleanupInterval: getEnvDuration("GENJOB_CLEANUP_INTERVAL", 300*time.Second),
		MaxAge:          getEnvDuration("GENJOB_MAX_AGE", time.Hour),
		ShutdownTimeout: getEnvDuration("GENJOB_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}
