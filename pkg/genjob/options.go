package genjob

import "time"

// RunnerOptions configures the worker pool.
type RunnerOptions struct {
	Workers         int
	Deadline        time.Duration
	WarnAfter       time.Duration
	ClaimTimeout    time.Duration
	PromoteInterval time.Duration
	ShutdownTimeout time.Duration

	// BackoffUnit scales the 2^retryCount backoff. One second in
	// production; tests shrink it.
	BackoffUnit time.Duration
}

func defaultRunnerOptions() RunnerOptions {
	return RunnerOptions{
		Workers:         4,
		Deadline:        180 * time.Second,
		WarnAfter:       60 * time.Second,
		ClaimTimeout:    5 * time.Second,
		PromoteInterval: time.Second,
		ShutdownTimeout: 30 * time.Second,
		BackoffUnit:     time.Second,
	}
}

// RunnerOption is a functional option for the runner.
type RunnerOption func(*RunnerOptions)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) RunnerOption {
	return func(o *RunnerOptions) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithDeadline sets the hard per-job execution deadline.
func WithDeadline(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.Deadline = d
		}
	}
}

// WithWarnAfter sets the slow-job warning threshold.
func WithWarnAfter(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.WarnAfter = d
		}
	}
}

// WithClaimTimeout sets the blocking claim timeout.
func WithClaimTimeout(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.ClaimTimeout = d
		}
	}
}

// WithPromoteInterval sets how often scheduled retries are promoted.
func WithPromoteInterval(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.PromoteInterval = d
		}
	}
}

// WithShutdownTimeout sets the maximum wait for workers to drain on shutdown.
func WithShutdownTimeout(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.ShutdownTimeout = d
		}
	}
}

// WithBackoffUnit scales the exponential retry backoff.
func WithBackoffUnit(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.BackoffUnit = d
		}
	}
}
