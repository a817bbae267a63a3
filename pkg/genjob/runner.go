package genjob

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Abraxas-365/packwright/pkg/asyncx"
	"github.com/Abraxas-365/packwright/pkg/errx"
	"github.com/Abraxas-365/packwright/pkg/logx"
	"github.com/Abraxas-365/packwright/pkg/plan"
)

// PlanGenerator produces the plan artifact for one job request.
type PlanGenerator interface {
	Generate(ctx context.Context, req plan.Request) (plan.Artifact, error)
}

// Runner drives a pool of workers that claim pending jobs, execute them
// under the configured deadline and persist the outcome. Each worker owns
// at most one job at a time; ownership is taken by the store's atomic claim.
type Runner struct {
	store     RecordStore
	generator PlanGenerator
	artifacts plan.Store
	opts      RunnerOptions

	mu      sync.Mutex
	running bool
}

// NewRunner creates a runner over the given store and collaborators.
func NewRunner(store RecordStore, generator PlanGenerator, artifacts plan.Store, options ...RunnerOption) *Runner {
	opts := defaultRunnerOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Runner{
		store:     store,
		generator: generator,
		artifacts: artifacts,
		opts:      opts,
	}
}

// Start begins processing jobs. It blocks until ctx is cancelled, then
// drains workers up to the shutdown timeout.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return genjobErrors.New(ErrAlreadyRunning)
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	logx.Infof("genjob: starting %d workers (deadline %s)", r.opts.Workers, r.opts.Deadline)

	var wg sync.WaitGroup

	// Promoter goroutine: moves due retries back onto the ready queue.
	wg.Add(1)
	go func() {
		defer wg.Done()
		r.promoteLoop(ctx)
	}()

	for i := range r.opts.Workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			r.workerLoop(ctx, id)
		}(i)
	}

	<-ctx.Done()
	logx.Info("genjob: shutting down workers...")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logx.Info("genjob: all workers stopped")
	case <-time.After(r.opts.ShutdownTimeout):
		logx.Warn("genjob: shutdown timed out, some jobs may not have completed")
	}

	return nil
}

func (r *Runner) promoteLoop(ctx context.Context) {
	ticker := time.NewTicker(r.opts.PromoteInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.store.PromoteDue(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				logx.WithError(err).Warn("genjob: failed to promote scheduled jobs")
			}
		}
	}
}

func (r *Runner) workerLoop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := r.store.Claim(ctx, r.opts.ClaimTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.WithError(err).Warnf("genjob: worker %d claim error", id)
			time.Sleep(r.opts.ClaimTimeout)
			continue
		}
		if job == nil {
			continue
		}

		r.execute(ctx, *job)
	}
}

// execute runs one claimed job end-to-end. The terminal persistence at the
// bottom is the single point of truth for the attempt's outcome.
func (r *Runner) execute(ctx context.Context, job Job) {
	entry := logx.WithFields(logx.Fields{
		"job_id":  job.ID,
		"attempt": job.RetryCount + 1,
	})
	entry.Info("genjob: processing job")

	slowWarn := time.AfterFunc(r.opts.WarnAfter, func() {
		entry.Warnf("genjob: job still running after %s", r.opts.WarnAfter)
	})
	defer slowWarn.Stop()

	artifact, err := asyncx.WithTimeout(ctx, r.opts.Deadline, func(ctx context.Context) (plan.Artifact, error) {
		return r.generator.Generate(ctx, job.Request)
	})

	if err == nil {
		err = r.artifacts.Save(ctx, artifact)
		if err == nil {
			r.complete(ctx, job, artifact)
			return
		}
	}

	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// Shutdown interrupted the attempt. The record stays in processing
		// and surfaces through stuck detection, like any crashed worker.
		entry.Warn("genjob: attempt abandoned by shutdown")
		return
	}

	r.fail(ctx, job, err)
}

func (r *Runner) complete(ctx context.Context, job Job, artifact plan.Artifact) {
	now := time.Now().UTC()
	job.Status = StatusCompleted
	job.ResultRef = artifact.ID
	job.Warnings = artifact.Warnings
	job.CompletedAt = &now

	if _, err := r.store.Update(ctx, job); err != nil {
		r.logWriteFailure(job.ID, "complete", err)
		return
	}

	logx.WithFields(logx.Fields{
		"job_id":     job.ID,
		"result_ref": artifact.ID,
		"warnings":   len(artifact.Warnings),
	}).Info("genjob: job completed")
}

func (r *Runner) fail(ctx context.Context, job Job, cause error) {
	kind := Classify(cause)
	job.ErrorKind = kind
	job.ErrorMessage = cause.Error()

	if job.CanRetry(kind) {
		job.RetryCount++
		job.Status = StatusPending
		job.StartedAt = nil
		delay := Backoff(job.RetryCount, r.opts.BackoffUnit)

		if _, err := r.store.Requeue(ctx, job, delay); err != nil {
			r.logWriteFailure(job.ID, "requeue", err)
			return
		}

		logx.WithFields(logx.Fields{
			"job_id":     job.ID,
			"error_kind": string(kind),
			"retry":      job.RetryCount,
			"max":        job.MaxRetries,
			"backoff":    delay.String(),
		}).Info("genjob: job queued for retry")
		return
	}

	now := time.Now().UTC()
	job.Status = StatusFailed
	job.CompletedAt = &now

	if _, err := r.store.Update(ctx, job); err != nil {
		r.logWriteFailure(job.ID, "fail", err)
		return
	}

	logx.WithFields(logx.Fields{
		"job_id":     job.ID,
		"error_kind": string(kind),
		"retries":    job.RetryCount,
	}).WithError(cause).Error("genjob: job failed")
}

// logWriteFailure distinguishes losing a write race, which is expected and
// means this writer must abandon, from a store outage.
func (r *Runner) logWriteFailure(jobID, op string, err error) {
	var e *errx.Error
	if errx.As(err, &e) && e.Type == errx.TypeConflict {
		logx.WithField("job_id", jobID).Warnf("genjob: stale %s write abandoned", op)
		return
	}
	logx.WithError(err).Errorf("genjob: failed to persist %s for job %s", op, jobID)
}
