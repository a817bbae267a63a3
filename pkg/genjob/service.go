package genjob

import (
	"context"
	"time"

	"github.com/Abraxas-365/packwright/pkg/logx"
	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/google/uuid"
)

// Service is the submission and read boundary consumed by the API layer.
// It never executes work itself; it only creates pending records and reads
// the store.
type Service struct {
	store      RecordStore
	artifacts  plan.Store
	maxRetries int
	deadline   time.Duration
}

// NewService creates the boundary service. maxRetries and deadline default
// to the engine defaults when non-positive.
func NewService(store RecordStore, artifacts plan.Store, maxRetries int, deadline time.Duration) *Service {
	if maxRetries <= 0 {
		maxRetries = 2
	}
	if deadline <= 0 {
		deadline = defaultRunnerOptions().Deadline
	}
	return &Service{
		store:      store,
		artifacts:  artifacts,
		maxRetries: maxRetries,
		deadline:   deadline,
	}
}

// Submit validates the request, creates a pending job and returns
// immediately. The runner picks the job up asynchronously.
func (s *Service) Submit(ctx context.Context, req plan.Request) (Job, error) {
	if err := req.Validate(); err != nil {
		return Job{}, err
	}

	now := time.Now().UTC()
	job := Job{
		ID:         uuid.NewString(),
		Status:     StatusPending,
		Request:    req,
		MaxRetries: s.maxRetries,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.Create(ctx, job); err != nil {
		return Job{}, err
	}

	logx.WithFields(logx.Fields{
		"job_id":      job.ID,
		"destination": req.Destination,
		"travelers":   len(req.Travelers),
	}).Info("genjob: job submitted")

	return job, nil
}

// GetJob returns the current state of a job.
func (s *Service) GetJob(ctx context.Context, id string) (Job, error) {
	return s.store.Get(ctx, id)
}

// GetArtifact returns the plan artifact referenced by a completed job.
func (s *Service) GetArtifact(ctx context.Context, id string) (plan.Artifact, error) {
	return s.artifacts.Get(ctx, id)
}

// Stats is a point-in-time census of the store, including stuck detection.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return computeStats(ctx, s.store, s.deadline)
}

// Health derives the engine verdict from current stats.
func (s *Service) Health(ctx context.Context) (Health, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return Health{}, err
	}
	return healthFromStats(stats), nil
}
