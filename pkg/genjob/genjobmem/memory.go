package genjobmem

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/packwright/pkg/genjob"
)

// MemoryStore is an in-memory genjob.RecordStore for tests and local
// development. All operations are serialized by one mutex, which gives the
// same single-writer guarantees the Redis backend gets from its scripts.
type MemoryStore struct {
	mu        sync.Mutex
	jobs      map[string]genjob.Job
	ready     []string
	scheduled map[string]time.Time

	// notify wakes blocked claimers when a job becomes ready.
	notify chan struct{}
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:      make(map[string]genjob.Job),
		scheduled: make(map[string]time.Time),
		notify:    make(chan struct{}, 1),
	}
}

func (s *MemoryStore) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Create persists a new record. Pending jobs become claimable immediately.
func (s *MemoryStore) Create(ctx context.Context, job genjob.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return genjob.NewError(genjob.ErrStaleVersion).WithDetail("job_id", job.ID)
	}

	s.jobs[job.ID] = job
	if job.Status == genjob.StatusPending {
		s.ready = append(s.ready, job.ID)
		s.signal()
	}
	return nil
}

// Get returns a copy of the record.
func (s *MemoryStore) Get(ctx context.Context, id string) (genjob.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return genjob.Job{}, genjob.NewError(genjob.ErrJobNotFound).WithDetail("job_id", id)
	}
	return job, nil
}

// Claim pops ready ids until one still points at a pending record, then
// transitions it to processing. Ids whose record moved on are dropped,
// which makes duplicate redelivery harmless.
func (s *MemoryStore) Claim(ctx context.Context, timeout time.Duration) (*genjob.Job, error) {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		if job := s.tryClaim(); job != nil {
			return job, nil
		}

		select {
		case <-ctx.Done():
			return nil, nil
		case <-deadline.C:
			return nil, nil
		case <-s.notify:
		}
	}
}

func (s *MemoryStore) tryClaim() *genjob.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.ready) > 0 {
		id := s.ready[0]
		s.ready = s.ready[1:]

		job, ok := s.jobs[id]
		if !ok || job.Status != genjob.StatusPending {
			continue
		}

		now := time.Now().UTC()
		job.Status = genjob.StatusProcessing
		job.StartedAt = &now
		job.UpdatedAt = now
		job.Version++
		s.jobs[id] = job
		return &job
	}
	return nil
}

// Update persists a transition, rejecting stale writers.
func (s *MemoryStore) Update(ctx context.Context, job genjob.Job) (genjob.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[job.ID]
	if !ok {
		return genjob.Job{}, genjob.NewError(genjob.ErrJobNotFound).WithDetail("job_id", job.ID)
	}
	if current.Version != job.Version {
		return genjob.Job{}, genjob.NewError(genjob.ErrStaleVersion).
			WithDetail("job_id", job.ID).
			WithDetail("expected_version", job.Version).
			WithDetail("actual_version", current.Version)
	}

	job.Version++
	job.UpdatedAt = time.Now().UTC()
	s.jobs[job.ID] = job
	return job, nil
}

// Requeue returns a job to pending and schedules redelivery after delay.
func (s *MemoryStore) Requeue(ctx context.Context, job genjob.Job, delay time.Duration) (genjob.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[job.ID]
	if !ok {
		return genjob.Job{}, genjob.NewError(genjob.ErrJobNotFound).WithDetail("job_id", job.ID)
	}
	if current.Version != job.Version {
		return genjob.Job{}, genjob.NewError(genjob.ErrStaleVersion).
			WithDetail("job_id", job.ID)
	}

	job.Version++
	job.UpdatedAt = time.Now().UTC()
	s.jobs[job.ID] = job
	s.scheduled[job.ID] = time.Now().UTC().Add(delay)
	return job, nil
}

// PromoteDue moves due scheduled jobs onto the ready queue.
func (s *MemoryStore) PromoteDue(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	promoted := 0
	for id, readyAt := range s.scheduled {
		if readyAt.After(now) {
			continue
		}
		delete(s.scheduled, id)
		s.ready = append(s.ready, id)
		promoted++
	}

	if promoted > 0 {
		s.signal()
	}
	return promoted, nil
}

// All returns a snapshot of every record.
func (s *MemoryStore) All(ctx context.Context) ([]genjob.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]genjob.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Delete removes a record and any scheduling state for it.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return genjob.NewError(genjob.ErrJobNotFound).WithDetail("job_id", id)
	}
	delete(s.jobs, id)
	delete(s.scheduled, id)
	return nil
}

var _ genjob.RecordStore = (*MemoryStore)(nil)
