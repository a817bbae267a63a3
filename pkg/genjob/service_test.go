package genjob_test

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/packwright/pkg/errx"
	"github.com/Abraxas-365/packwright/pkg/genjob"
	"github.com/Abraxas-365/packwright/pkg/genjob/genjobmem"
)

func TestSubmitCreatesPendingJob(t *testing.T) {
	store := genjobmem.NewMemoryStore()
	svc := genjob.NewService(store, newMockArtifacts(), 2, time.Minute)

	job, err := svc.Submit(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if job.ID == "" {
		t.Error("submitted job must have an id")
	}
	if job.Status != genjob.StatusPending {
		t.Errorf("status = %q, want pending", job.Status)
	}
	if job.MaxRetries != 2 {
		t.Errorf("maxRetries = %d, want 2", job.MaxRetries)
	}

	stored, err := svc.GetJob(context.Background(), job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if stored.Request.Destination != "Lisbon" {
		t.Errorf("request not persisted, destination %q", stored.Request.Destination)
	}
}

func TestSubmitRejectsEmptyTravelerList(t *testing.T) {
	store := genjobmem.NewMemoryStore()
	svc := genjob.NewService(store, newMockArtifacts(), 2, time.Minute)

	req := testRequest()
	req.Travelers = nil

	_, err := svc.Submit(context.Background(), req)
	if err == nil {
		t.Fatal("expected validation error for empty traveler list")
	}
	if !errx.IsType(err, errx.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	jobs, _ := store.All(context.Background())
	if len(jobs) != 0 {
		t.Errorf("rejected submission must not create a record, found %d", len(jobs))
	}
}

func TestGetJobUnknownID(t *testing.T) {
	svc := genjob.NewService(genjobmem.NewMemoryStore(), newMockArtifacts(), 2, time.Minute)

	_, err := svc.GetJob(context.Background(), "missing")
	if !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestStatsCountsAndStuck(t *testing.T) {
	store := genjobmem.NewMemoryStore()
	deadline := 100 * time.Millisecond
	svc := genjob.NewService(store, newMockArtifacts(), 2, deadline)
	ctx := context.Background()

	now := time.Now().UTC()
	longAgo := now.Add(-time.Minute)
	justNow := now

	seed := []genjob.Job{
		{ID: "p1", Status: genjob.StatusPending, CreatedAt: now, UpdatedAt: now},
		{ID: "c1", Status: genjob.StatusCompleted, CreatedAt: now, UpdatedAt: now, CompletedAt: &now},
		{ID: "f1", Status: genjob.StatusFailed, CreatedAt: now, UpdatedAt: now, CompletedAt: &now},
		{ID: "w1", Status: genjob.StatusProcessing, StartedAt: &justNow, CreatedAt: now, UpdatedAt: now},
		{ID: "s1", Status: genjob.StatusProcessing, StartedAt: &longAgo, CreatedAt: now, UpdatedAt: now},
	}
	for _, job := range seed {
		if err := store.Create(ctx, job); err != nil {
			t.Fatalf("Create(%s): %v", job.ID, err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Pending != 1 || stats.Processing != 2 || stats.Completed != 1 || stats.Failed != 1 {
		t.Errorf("unexpected counts: %+v", stats)
	}
	if stats.Stuck != 1 {
		t.Errorf("stuck = %d, want 1", stats.Stuck)
	}
	if stats.Total != 5 {
		t.Errorf("total = %d, want 5", stats.Total)
	}
}

func TestHealthDegradedByStuckJob(t *testing.T) {
	store := genjobmem.NewMemoryStore()
	deadline := 100 * time.Millisecond
	svc := genjob.NewService(store, newMockArtifacts(), 2, deadline)
	ctx := context.Background()

	health, err := svc.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != genjob.HealthHealthy {
		t.Errorf("empty store health = %q, want healthy", health.Status)
	}

	longAgo := time.Now().UTC().Add(-time.Minute)
	stuck := genjob.Job{ID: "s1", Status: genjob.StatusProcessing, StartedAt: &longAgo}
	if err := store.Create(ctx, stuck); err != nil {
		t.Fatalf("Create: %v", err)
	}

	health, err = svc.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != genjob.HealthDegraded {
		t.Errorf("health = %q, want degraded with a stuck job", health.Status)
	}
	if health.StuckJobsCount != 1 {
		t.Errorf("stuckJobsCount = %d, want 1", health.StuckJobsCount)
	}
}

func TestHealthDegradedByProcessingBacklog(t *testing.T) {
	store := genjobmem.NewMemoryStore()
	svc := genjob.NewService(store, newMockArtifacts(), 2, time.Hour)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 10; i++ {
		job := genjob.Job{
			ID:        string(rune('a' + i)),
			Status:    genjob.StatusProcessing,
			StartedAt: &now,
		}
		if err := store.Create(ctx, job); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	health, err := svc.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != genjob.HealthDegraded {
		t.Errorf("health = %q, want degraded with 10 processing jobs", health.Status)
	}
	if health.ProcessingJobCount != 10 {
		t.Errorf("processingJobCount = %d, want 10", health.ProcessingJobCount)
	}
}
