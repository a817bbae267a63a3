package genjobmem_test

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/packwright/pkg/errx"
	"github.com/Abraxas-365/packwright/pkg/genjob"
	"github.com/Abraxas-365/packwright/pkg/genjob/genjobmem"
	"github.com/Abraxas-365/packwright/pkg/plan"
)

func pendingJob(id string) genjob.Job {
	now := time.Now().UTC()
	return genjob.Job{
		ID:     id,
		Status: genjob.StatusPending,
		Request: plan.Request{
			Destination: "Lisbon",
			StartDate:   "2026-09-01",
			EndDate:     "2026-09-05",
			Travelers:   []plan.Traveler{{ID: "t1", Name: "Ana", Age: 30, Type: plan.TravelerAdult}},
		},
		MaxRetries: 2,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestClaimTransitionsToProcessing(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	job, err := store.Claim(ctx, 100*time.Millisecond)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if job == nil {
		t.Fatal("expected a claimed job")
	}
	if job.Status != genjob.StatusProcessing {
		t.Errorf("claimed job status = %q, want processing", job.Status)
	}
	if job.StartedAt == nil {
		t.Error("claim must set StartedAt")
	}
	if job.Version != 1 {
		t.Errorf("claim must bump version, got %d", job.Version)
	}
}

func TestClaimTimesOutEmpty(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	start := time.Now()
	job, err := store.Claim(ctx, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if job != nil {
		t.Fatal("expected nil job from empty store")
	}
	if time.Since(start) < 40*time.Millisecond {
		t.Error("Claim returned before the timeout elapsed")
	}
}

func TestSecondClaimFindsNothing(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job, _ := store.Claim(ctx, 100*time.Millisecond); job == nil {
		t.Fatal("first claim should win the job")
	}

	second, err := store.Claim(ctx, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if second != nil {
		t.Fatal("a job must be claimable exactly once")
	}
}

func TestUpdateRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	claimed, _ := store.Claim(ctx, 100*time.Millisecond)
	if claimed == nil {
		t.Fatal("expected claimed job")
	}

	winner := *claimed
	winner.Status = genjob.StatusCompleted
	if _, err := store.Update(ctx, winner); err != nil {
		t.Fatalf("first update must succeed: %v", err)
	}

	loser := *claimed
	loser.Status = genjob.StatusFailed
	_, err := store.Update(ctx, loser)
	if err == nil {
		t.Fatal("stale update must be rejected")
	}
	if !errx.IsType(err, errx.TypeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}

	current, _ := store.Get(ctx, "j1")
	if current.Status != genjob.StatusCompleted {
		t.Errorf("stale writer corrupted the record: status %q", current.Status)
	}
}

func TestRequeueAndPromote(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	claimed, _ := store.Claim(ctx, 100*time.Millisecond)
	if claimed == nil {
		t.Fatal("expected claimed job")
	}

	retry := *claimed
	retry.Status = genjob.StatusPending
	retry.RetryCount = 1
	retry.StartedAt = nil
	if _, err := store.Requeue(ctx, retry, 60*time.Millisecond); err != nil {
		t.Fatalf("Requeue: %v", err)
	}

	// Not yet due.
	if n, _ := store.PromoteDue(ctx); n != 0 {
		t.Fatalf("promoted %d jobs before the delay elapsed", n)
	}
	if job, _ := store.Claim(ctx, 20*time.Millisecond); job != nil {
		t.Fatal("job must not be claimable before its delay elapses")
	}

	time.Sleep(80 * time.Millisecond)
	if n, _ := store.PromoteDue(ctx); n != 1 {
		t.Fatalf("expected 1 promoted job, got %d", n)
	}
	// Promotion is one-shot.
	if n, _ := store.PromoteDue(ctx); n != 0 {
		t.Fatalf("second promote must be empty, got %d", n)
	}

	job, _ := store.Claim(ctx, 100*time.Millisecond)
	if job == nil {
		t.Fatal("promoted job must be claimable")
	}
	if job.RetryCount != 1 {
		t.Errorf("retry count = %d, want 1", job.RetryCount)
	}
}

func TestDeleteRemovesRecord(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	if err := store.Create(ctx, pendingJob("j1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Delete(ctx, "j1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, err := store.Get(ctx, "j1")
	if !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	if err := store.Delete(ctx, "j1"); !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("double delete should report not found, got %v", err)
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := genjobmem.NewMemoryStore()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.Create(ctx, pendingJob(id)); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}

	jobs, err := store.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(jobs) != 3 {
		t.Errorf("expected 3 jobs, got %d", len(jobs))
	}
}
