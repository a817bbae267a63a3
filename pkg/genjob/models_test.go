package genjob_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/packwright/pkg/genjob"
)

func TestStatusIsTerminal(t *testing.T) {
	if genjob.StatusPending.IsTerminal() || genjob.StatusProcessing.IsTerminal() {
		t.Error("pending and processing must not be terminal")
	}
	if !genjob.StatusCompleted.IsTerminal() || !genjob.StatusFailed.IsTerminal() {
		t.Error("completed and failed must be terminal")
	}
}

func TestKindRetryable(t *testing.T) {
	retryable := map[genjob.Kind]bool{
		genjob.KindTransient:  true,
		genjob.KindTimeout:    true,
		genjob.KindValidation: false,
		genjob.KindAPIError:   false,
		genjob.KindUnknown:    false,
	}
	for kind, want := range retryable {
		if got := kind.Retryable(); got != want {
			t.Errorf("%s.Retryable() = %v, want %v", kind, got, want)
		}
	}
}

func TestJobCanRetry(t *testing.T) {
	job := genjob.Job{MaxRetries: 2}

	if !job.CanRetry(genjob.KindTransient) {
		t.Error("fresh job with transient failure must be retryable")
	}
	if job.CanRetry(genjob.KindValidation) {
		t.Error("validation failures are never retried")
	}

	job.RetryCount = 2
	if job.CanRetry(genjob.KindTimeout) {
		t.Error("exhausted job must not retry")
	}
}

func TestBackoffDoubles(t *testing.T) {
	if d := genjob.Backoff(1, time.Second); d != 2*time.Second {
		t.Errorf("Backoff(1) = %s, want 2s", d)
	}
	if d := genjob.Backoff(2, time.Second); d != 4*time.Second {
		t.Errorf("Backoff(2) = %s, want 4s", d)
	}
	if d := genjob.Backoff(3, 10*time.Millisecond); d != 80*time.Millisecond {
		t.Errorf("Backoff(3, 10ms) = %s, want 80ms", d)
	}
}

func TestJobStuck(t *testing.T) {
	now := time.Now().UTC()
	deadline := 180 * time.Second

	old := now.Add(-200 * time.Second)
	fresh := now.Add(-10 * time.Second)

	stuck := genjob.Job{Status: genjob.StatusProcessing, StartedAt: &old}
	if !stuck.Stuck(now, deadline) {
		t.Error("processing job past the deadline must be stuck")
	}

	working := genjob.Job{Status: genjob.StatusProcessing, StartedAt: &fresh}
	if working.Stuck(now, deadline) {
		t.Error("recently started job must not be stuck")
	}

	done := genjob.Job{Status: genjob.StatusCompleted, StartedAt: &old}
	if done.Stuck(now, deadline) {
		t.Error("terminal job must never be stuck")
	}

	pending := genjob.Job{Status: genjob.StatusProcessing}
	if pending.Stuck(now, deadline) {
		t.Error("processing job without startedAt must not be stuck")
	}
}
