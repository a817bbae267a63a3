package genjobhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/packwright/pkg/genjob"
	"github.com/Abraxas-365/packwright/pkg/genjob/genjobmem"
	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/gofiber/fiber/v2"
)

type memArtifacts struct {
	mu    sync.Mutex
	plans map[string]plan.Artifact
}

func (m *memArtifacts) Save(ctx context.Context, artifact plan.Artifact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plans == nil {
		m.plans = make(map[string]plan.Artifact)
	}
	m.plans[artifact.ID] = artifact
	return nil
}

func (m *memArtifacts) Get(ctx context.Context, id string) (plan.Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	artifact, ok := m.plans[id]
	if !ok {
		return plan.Artifact{}, genjob.NewError(genjob.ErrResultNotReady)
	}
	return artifact, nil
}

func newTestApp(t *testing.T) (*fiber.App, *genjob.Service, *genjobmem.MemoryStore, *memArtifacts) {
	t.Helper()
	store := genjobmem.NewMemoryStore()
	artifacts := &memArtifacts{}
	service := genjob.NewService(store, artifacts, 2, 180*time.Second)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	NewHandlers(service).RegisterRoutes(app)
	return app, service, store, artifacts
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func validRequest() plan.Request {
	return plan.Request{
		Destination: "Lisbon",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-14",
		Travelers: []plan.Traveler{
			{ID: "t1", Name: "Ana", Age: 34, Type: plan.TravelerAdult},
		},
	}
}

func TestSubmitReturnsAcceptedWithPendingJob(t *testing.T) {
	app, _, store, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/plan-jobs/", validRequest())
	if resp.StatusCode != fiber.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}

	var body struct {
		JobID  string `json:"jobId"`
		Status string `json:"status"`
	}
	decode(t, resp, &body)
	if body.JobID == "" {
		t.Fatal("response carries no jobId")
	}
	if body.Status != string(genjob.StatusPending) {
		t.Fatalf("status = %q, want pending", body.Status)
	}

	job, err := store.Get(context.Background(), body.JobID)
	if err != nil {
		t.Fatalf("job was not persisted: %v", err)
	}
	if job.Status != genjob.StatusPending {
		t.Fatalf("stored status = %q, want pending", job.Status)
	}
}

func TestSubmitRejectsInvalidRequest(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	req := validRequest()
	req.Travelers = nil
	resp := doJSON(t, app, fiber.MethodPost, "/api/v1/plan-jobs/", req)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body struct {
		Code string `json:"code"`
		Type string `json:"type"`
	}
	decode(t, resp, &body)
	if body.Type != "VALIDATION" {
		t.Fatalf("error type = %q, want VALIDATION", body.Type)
	}
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/plan-jobs/", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 2000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetJobReturnsStatusPayload(t *testing.T) {
	app, service, store, _ := newTestApp(t)

	job, err := service.Submit(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	job.Status = genjob.StatusFailed
	job.ErrorMessage = "rate limit exceeded"
	job.ErrorKind = genjob.KindAPIError
	job.RetryCount = 0
	now := time.Now().UTC()
	job.CompletedAt = &now
	if _, err := store.Update(context.Background(), job); err != nil {
		t.Fatalf("update: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/plan-jobs/"+job.ID, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		JobID     string `json:"jobId"`
		Status    string `json:"status"`
		Error     string `json:"error"`
		ErrorType string `json:"errorType"`
	}
	decode(t, resp, &body)
	if body.JobID != job.ID {
		t.Fatalf("jobId = %q, want %q", body.JobID, job.ID)
	}
	if body.Status != string(genjob.StatusFailed) {
		t.Fatalf("status = %q, want failed", body.Status)
	}
	if body.Error != "rate limit exceeded" || body.ErrorType != string(genjob.KindAPIError) {
		t.Fatalf("error payload = %q/%q", body.Error, body.ErrorType)
	}
}

func TestGetJobUnknownIDReturnsNotFound(t *testing.T) {
	app, _, _, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/plan-jobs/no-such-job", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestStatsRouteIsNotCapturedAsJobID(t *testing.T) {
	app, service, _, _ := newTestApp(t)

	if _, err := service.Submit(context.Background(), validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/plan-jobs/stats", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var stats genjob.Stats
	decode(t, resp, &stats)
	if stats.Pending != 1 || stats.Total != 1 {
		t.Fatalf("stats = %+v, want 1 pending of 1 total", stats)
	}
}

func TestHealthReturnsServiceUnavailableWhenDegraded(t *testing.T) {
	app, service, store, _ := newTestApp(t)

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/plan-jobs/health", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("empty engine status = %d, want 200", resp.StatusCode)
	}
	var healthy genjob.Health
	decode(t, resp, &healthy)
	if healthy.Status != genjob.HealthHealthy {
		t.Fatalf("status = %q, want healthy", healthy.Status)
	}

	if _, err := service.Submit(context.Background(), validRequest()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	claimed, err := store.Claim(context.Background(), 100*time.Millisecond)
	if err != nil || claimed == nil {
		t.Fatalf("claim: job=%v err=%v", claimed, err)
	}
	stale := time.Now().UTC().Add(-10 * time.Minute)
	claimed.StartedAt = &stale
	if _, err := store.Update(context.Background(), *claimed); err != nil {
		t.Fatalf("update: %v", err)
	}

	resp = doJSON(t, app, fiber.MethodGet, "/api/v1/plan-jobs/health", nil)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("degraded engine status = %d, want 503", resp.StatusCode)
	}
	var degraded genjob.Health
	decode(t, resp, &degraded)
	if degraded.Status != genjob.HealthDegraded || degraded.StuckJobsCount != 1 {
		t.Fatalf("health = %+v, want degraded with 1 stuck job", degraded)
	}
}

func TestGetPlanReturnsStoredArtifact(t *testing.T) {
	app, _, _, artifacts := newTestApp(t)

	stored := plan.Artifact{
		ID:          "artifact-1",
		Destination: "Lisbon",
		StartDate:   "2026-09-10",
		EndDate:     "2026-09-14",
		Lists: []plan.ListForTraveler{
			{TravelerID: "t1", TravelerName: "Ana", Categories: []string{"Clothing"}},
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := artifacts.Save(context.Background(), stored); err != nil {
		t.Fatalf("save: %v", err)
	}

	resp := doJSON(t, app, fiber.MethodGet, "/api/v1/plans/artifact-1", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got plan.Artifact
	decode(t, resp, &got)
	if got.ID != "artifact-1" || got.Destination != "Lisbon" {
		t.Fatalf("artifact = %+v", got)
	}
	if len(got.Lists) != 1 || got.Lists[0].TravelerName != "Ana" {
		t.Fatalf("lists = %+v", got.Lists)
	}
}
