package genjobhttp

import (
	"time"

	"github.com/Abraxas-365/packwright/pkg/genjob"
	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/gofiber/fiber/v2"
)

// Handlers exposes the job engine boundary over HTTP.
type Handlers struct {
	service *genjob.Service
}

// NewHandlers creates the HTTP boundary over the given service.
func NewHandlers(service *genjob.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the plan-job API.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	jobs := api.Group("/plan-jobs")
	jobs.Post("/", h.submitJob)
	jobs.Get("/stats", h.jobStats)
	jobs.Get("/health", h.jobHealth)
	jobs.Get("/:id", h.getJob)

	api.Get("/plans/:id", h.getPlan)
}

// jobResponse is the status payload callers poll.
type jobResponse struct {
	JobID        string     `json:"jobId"`
	Status       string     `json:"status"`
	PlanID       string     `json:"planId,omitempty"`
	Error        string     `json:"error,omitempty"`
	ErrorType    string     `json:"errorType,omitempty"`
	RetryCount   int        `json:"retryCount"`
	Warnings     []string   `json:"warnings,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func toJobResponse(job genjob.Job) jobResponse {
	return jobResponse{
		JobID:       job.ID,
		Status:      string(job.Status),
		PlanID:      job.ResultRef,
		Error:       job.ErrorMessage,
		ErrorType:   string(job.ErrorKind),
		RetryCount:  job.RetryCount,
		Warnings:    job.Warnings,
		CreatedAt:   job.CreatedAt,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

// submitJob accepts a generation request and returns immediately with 202.
func (h *Handlers) submitJob(c *fiber.Ctx) error {
	var req plan.Request
	if err := c.BodyParser(&req); err != nil {
		return httpErrors.NewWithCause(ErrInvalidBody, err)
	}

	job, err := h.service.Submit(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(toJobResponse(job))
}

func (h *Handlers) getJob(c *fiber.Ctx) error {
	job, err := h.service.GetJob(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(toJobResponse(job))
}

func (h *Handlers) jobStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *Handlers) jobHealth(c *fiber.Ctx) error {
	health, err := h.service.Health(c.Context())
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if health.Status == genjob.HealthDegraded {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(health)
}

func (h *Handlers) getPlan(c *fiber.Ctx) error {
	artifact, err := h.service.GetArtifact(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(artifact)
}
