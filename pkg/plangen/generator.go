package plangen

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/packwright/pkg/asyncx"
	"github.com/Abraxas-365/packwright/pkg/forecast"
	"github.com/Abraxas-365/packwright/pkg/llm"
	"github.com/Abraxas-365/packwright/pkg/logx"
	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/google/uuid"
)

// Generator produces a full packing plan from a validated request. Lists
// are generated concurrently, one call per traveler, and a failed traveler
// does not sink the whole plan as long as at least one list succeeds.
type Generator struct {
	client   llm.Client
	weather  forecast.Provider
	chatOpts []llm.Option
}

// New creates a Generator. weather may be nil, in which case every plan is
// generated without a forecast. chatOpts are passed on every chat call, so
// model and temperature can be configured per deployment.
func New(client llm.Client, weather forecast.Provider, chatOpts ...llm.Option) *Generator {
	return &Generator{
		client:   client,
		weather:  weather,
		chatOpts: chatOpts,
	}
}

// Generate builds the plan artifact for a request. The returned artifact
// carries a warning per traveler whose list could not be generated; an error
// is returned only when no list at all could be produced.
func (g *Generator) Generate(ctx context.Context, req plan.Request) (plan.Artifact, error) {
	if err := req.Validate(); err != nil {
		return plan.Artifact{}, err
	}

	var warnings []string

	summary := g.fetchForecast(ctx, req)
	if g.weather != nil && summary == nil {
		warnings = append(warnings, "weather forecast unavailable, packing list generated without it")
	}

	primaryID := req.PrimaryPackerID()

	fns := make([]func(context.Context) (plan.ListForTraveler, error), len(req.Travelers))
	for i, t := range req.Travelers {
		traveler := t
		fns[i] = func(ctx context.Context) (plan.ListForTraveler, error) {
			return g.generateForTraveler(ctx, req, traveler, summary, traveler.ID == primaryID)
		}
	}

	results := asyncx.AllSettled(ctx, fns...)

	var (
		lists    []plan.ListForTraveler
		firstErr error
	)
	for i, res := range results {
		if res.Err != nil {
			traveler := req.Travelers[i]
			logx.WithError(res.Err).WithField("traveler_id", traveler.ID).
				Warn("packing list generation failed for traveler")
			warnings = append(warnings, fmt.Sprintf(
				"failed to generate list for %s: %v", traveler.DisplayName(), res.Err))
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		lists = append(lists, res.Value)
	}

	if len(lists) == 0 {
		return plan.Artifact{}, genErrors.NewWithCause(ErrAllTravelersFailed, firstErr).
			WithDetail("traveler_count", len(req.Travelers))
	}

	return plan.Artifact{
		ID:          uuid.NewString(),
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Travelers:   req.Travelers,
		Activities:  req.Activities,
		Transport:   req.Transport,
		Forecast:    summary,
		Lists:       lists,
		Warnings:    warnings,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// fetchForecast returns nil when no provider is configured or the fetch
// fails. Forecast loss degrades the prompt, never the job.
func (g *Generator) fetchForecast(ctx context.Context, req plan.Request) *forecast.Summary {
	if g.weather == nil {
		return nil
	}

	start, end, err := req.Dates()
	if err != nil {
		return nil
	}

	summary, err := g.weather.Forecast(ctx, req.Destination, start, end)
	if err != nil {
		logx.WithError(err).WithField("destination", req.Destination).
			Warn("weather forecast fetch failed")
		return nil
	}
	return &summary
}

func (g *Generator) generateForTraveler(
	ctx context.Context,
	req plan.Request,
	t plan.Traveler,
	summary *forecast.Summary,
	isPrimary bool,
) (plan.ListForTraveler, error) {
	messages := []llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(buildTravelerPrompt(req, t, summary, isPrimary)),
	}

	opts := append(append([]llm.Option{}, g.chatOpts...), llm.WithJSONMode())

	resp, err := g.client.Chat(ctx, messages, opts...)
	if err != nil {
		return plan.ListForTraveler{}, err
	}

	list, err := parseTravelerList(resp.Message.Content, t)
	if err != nil {
		return plan.ListForTraveler{}, err
	}

	logx.WithFields(logx.Fields{
		"traveler_id": t.ID,
		"items":       len(list.Items),
	}).Debug("generated packing list for traveler")

	return list, nil
}
