package plan

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Validate checks that the request carries everything generation needs.
// An empty traveler list is rejected here rather than producing a vacuous
// empty plan.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return planErrors.NewWithMessage(ErrInvalidRequest, "destination is required")
	}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return planErrors.NewWithMessage(ErrInvalidRequest, "start_date must be an ISO date").
			WithDetail("start_date", r.StartDate)
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return planErrors.NewWithMessage(ErrInvalidRequest, "end_date must be an ISO date").
			WithDetail("end_date", r.EndDate)
	}
	if end.Before(start) {
		return planErrors.NewWithMessage(ErrInvalidRequest, "end_date must not be before start_date")
	}

	if len(r.Travelers) == 0 {
		return planErrors.NewWithMessage(ErrInvalidRequest, "at least one traveler is required")
	}

	for i, t := range r.Travelers {
		if t.Age < 0 {
			return planErrors.NewWithMessage(ErrInvalidRequest, "traveler age must not be negative").
				WithDetail("traveler_index", i)
		}
		switch t.Type {
		case TravelerAdult, TravelerChild, TravelerInfant:
		default:
			return planErrors.NewWithMessage(ErrInvalidRequest, "traveler type must be adult, child or infant").
				WithDetail("traveler_index", i).
				WithDetail("type", string(t.Type))
		}
	}

	return nil
}

// Dates returns the parsed start and end dates. Call Validate first.
func (r Request) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// DurationDays is the trip length in days, inclusive of both endpoints.
func (r Request) DurationDays() int {
	start, end, err := r.Dates()
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// PrimaryPackerID returns the id of the first adult traveler, who packs
// shared family items so they are not duplicated across lists. Empty when
// no adult travels.
func (r Request) PrimaryPackerID() string {
	for _, t := range r.Travelers {
		if t.Type == TravelerAdult {
			return t.ID
		}
	}
	return ""
}

// DisplayName renders a traveler name for prompts, substituting generic or
// blank child names with an age-qualified label.
func (t Traveler) DisplayName() string {
	name := strings.TrimSpace(t.Name)
	switch strings.ToLower(name) {
	case "", "child", "kid", "baby", "toddler":
		if t.Age < 2 {
			return fmt.Sprintf("Infant (%d)", t.Age)
		}
		return fmt.Sprintf("Child (%d)", t.Age)
	}
	return name
}
