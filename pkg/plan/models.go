package plan

import (
	"context"
	"time"

	"github.com/Abraxas-365/packwright/pkg/forecast"
)

// TravelerType distinguishes packing needs by age group.
type TravelerType string

const (
	TravelerAdult  TravelerType = "adult"
	TravelerChild  TravelerType = "child"
	TravelerInfant TravelerType = "infant"
)

// Traveler is one person a packing list is generated for.
type Traveler struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Age  int          `json:"age"`
	Type TravelerType `json:"type"`
}

// Request is the immutable input payload of a generation job.
type Request struct {
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Travelers   []Traveler `json:"travelers"`
	Activities  []string   `json:"activities"`
	Transport   []string   `json:"transport"`
}

// Item is a single packing list entry.
type Item struct {
	ID           string `json:"id"`
	TravelerID   string `json:"traveler_id"`
	Name         string `json:"name"`
	Emoji        string `json:"emoji"`
	Quantity     int    `json:"quantity"`
	Category     string `json:"category"`
	IsEssential  bool   `json:"is_essential"`
	VisibleToKid bool   `json:"visible_to_kid"`
	Notes        string `json:"notes,omitempty"`
}

// ListForTraveler is the generated packing list of one traveler.
type ListForTraveler struct {
	TravelerID   string   `json:"traveler_id"`
	TravelerName string   `json:"traveler_name"`
	Items        []Item   `json:"items"`
	Categories   []string `json:"categories"`
}

// Artifact is the persisted result of a completed generation job.
type Artifact struct {
	ID          string            `json:"id"`
	Destination string            `json:"destination"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	Travelers   []Traveler        `json:"travelers"`
	Activities  []string          `json:"activities"`
	Transport   []string          `json:"transport"`
	Forecast    *forecast.Summary `json:"forecast,omitempty"`
	Lists       []ListForTraveler `json:"lists"`
	Warnings    []string          `json:"warnings,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Store persists generated plan artifacts.
type Store interface {
	Save(ctx context.Context, artifact Artifact) error
	Get(ctx context.Context, id string) (Artifact, error)
}
