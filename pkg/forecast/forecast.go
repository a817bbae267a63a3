package forecast

import (
	"context"
	"time"
)

// Condition is a coarse weather category used in packing prompts.
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionRainy  Condition = "rainy"
	ConditionCloudy Condition = "cloudy"
	ConditionSnowy  Condition = "snowy"
	ConditionMixed  Condition = "mixed"
)

// Day is one day of forecast data.
type Day struct {
	Date         string  `json:"date"`
	MaxTempC     float64 `json:"max_temp_c"`
	MinTempC     float64 `json:"min_temp_c"`
	AvgTempC     float64 `json:"avg_temp_c"`
	Condition    string  `json:"condition"`
	ChanceOfRain int     `json:"chance_of_rain"`
	ChanceOfSnow int     `json:"chance_of_snow"`
}

// Summary is the structured forecast handed to the plan generator.
type Summary struct {
	AvgTemp        float64   `json:"avg_temp"`
	TempUnit       string    `json:"temp_unit"`
	Conditions     []Condition `json:"conditions"`
	Recommendation string    `json:"recommendation"`
	Location       string    `json:"location,omitempty"`
	Country        string    `json:"country,omitempty"`
	Days           []Day     `json:"days,omitempty"`
}

// Provider fetches a forecast for a destination and date range.
type Provider interface {
	Forecast(ctx context.Context, destination string, start, end time.Time) (Summary, error)
}
