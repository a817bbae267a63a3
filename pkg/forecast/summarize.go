package forecast

import (
	"fmt"
	"math"
	"strings"
)

// Summarize folds daily forecast data into a Summary: average temperature,
// coarse conditions, and a packing recommendation. totalDays is the full trip
// duration, which may exceed the number of forecast days available.
func Summarize(days []Day, totalDays int) Summary {
	if len(days) == 0 {
		return DefaultSummary()
	}

	var sum float64
	for _, d := range days {
		sum += d.AvgTempC
	}
	avg := math.Round(sum/float64(len(days))*10) / 10

	conditions := deriveConditions(days)

	return Summary{
		AvgTemp:        avg,
		TempUnit:       "C",
		Conditions:     conditions,
		Recommendation: recommend(avg, conditions, totalDays, days),
		Days:           days,
	}
}

// DefaultSummary is returned when the forecast source has no data for the
// requested range.
func DefaultSummary() Summary {
	return Summary{
		AvgTemp:        20.0,
		TempUnit:       "C",
		Conditions:     []Condition{ConditionSunny},
		Recommendation: "Check local weather closer to your trip date.",
	}
}

func deriveConditions(days []Day) []Condition {
	seen := make(map[Condition]bool)

	for _, d := range days {
		text := strings.ToLower(d.Condition)
		switch {
		case d.ChanceOfSnow > 30 || strings.Contains(text, "snow"):
			seen[ConditionSnowy] = true
		case d.ChanceOfRain > 30 || strings.Contains(text, "rain"):
			seen[ConditionRainy] = true
		case strings.Contains(text, "cloud") || strings.Contains(text, "overcast"):
			seen[ConditionCloudy] = true
		case strings.Contains(text, "sun") || strings.Contains(text, "clear"):
			seen[ConditionSunny] = true
		}
	}

	if len(seen) > 2 {
		return []Condition{ConditionMixed}
	}
	if len(seen) == 0 {
		return []Condition{ConditionSunny}
	}

	// Stable order keeps prompts and tests deterministic.
	var out []Condition
	for _, c := range []Condition{ConditionSunny, ConditionRainy, ConditionCloudy, ConditionSnowy} {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

func recommend(avgTemp float64, conditions []Condition, totalDays int, days []Day) string {
	var recs []string

	switch {
	case avgTemp < 10:
		recs = append(recs, "Pack warm layers and a heavy jacket")
	case avgTemp < 20:
		recs = append(recs, "Pack layers - it will be cool")
	case avgTemp < 25:
		recs = append(recs, "Pack light layers for mild weather")
	default:
		recs = append(recs, "Pack light, breathable clothing")
	}

	if hasCondition(conditions, ConditionRainy) || hasCondition(conditions, ConditionMixed) {
		recs = append(recs, "Don't forget rain gear!")
	}
	if hasCondition(conditions, ConditionSnowy) {
		recs = append(recs, "Winter gear essential")
	}

	if len(days) > 0 {
		minT, maxT := days[0].AvgTempC, days[0].AvgTempC
		for _, d := range days[1:] {
			if d.AvgTempC < minT {
				minT = d.AvgTempC
			}
			if d.AvgTempC > maxT {
				maxT = d.AvgTempC
			}
		}
		if maxT-minT > 10 {
			recs = append(recs, "Temperature varies - pack versatile items")
		}
	}

	if totalDays > 14 {
		recs = append(recs, fmt.Sprintf("Long trip (%d days) - consider laundry options", totalDays))
	}

	return strings.Join(recs, ". ") + "."
}

func hasCondition(conditions []Condition, target Condition) bool {
	for _, c := range conditions {
		if c == target {
			return true
		}
	}
	return false
}
