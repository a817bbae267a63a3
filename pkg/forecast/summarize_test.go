package forecast

import (
	"strings"
	"testing"
)

func day(avg float64, condition string, rain, snow int) Day {
	return Day{AvgTempC: avg, Condition: condition, ChanceOfRain: rain, ChanceOfSnow: snow}
}

func TestSummarizeAveragesTemperature(t *testing.T) {
	s := Summarize([]Day{
		day(18.0, "Sunny", 0, 0),
		day(22.0, "Sunny", 0, 0),
		day(20.5, "Clear", 10, 0),
	}, 3)

	if s.AvgTemp != 20.2 {
		t.Fatalf("AvgTemp = %v, want 20.2", s.AvgTemp)
	}
	if s.TempUnit != "C" {
		t.Fatalf("TempUnit = %q, want C", s.TempUnit)
	}
	if len(s.Conditions) != 1 || s.Conditions[0] != ConditionSunny {
		t.Fatalf("Conditions = %v, want [sunny]", s.Conditions)
	}
}

func TestSummarizeEmptyFallsBackToDefault(t *testing.T) {
	s := Summarize(nil, 5)
	want := DefaultSummary()
	if s.AvgTemp != want.AvgTemp || s.Recommendation != want.Recommendation {
		t.Fatalf("Summarize(nil) = %+v, want default %+v", s, want)
	}
}

func TestDeriveConditions(t *testing.T) {
	tests := []struct {
		name string
		days []Day
		want []Condition
	}{
		{
			"rain by chance",
			[]Day{day(15, "Partly cloudy", 60, 0)},
			[]Condition{ConditionRainy},
		},
		{
			"snow outranks rain",
			[]Day{day(-2, "Light snow", 80, 50)},
			[]Condition{ConditionSnowy},
		},
		{
			"stable sunny then rainy order",
			[]Day{day(20, "Rain showers", 70, 0), day(24, "Sunny", 0, 0)},
			[]Condition{ConditionSunny, ConditionRainy},
		},
		{
			"three kinds collapse to mixed",
			[]Day{day(20, "Sunny", 0, 0), day(18, "Rain", 80, 0), day(16, "Overcast", 0, 0)},
			[]Condition{ConditionMixed},
		},
		{
			"unrecognized defaults to sunny",
			[]Day{day(20, "Haboob", 0, 0)},
			[]Condition{ConditionSunny},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveConditions(tt.days)
			if len(got) != len(tt.want) {
				t.Fatalf("conditions = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("conditions = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestRecommendationMentionsRelevantGear(t *testing.T) {
	cold := Summarize([]Day{day(2, "Snow", 0, 60)}, 3)
	if !strings.Contains(cold.Recommendation, "Winter gear") {
		t.Fatalf("cold recommendation = %q, want winter gear", cold.Recommendation)
	}
	if !strings.Contains(cold.Recommendation, "warm layers") {
		t.Fatalf("cold recommendation = %q, want warm layers", cold.Recommendation)
	}

	wet := Summarize([]Day{day(22, "Rain", 90, 0)}, 3)
	if !strings.Contains(wet.Recommendation, "rain gear") {
		t.Fatalf("wet recommendation = %q, want rain gear", wet.Recommendation)
	}

	swingDays := []Day{day(10, "Sunny", 0, 0), day(25, "Sunny", 0, 0)}
	swing := Summarize(swingDays, 3)
	if !strings.Contains(swing.Recommendation, "versatile") {
		t.Fatalf("swing recommendation = %q, want versatile items", swing.Recommendation)
	}

	long := Summarize([]Day{day(22, "Sunny", 0, 0)}, 16)
	if !strings.Contains(long.Recommendation, "laundry") {
		t.Fatalf("long trip recommendation = %q, want laundry note", long.Recommendation)
	}
}
