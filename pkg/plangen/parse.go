package plangen

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"github.com/Abraxas-365/packwright/pkg/plan"
	"github.com/google/uuid"
)

// rawItem mirrors one generator item before validation. Quantity is any
// because models return integers, floats and strings like "1-2".
type rawItem struct {
	Name         string `json:"name"`
	Emoji        string `json:"emoji"`
	Quantity     any    `json:"quantity"`
	Category     string `json:"category"`
	IsEssential  bool   `json:"is_essential"`
	VisibleToKid *bool  `json:"visible_to_kid"`
	Notes        string `json:"notes"`
}

type rawList struct {
	Items []rawItem `json:"items"`
}

var fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

// extractJSON pulls a JSON object out of a model response. It tries direct
// parsing first, then a markdown code fence, then the widest {...} span.
func extractJSON(content string) (rawList, error) {
	var parsed rawList

	trimmed := strings.TrimSpace(content)
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		return parsed, nil
	}

	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		if err := json.Unmarshal([]byte(m[1]), &parsed); err == nil {
			return parsed, nil
		}
	}

	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err == nil {
				return parsed, nil
			}
		}
	}

	return rawList{}, genErrors.NewWithMessage(ErrUnparsableResponse,
		"response did not contain a parsable JSON object").
		WithDetail("content_prefix", truncate(content, 200))
}

// parseTravelerList converts a model response into a validated packing list
// for one traveler. Every item gets a fresh id, a canonical category and a
// sane quantity.
func parseTravelerList(content string, t plan.Traveler) (plan.ListForTraveler, error) {
	parsed, err := extractJSON(content)
	if err != nil {
		return plan.ListForTraveler{}, err
	}
	if len(parsed.Items) == 0 {
		return plan.ListForTraveler{}, genErrors.New(ErrEmptyList).
			WithDetail("traveler_id", t.ID)
	}

	items := make([]plan.Item, 0, len(parsed.Items))
	seen := make(map[string]bool)
	var categories []string

	for _, raw := range parsed.Items {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			name = "Unknown Item"
		}
		emoji := raw.Emoji
		if emoji == "" {
			emoji = "📦"
		}
		visibleToKid := true
		if raw.VisibleToKid != nil {
			visibleToKid = *raw.VisibleToKid
		}

		category := plan.NormalizeCategory(raw.Category)
		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}

		items = append(items, plan.Item{
			ID:           uuid.NewString(),
			TravelerID:   t.ID,
			Name:         name,
			Emoji:        emoji,
			Quantity:     plan.ParseQuantity(raw.Quantity),
			Category:     category,
			IsEssential:  raw.IsEssential,
			VisibleToKid: visibleToKid,
			Notes:        strings.TrimSpace(raw.Notes),
		})
	}

	sort.Strings(categories)

	return plan.ListForTraveler{
		TravelerID:   t.ID,
		TravelerName: t.DisplayName(),
		Items:        items,
		Categories:   categories,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
