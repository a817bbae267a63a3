package plan

import (
	"regexp"
	"strings"
)

// The nine canonical packing categories.
const (
	CategoryClothing    = "clothing"
	CategoryToiletries  = "toiletries"
	CategoryElectronics = "electronics"
	CategoryDocuments   = "documents"
	CategoryHealth      = "health"
	CategoryComfort     = "comfort"
	CategoryActivities  = "activities"
	CategoryBaby        = "baby"
	CategoryMisc        = "misc"
)

// Categories lists every canonical category.
var Categories = []string{
	CategoryClothing,
	CategoryToiletries,
	CategoryElectronics,
	CategoryDocuments,
	CategoryHealth,
	CategoryComfort,
	CategoryActivities,
	CategoryBaby,
	CategoryMisc,
}

var canonicalCategories = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// categorySynonyms maps common generator variations onto canonical
// categories before falling back to misc.
var categorySynonyms = map[string]string{
	"clothes":       CategoryClothing,
	"apparel":       CategoryClothing,
	"wear":          CategoryClothing,
	"hygiene":       CategoryToiletries,
	"toiletry":      CategoryToiletries,
	"personal care": CategoryToiletries,
	"tech":          CategoryElectronics,
	"gadgets":       CategoryElectronics,
	"devices":       CategoryElectronics,
	"paperwork":     CategoryDocuments,
	"documents/id":  CategoryDocuments,
	"travel docs":   CategoryDocuments,
	"medical":       CategoryHealth,
	"medicine":      CategoryHealth,
	"first aid":     CategoryHealth,
	"entertainment": CategoryComfort,
	"snacks":        CategoryComfort,
	"gear":          CategoryActivities,
	"sports":        CategoryActivities,
	"activity":      CategoryActivities,
	"infant":        CategoryBaby,
	"baby care":     CategoryBaby,
	"other":         CategoryMisc,
	"miscellaneous": CategoryMisc,
	"accessories":   CategoryMisc,
}

// NormalizeCategory maps a raw generator category onto a canonical one.
// Unknown categories become misc.
func NormalizeCategory(raw string) string {
	category := strings.ToLower(strings.TrimSpace(raw))
	if canonicalCategories[category] {
		return category
	}
	if mapped, ok := categorySynonyms[category]; ok {
		return mapped
	}

	// Substring match catches forms like "warm clothing" or "beach gear".
	for _, canonical := range Categories {
		if strings.Contains(category, canonical) {
			return canonical
		}
	}
	for synonym, canonical := range categorySynonyms {
		if strings.Contains(category, synonym) {
			return canonical
		}
	}

	return CategoryMisc
}

var firstNumber = regexp.MustCompile(`\d+`)

// ParseQuantity extracts a usable quantity from whatever the generator
// returned: numbers pass through, strings like "1-2" or "as needed" yield
// their first number or default to 1.
func ParseQuantity(raw any) int {
	switch v := raw.(type) {
	case float64:
		if v >= 1 {
			return int(v)
		}
	case int:
		if v >= 1 {
			return v
		}
	case string:
		if m := firstNumber.FindString(v); m != "" {
			n := 0
			for _, ch := range m {
				n = n*10 + int(ch-'0')
			}
			if n >= 1 {
				return n
			}
		}
	}
	return 1
}
