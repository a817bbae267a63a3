package plangen

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/packwright/pkg/plan"
)

var testTraveler = plan.Traveler{ID: "t1", Name: "Ana", Age: 34, Type: plan.TravelerAdult}

const validItems = `{"items": [
	{"name": "T-shirts", "emoji": "👕", "quantity": 5, "category": "clothing", "is_essential": false, "visible_to_kid": true},
	{"name": "Passport", "emoji": "🛂", "quantity": 1, "category": "documents", "is_essential": true, "visible_to_kid": true}
]}`

func TestParseTravelerListDirectJSON(t *testing.T) {
	list, err := parseTravelerList(validItems, testTraveler)
	if err != nil {
		t.Fatalf("parseTravelerList returned error: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
	if list.TravelerID != "t1" {
		t.Errorf("expected traveler id t1, got %q", list.TravelerID)
	}
	if list.Items[0].ID == "" || list.Items[0].ID == list.Items[1].ID {
		t.Error("expected distinct non-empty item ids")
	}
	if !list.Items[1].IsEssential {
		t.Error("expected passport to be essential")
	}
}

func TestParseTravelerListFencedJSON(t *testing.T) {
	content := "Here is your packing list:\n```json\n" + validItems + "\n```\nEnjoy the trip!"
	list, err := parseTravelerList(content, testTraveler)
	if err != nil {
		t.Fatalf("parseTravelerList returned error: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
}

func TestParseTravelerListEmbeddedJSON(t *testing.T) {
	content := "Sure! " + validItems + " Let me know if you need more."
	list, err := parseTravelerList(content, testTraveler)
	if err != nil {
		t.Fatalf("parseTravelerList returned error: %v", err)
	}
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
}

func TestParseTravelerListNoJSON(t *testing.T) {
	_, err := parseTravelerList("I cannot generate a list right now.", testTraveler)
	if err == nil {
		t.Fatal("expected error for content without JSON")
	}
	if !strings.Contains(err.Error(), "JSON") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseTravelerListEmptyItems(t *testing.T) {
	_, err := parseTravelerList(`{"items": []}`, testTraveler)
	if err == nil {
		t.Fatal("expected error for empty items array")
	}
}

func TestParseTravelerListSanitizesItems(t *testing.T) {
	content := `{"items": [
		{"name": "", "quantity": "1-2", "category": "Skiing & Snowboarding"},
		{"name": "Sunscreen", "quantity": "as needed", "category": "hygiene", "visible_to_kid": false}
	]}`
	list, err := parseTravelerList(content, testTraveler)
	if err != nil {
		t.Fatalf("parseTravelerList returned error: %v", err)
	}

	first := list.Items[0]
	if first.Name != "Unknown Item" {
		t.Errorf("expected blank name fallback, got %q", first.Name)
	}
	if first.Emoji != "📦" {
		t.Errorf("expected default emoji, got %q", first.Emoji)
	}
	if first.Quantity != 1 {
		t.Errorf("expected quantity 1 from %q, got %d", "1-2", first.Quantity)
	}
	if first.Category != plan.CategoryActivities {
		t.Errorf("expected ski category to normalize to activities, got %q", first.Category)
	}
	if !first.VisibleToKid {
		t.Error("expected visible_to_kid to default to true")
	}

	second := list.Items[1]
	if second.Quantity != 1 {
		t.Errorf("expected quantity fallback 1, got %d", second.Quantity)
	}
	if second.Category != plan.CategoryToiletries {
		t.Errorf("expected hygiene to normalize to toiletries, got %q", second.Category)
	}
	if second.VisibleToKid {
		t.Error("expected visible_to_kid false to be preserved")
	}
}

func TestParseTravelerListCategoriesSorted(t *testing.T) {
	content := `{"items": [
		{"name": "Charger", "category": "electronics"},
		{"name": "Socks", "category": "clothing"},
		{"name": "Shirts", "category": "clothing"}
	]}`
	list, err := parseTravelerList(content, testTraveler)
	if err != nil {
		t.Fatalf("parseTravelerList returned error: %v", err)
	}
	want := []string{"clothing", "electronics"}
	if len(list.Categories) != len(want) {
		t.Fatalf("expected categories %v, got %v", want, list.Categories)
	}
	for i := range want {
		if list.Categories[i] != want[i] {
			t.Fatalf("expected categories %v, got %v", want, list.Categories)
		}
	}
}
