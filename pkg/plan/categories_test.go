package plan

import "testing"

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"clothing", CategoryClothing},
		{"Clothing", CategoryClothing},
		{"  Toiletries ", CategoryToiletries},
		{"clothes", CategoryClothing},
		{"hygiene", CategoryToiletries},
		{"tech", CategoryElectronics},
		{"warm clothing", CategoryClothing},
		{"beach gear", CategoryActivities},
		{"first aid", CategoryHealth},
		{"baby care", CategoryBaby},
		{"totally made up", CategoryMisc},
		{"", CategoryMisc},
	}
	for _, tt := range tests {
		if got := NormalizeCategory(tt.raw); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int
	}{
		{"float", float64(3), 3},
		{"int", 2, 2},
		{"numeric string", "4", 4},
		{"range string takes first", "1-2", 1},
		{"prose with number", "about 5 pairs", 5},
		{"zero defaults", float64(0), 1},
		{"as needed defaults", "as needed", 1},
		{"nil defaults", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuantity(tt.raw); got != tt.want {
				t.Fatalf("ParseQuantity(%v) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
