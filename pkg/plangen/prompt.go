package plangen

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/packwright/pkg/forecast"
	"github.com/Abraxas-365/packwright/pkg/plan"
)

// systemPrompt frames the model as a family travel packing expert generating
// a list for exactly one traveler. Kept as one block so the whole contract
// the model is held to is readable in one place.
const systemPrompt = `You are a comprehensive family travel packing expert. Generate a detailed, personalized packing list for ONE traveler based on their needs, the trip details, the weather, the planned activities and the transportation.

# TRIP ANALYSIS
Before generating items, analyze:
1. Duration: determine outfit rotation (laundry every 3-4 days if the trip is longer than 5 days)
2. Season/Climate: determine clothing layers and weather gear
3. Activities: identify specialized gear (hiking boots, swimwear, ski gear)
4. Transport: adjust for luggage constraints (carry-on only, checked bags, car travel)
5. Traveler profile: age-appropriate items, special needs, comfort items

# CATEGORIES
Use ONLY these 9 categories: "clothing", "toiletries", "electronics", "documents", "health", "comfort", "activities", "baby", "misc".

- clothing: always include basic everyday clothing first (underwear, socks, tops, bottoms, sleepwear, footwear, outerwear), then activity-specific clothing
- toiletries: personal hygiene, hair and skin care, sunscreen and lip balm with SPF belong here even when needed for an activity
- health: medications, first aid, insect repellent, hand sanitizer
- documents: IDs, tickets, reservations, insurance. No passport for US domestic trips
- electronics: phone and charger (essential), power bank, entertainment devices
- comfort: travel pillow, entertainment, snacks, comfort items for children
- activities: activity EQUIPMENT and accessories only; activity CLOTHING stays in clothing
- baby: only for infants and toddlers, comprehensive baby care items
- misc: laundry supplies, bags, Rain Gear, travel locks

# ACTIVITY ITEMS
ALL activity-specific items, in ANY category, MUST start with an asterisk (*). Examples: "*Ski/Snowboard Jacket", "*Hiking Boots", "*Helmet", "*Goggles".
- Use ski/snowboard neutral names: "*Skis/Snowboard", "*Ski/Snowboard Boots". Do NOT include poles.
- Use "*Rain Gear" instead of "Umbrella".
- Assume the traveler OWNS all gear. Never list rentals or rental vouchers.

# AGE RULES
- Infants (under 2): NO activity gear, they are spectators. Comprehensive baby category.
- Toddlers (2-4): very limited activity gear, assess carefully.
- Children (5+) and teens/adults: FULL gear set for every activity they participate in.

# QUANTITIES
- Short trips (1-3 days): one outfit per day plus one spare.
- Medium trips (4-7 days): rotation with laundry consideration.
- Long trips (8+ days): cap at 7-10 outfits, assume laundry access.
- Undergarments: sufficient for the trip duration or laundry cycle.
- Use integers only.

# OUTPUT FORMAT
Return JSON with an "items" array. Each item MUST have:
- name: clear, specific item name
- emoji: relevant emoji
- quantity: realistic integer
- category: one of the 9 valid categories
- is_essential: true only for items that would ruin the trip if forgotten (documents, medications, phone charger, critical comfort items for young children)
- visible_to_kid: true for most items, false for adult-only items (medications, documents)
- notes: optional brief packing tip

Generate a complete, thorough packing list for this ONE traveler.`

// buildTravelerPrompt renders the per-traveler user prompt with full trip
// context. isPrimary marks the traveler who packs shared family items.
func buildTravelerPrompt(req plan.Request, t plan.Traveler, summary *forecast.Summary, isPrimary bool) string {
	duration := req.DurationDays()
	name := t.DisplayName()

	var b strings.Builder

	b.WriteString("# TRIP DETAILS\n")
	fmt.Fprintf(&b, "Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "Duration: %d days\n", duration)
	b.WriteString(laundryNote(duration))
	b.WriteString("\n\n")

	b.WriteString("# TRAVELER PROFILE\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Age: %d years old\n", t.Age)
	fmt.Fprintf(&b, "Type: %s\n", t.Type)
	if guidance := ageGuidance(t.Age); guidance != "" {
		b.WriteString("\n")
		b.WriteString(guidance)
		b.WriteString("\n")
	}

	b.WriteString("\n# PACKER ROLE\n")
	if isPrimary {
		b.WriteString(`PRIMARY PACKER: responsible for SHARED FAMILY ITEMS in addition to personal items.
Include shared items: family toiletries, family first aid and medications, shared chargers and adapters, laundry supplies, plastic bags.`)
	} else {
		fmt.Fprintf(&b, `SECONDARY PACKER: focus ONLY on %s's PERSONAL items.
Do NOT include shared family items (family toothpaste, family first aid, shared chargers). Personal toiletries, electronics, comfort items, clothing and gear only.`, name)
	}
	b.WriteString("\n")

	b.WriteString("\n# TRIP CONDITIONS\n")
	b.WriteString(weatherBlock(summary))
	b.WriteString("\n")

	activities := "General sightseeing and relaxation"
	if len(req.Activities) > 0 {
		activities = strings.Join(req.Activities, ", ")
	}
	transport := "Not specified (assume standard travel)"
	if len(req.Transport) > 0 {
		transport = strings.Join(req.Transport, ", ")
	}
	fmt.Fprintf(&b, "\nPlanned Activities: %s\n", activities)
	fmt.Fprintf(&b, "Transportation: %s\n", transport)

	fmt.Fprintf(&b, `
# YOUR TASK
Generate a complete packing list for %s covering every applicable category, with quantities based on %d days and the laundry access above, age-appropriate items for a %d-year-old %s, and all gear needed for: %s.

Return complete JSON with an "items" array following the specified format.`, name, duration, t.Age, t.Type, activities)

	return b.String()
}

// laundryNote encodes the outfit-rotation assumption by trip length.
func laundryNote(durationDays int) string {
	switch {
	case durationDays > 5:
		return "Laundry Access: Assume available every 3-4 days (plan outfit rotation accordingly)"
	case durationDays > 3:
		return "Laundry Access: May be available mid-trip"
	default:
		return "Laundry Access: Not needed for short trip"
	}
}

// ageGuidance returns band-specific packing considerations, empty for adults.
func ageGuidance(age int) string {
	switch {
	case age < 2:
		return `Special Considerations for Infant:
- Comprehensive baby care items (diapers, formula, bottles)
- Extra changes of clothes for accidents
- Comfort items (pacifier, favorite toy, blanket)
- Baby-safe medications and first aid`
	case age < 5:
		return `Special Considerations for Toddler:
- Comfort items and favorite toys
- Snacks and sippy cups
- Potty training supplies if applicable
- Entertainment for travel, extra changes of clothes`
	case age < 13:
		return `Special Considerations for Child:
- Age-appropriate entertainment and activities
- Comfort items from home
- Kid-friendly toiletries
- Appropriate clothing for activities`
	case age < 18:
		return `Special Considerations for Teen:
- Personal electronics and chargers
- Age-appropriate toiletries and personal care
- Activity-specific gear`
	default:
		return ""
	}
}

// weatherBlock formats the forecast for the prompt, or states it is missing
// so the model hedges with versatile layers.
func weatherBlock(summary *forecast.Summary) string {
	if summary == nil {
		return "Weather: Not available (pack versatile layers)"
	}

	conditions := "varied"
	if len(summary.Conditions) > 0 {
		parts := make([]string, len(summary.Conditions))
		for i, c := range summary.Conditions {
			parts[i] = string(c)
		}
		conditions = strings.Join(parts, ", ")
	}

	var b strings.Builder
	b.WriteString("Weather Forecast:\n")
	fmt.Fprintf(&b, "- Average Temperature: %.1f°%s\n", summary.AvgTemp, summary.TempUnit)
	fmt.Fprintf(&b, "- Conditions: %s", conditions)
	if summary.Recommendation != "" {
		fmt.Fprintf(&b, "\n- Notes: %s", summary.Recommendation)
	}
	return b.String()
}
