// Package prompts builds the text prompts sent to the generative client.
// Builders are pure: the same request always yields the same prompt.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/currency"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

type Kind string

const (
	KindTripPlan                   Kind = "trip_plan"
	KindPlaceDetails               Kind = "place_details"
	KindBudgetOptimization         Kind = "optimize_budget"
	KindDestinationRecommendations Kind = "destination_recommendations"
	KindDestinationGuide           Kind = "destination_guide"
)

// Prompt is a ready-to-send generation request.
type Prompt struct {
	Kind            Kind
	Text            string
	MaxOutputTokens int
}

const recommendationCount = 4

// NormalizeCurrency upper-cases code and checks it against ISO 4217.
// An empty code yields the default currency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return models.DefaultCurrency, nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", domain.ValidationError{Field: "currency", Msg: fmt.Sprintf("unknown currency %q", code), Err: err}
	}
	return unit.String(), nil
}

func TripPlan(req models.TripRequest) (Prompt, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return Prompt{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	if req.Duration < 1 {
		return Prompt{}, domain.ValidationError{Field: "duration", Msg: "must be at least 1 day"}
	}
	if req.Budget.Total < 0 {
		return Prompt{}, domain.ValidationError{Field: "budget.total", Msg: "must not be negative"}
	}
	cur, err := NormalizeCurrency(req.Budget.Currency)
	if err != nil {
		return Prompt{}, err
	}

	daysAvailable := req.TimeAvailability.DaysAvailable
	if daysAvailable <= 0 {
		daysAvailable = req.Duration
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a detailed trip plan for a %d-day trip to %s.\n\n", req.Duration, destination)
	b.WriteString("User preferences:\n")
	fmt.Fprintf(&b, "- Budget: %d %s\n", req.Budget.Total, cur)
	fmt.Fprintf(&b, "- Travel style: %s\n", orDefault(req.TravelStyle, "balanced"))
	fmt.Fprintf(&b, "- Transportation preferences: %s\n", joinOr(req.Transportation, "Any"))
	fmt.Fprintf(&b, "- Interests: %s\n", joinOr(req.Interests, "General sightseeing"))
	fmt.Fprintf(&b, "- Accommodation type: %s\n", orDefault(req.AccommodationType, "Mid-range hotel"))
	fmt.Fprintf(&b, "- Has own vehicle: %s\n", yesNo(req.HasOwnVehicle))
	fmt.Fprintf(&b, "- Available time: %d days\n", daysAvailable)
	fmt.Fprintf(&b, "- Preferred season: %s\n\n", orDefault(req.TimeAvailability.PreferredSeason, "Any"))

	b.WriteString("Please provide a comprehensive travel plan with:\n")
	b.WriteString("1. A day-by-day itinerary with specific places to visit\n")
	fmt.Fprintf(&b, "2. A cost breakdown in %s for each activity, meal, accommodation and transportation\n", cur)
	b.WriteString("3. Recommended restaurants and local cuisine with price ranges\n")
	b.WriteString("4. Must-see attractions and hidden gems that match the interests\n")
	b.WriteString("5. Practical tips and best times to visit each place\n")
	b.WriteString("6. Estimated time required for each activity\n")
	b.WriteString("7. Transportation options between locations with costs\n")
	b.WriteString("8. Accommodation recommendations with costs\n")
	b.WriteString("9. Cultural experiences, shopping for local specialties and safety tips\n\n")

	writeFormat(&b, fmt.Sprintf(tripPlanSchema, quote(destination), req.Duration, quote(cur)))
	writeConsistencyRules(&b, cur, req.Duration)

	return Prompt{Kind: KindTripPlan, Text: b.String(), MaxOutputTokens: 8192}, nil
}

func PlaceDetails(req models.PlaceDetailsRequest, currencyCode string) (Prompt, error) {
	place := strings.TrimSpace(req.PlaceName)
	destination := strings.TrimSpace(req.Destination)
	if place == "" {
		return Prompt{}, domain.ValidationError{Field: "placeName", Msg: "required"}
	}
	if destination == "" {
		return Prompt{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	cur, err := NormalizeCurrency(currencyCode)
	if err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Provide comprehensive and detailed information about %q in %s.\n\n", place, destination)
	fmt.Fprintf(&b, "User interests: %s\n\n", joinOr(req.Interests, "General information"))
	b.WriteString("Include its history and significance, why it is worth visiting, ")
	fmt.Fprintf(&b, "a cost breakdown in %s (entry fees, guided tours), ", cur)
	b.WriteString("the best time of day and season, how long to spend there, insider tips, ")
	b.WriteString("nearby attractions, restaurants and shops, customs to be aware of, ")
	b.WriteString("photography tips, accessibility, an image URL and a Google Maps URL.\n\n")

	writeFormat(&b, fmt.Sprintf(placeDetailsSchema, quote(place), quote(destination), cur))
	fmt.Fprintf(&b, "\nUse only %s for every cost. Be specific and detailed.\n", cur)

	return Prompt{Kind: KindPlaceDetails, Text: b.String(), MaxOutputTokens: 4096}, nil
}

// BudgetOptimization asks for a revised plan in the same document shape as
// the input plan, so the answer goes through the same validation.
func BudgetOptimization(plan models.TripPlan, budgetConstraint int64) (Prompt, error) {
	destination := strings.TrimSpace(plan.Destination)
	if destination == "" {
		return Prompt{}, domain.ValidationError{Field: "tripPlan.destination", Msg: "required"}
	}
	if budgetConstraint < 0 {
		return Prompt{}, domain.ValidationError{Field: "budgetConstraint", Msg: "must not be negative"}
	}
	cur, err := NormalizeCurrency(plan.Currency)
	if err != nil {
		return Prompt{}, err
	}
	duration := plan.Duration
	if duration < 1 {
		duration = len(plan.Itinerary)
	}

	current, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return Prompt{}, domain.ValidationError{Field: "tripPlan", Msg: "cannot be encoded", Err: err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have a trip plan to %s with a total estimated cost of %d %s.\n", destination, plan.Summary.TotalCost.Value, cur)
	fmt.Fprintf(&b, "However, my budget is limited to %d %s.\n\n", budgetConstraint, cur)
	b.WriteString("Please optimize the trip plan to fit within the budget while keeping the best possible experience.\n\n")
	b.WriteString("Current trip plan:\n")
	b.Write(current)
	b.WriteString("\n\nPlease apply:\n")
	b.WriteString("1. Cheaper alternatives to expensive activities\n")
	b.WriteString("2. Budget-friendly dining options\n")
	b.WriteString("3. Cost-saving transportation options\n")
	b.WriteString("4. Removal of activities with minimal impact on the overall experience\n")
	b.WriteString("5. A revised day-by-day itinerary that fits within the budget\n\n")

	writeFormat(&b, fmt.Sprintf(tripPlanSchema, quote(destination), duration, quote(cur)))
	writeConsistencyRules(&b, cur, duration)
	fmt.Fprintf(&b, "summary.totalCost must not exceed %d.\n", budgetConstraint)

	return Prompt{Kind: KindBudgetOptimization, Text: b.String(), MaxOutputTokens: 8192}, nil
}

func DestinationRecommendations(p models.PreferenceProfile) (Prompt, error) {
	cur, err := checkProfile(p)
	if err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as a travel expert and recommend %d destinations based on the following preferences:\n\n", recommendationCount)
	writeProfile(&b, p, cur)
	b.WriteString("\nFor each destination, provide:\n")
	b.WriteString("1. Name of the destination\n")
	b.WriteString("2. A short description (50-60 words)\n")
	fmt.Fprintf(&b, "3. Estimated total cost (in %s)\n", cur)
	b.WriteString("4. Best time to visit\n")
	b.WriteString("5. Three top attractions\n\n")
	b.WriteString("Do not include image URLs.\n\n")
	b.WriteString("Format the response as a JSON array of objects with the following structure:\n")
	b.WriteString(recommendationSchema)
	fmt.Fprintf(&b, "\n\nUse only %s for every cost. Only return the JSON array, no additional text.\n", cur)

	return Prompt{Kind: KindDestinationRecommendations, Text: b.String(), MaxOutputTokens: 2048}, nil
}

func DestinationGuide(destination string, p models.PreferenceProfile) (Prompt, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return Prompt{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	cur, err := checkProfile(p)
	if err != nil {
		return Prompt{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as a travel expert and provide detailed information about %s for a traveler with the following preferences:\n\n", destination)
	writeProfile(&b, p, cur)
	b.WriteString("\nProvide a comprehensive travel guide in JSON format with the following structure:\n")
	b.WriteString(fmt.Sprintf(destinationGuideSchema, quote(destination)))
	fmt.Fprintf(&b, "\n\nUse only %s for every cost. Only return the JSON object, no additional text.\n", cur)

	return Prompt{Kind: KindDestinationGuide, Text: b.String(), MaxOutputTokens: 4096}, nil
}

func checkProfile(p models.PreferenceProfile) (string, error) {
	if p.Budget.Min < 0 || p.Budget.Max < 0 {
		return "", domain.ValidationError{Field: "budget", Msg: "must not be negative"}
	}
	if p.Budget.Max > 0 && p.Budget.Min > p.Budget.Max {
		return "", domain.ValidationError{Field: "budget", Msg: "min must not exceed max"}
	}
	return NormalizeCurrency(p.Currency)
}

func writeProfile(b *strings.Builder, p models.PreferenceProfile, cur string) {
	fmt.Fprintf(b, "Budget: %d to %d %s\n", p.Budget.Min, p.Budget.Max, cur)
	if p.TimeAvailability.DaysAvailable > 0 {
		fmt.Fprintf(b, "Days Available: %d\n", p.TimeAvailability.DaysAvailable)
	} else {
		b.WriteString("Days Available: Flexible\n")
	}
	fmt.Fprintf(b, "Preferred Season: %s\n", orDefault(p.TimeAvailability.PreferredSeason, "Any"))
	fmt.Fprintf(b, "Interests: %s\n", joinOr(p.Interests, "General sightseeing"))
	vehicle := "No vehicle"
	if p.Transportation.HasOwnVehicle {
		vehicle = "Has own vehicle"
	}
	fmt.Fprintf(b, "Transportation: %s, Prefers %s\n", vehicle, joinOr(p.Transportation.PreferredModes, "any mode"))
}

func writeFormat(b *strings.Builder, schema string) {
	b.WriteString("Format the response as a structured JSON object with exactly this structure:\n")
	b.WriteString(schema)
	b.WriteString("\n\n")
}

func writeConsistencyRules(b *strings.Builder, cur string, days int) {
	fmt.Fprintf(b, "Use only %s for every cost and give every estimatedCost as a plain number.\n", cur)
	fmt.Fprintf(b, "The itinerary must contain days 1 to %d in order.\n", days)
	b.WriteString("Each day's totalDayCost must equal the sum of its places, meals and transportation costs. ")
	b.WriteString("summary.totalCost must equal the sum of every totalDayCost.\n")
	b.WriteString("Every place category must be one of attraction, restaurant, accommodation or activity.\n")
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func joinOr(items []string, def string) string {
	kept := lo.Compact(lo.Map(items, func(it string, _ int) string { return strings.TrimSpace(it) }))
	if len(kept) == 0 {
		return def
	}
	return strings.Join(kept, ", ")
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
