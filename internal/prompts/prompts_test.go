package prompts

import (
	"errors"
	"strings"
	"testing"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

func sampleRequest() models.TripRequest {
	return models.TripRequest{
		Destination:    "Jaipur",
		Duration:       3,
		Budget:         models.RequestBudget{Total: 25000, Currency: "inr"},
		TravelStyle:    "cultural",
		Transportation: []string{"taxi", " ", "walking"},
		Interests:      []string{"forts", "food"},
	}
}

func TestTripPlanPromptContents(t *testing.T) {
	p, err := TripPlan(sampleRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Kind != KindTripPlan || p.MaxOutputTokens == 0 {
		t.Fatalf("unexpected prompt meta: %+v", p)
	}
	for _, want := range []string{
		"3-day trip to Jaipur",
		"Budget: 25000 INR",
		"Transportation preferences: taxi, walking",
		"Interests: forts, food",
		`"destination": "Jaipur"`,
		`"currency": "INR"`,
		`"itinerary"`,
		"Use only INR",
		"days 1 to 3",
		"summary.totalCost must equal the sum of every totalDayCost",
	} {
		if !strings.Contains(p.Text, want) {
			t.Fatalf("prompt missing %q:\n%s", want, p.Text)
		}
	}
}

func TestTripPlanPromptIsDeterministic(t *testing.T) {
	a, _ := TripPlan(sampleRequest())
	b, _ := TripPlan(sampleRequest())
	if a.Text != b.Text {
		t.Fatalf("prompt text differs between identical requests")
	}
}

func TestTripPlanDefaults(t *testing.T) {
	req := models.TripRequest{Destination: "Goa", Duration: 2}
	p, err := TripPlan(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Travel style: balanced", "Transportation preferences: Any", "Available time: 2 days", "Has own vehicle: No", "Budget: 0 INR"} {
		if !strings.Contains(p.Text, want) {
			t.Fatalf("prompt missing default %q", want)
		}
	}
}

func TestTripPlanRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		req   models.TripRequest
		field string
	}{
		{"missing destination", models.TripRequest{Destination: "  ", Duration: 2}, "destination"},
		{"zero duration", models.TripRequest{Destination: "Goa"}, "duration"},
		{"negative budget", models.TripRequest{Destination: "Goa", Duration: 1, Budget: models.RequestBudget{Total: -1}}, "budget.total"},
		{"bad currency", models.TripRequest{Destination: "Goa", Duration: 1, Budget: models.RequestBudget{Currency: "RUPEES"}}, "currency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TripPlan(tc.req)
			var ve domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("field got %q want %q", ve.Field, tc.field)
			}
		})
	}
}

func TestPlaceDetailsPrompt(t *testing.T) {
	p, err := PlaceDetails(models.PlaceDetailsRequest{PlaceName: `Hawa "Mahal"`, Destination: "Jaipur"}, "usd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.Text, `"name": "Hawa \"Mahal\""`) {
		t.Fatalf("place name not json-quoted in schema:\n%s", p.Text)
	}
	if !strings.Contains(p.Text, "Amount in USD") {
		t.Fatalf("currency not applied to schema")
	}

	if _, err := PlaceDetails(models.PlaceDetailsRequest{Destination: "Jaipur"}, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing place name, got %v", err)
	}
	if _, err := PlaceDetails(models.PlaceDetailsRequest{PlaceName: "Fort"}, ""); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing destination, got %v", err)
	}
}

func TestBudgetOptimizationPrompt(t *testing.T) {
	plan := models.TripPlan{
		Destination: "Goa",
		Duration:    2,
		Currency:    "INR",
		Itinerary:   []models.DayPlan{{Day: 1}, {Day: 2}},
		Summary:     models.Summary{TotalCost: models.NewAmount(30000)},
	}
	p, err := BudgetOptimization(plan, 20000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"total estimated cost of 30000 INR", "limited to 20000 INR", "Current trip plan:", "must not exceed 20000"} {
		if !strings.Contains(p.Text, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	if _, err := BudgetOptimization(models.TripPlan{}, 100); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for plan without destination, got %v", err)
	}
	if _, err := BudgetOptimization(plan, -5); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for negative constraint, got %v", err)
	}
}

func TestDestinationPrompts(t *testing.T) {
	profile := models.PreferenceProfile{
		Budget:           models.BudgetRange{Min: 10000, Max: 30000},
		TimeAvailability: models.TimeAvailability{DaysAvailable: 5, PreferredSeason: "winter"},
		Interests:        []string{"beaches"},
		Transportation:   models.TransportPreference{HasOwnVehicle: true, PreferredModes: []string{"car"}},
	}
	p, err := DestinationRecommendations(profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"recommend 4 destinations", "Budget: 10000 to 30000 INR", "Has own vehicle, Prefers car", "JSON array"} {
		if !strings.Contains(p.Text, want) {
			t.Fatalf("recommendations prompt missing %q", want)
		}
	}

	g, err := DestinationGuide("Goa", profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Kind != KindDestinationGuide || !strings.Contains(g.Text, `"destination": "Goa"`) {
		t.Fatalf("guide prompt missing destination")
	}

	if _, err := DestinationGuide("", profile); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	profile.Budget = models.BudgetRange{Min: 500, Max: 100}
	if _, err := DestinationRecommendations(profile); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for inverted budget range, got %v", err)
	}
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := NormalizeCurrency(" eur ")
	if err != nil || got != "EUR" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = NormalizeCurrency("")
	if err != nil || got != models.DefaultCurrency {
		t.Fatalf("empty currency should default, got %q, %v", got, err)
	}
}
