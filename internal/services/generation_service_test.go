package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/prompts"
)

const planReply = "Here is your plan:\n```json\n" + `{
  "destination": "Goa",
  "duration": 2,
  "currency": "INR",
  "itinerary": [
    {"day": 2, "places": [{"name": "Fort Aguada", "category": "Attraction", "estimatedCost": 100}],
     "transportation": {"mode": "scooter", "estimatedCost": 400},
     "meals": [{"type": "lunch", "suggestion": "Fish thali", "estimatedCost": 350}],
     "totalDayCost": 1},
    {"day": 1, "places": [{"name": "Baga Beach", "category": "activity", "estimatedCost": "free"}],
     "transportation": {"mode": "taxi", "estimatedCost": 800},
     "meals": [],
     "accommodation": {"name": "Casa", "estimatedCost": 2500},
     "totalDayCost": 5},
  ],
  "summary": {"highlights": ["beaches"], "totalCost": 3, "mustTryExperiences": []}
}` + "\n```"

func TestTripRecommendationsPipeline(t *testing.T) {
	gen := &fakeGenerator{reply: planReply}
	logs := &fakeLogs{}
	svc := GenerationService{Generator: gen, Logs: logs, UserID: 7}

	plan, err := svc.TripRecommendations(context.Background(), models.TripRequest{
		Destination: "Goa", Duration: 2, Budget: models.RequestBudget{Total: 10000},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gen.calls != 1 || gen.prompts[0].Kind != prompts.KindTripPlan {
		t.Fatalf("expected one trip plan call, got %d", gen.calls)
	}
	if plan.Itinerary[0].Day != 1 || plan.Itinerary[0].TotalDayCost.Value != 800 || plan.Itinerary[1].TotalDayCost.Value != 850 {
		t.Fatalf("days not sorted/recomputed: %+v", plan.Itinerary)
	}
	if plan.Summary.TotalCost.Value != 1650 || plan.Summary.AverageDailyCost.Value != 825 {
		t.Fatalf("summary got total=%d avg=%d", plan.Summary.TotalCost.Value, plan.Summary.AverageDailyCost.Value)
	}
	if len(logs.entries) != 1 || logs.entries[0].Outcome != models.OutcomeOK || logs.entries[0].Stage != "repaired" {
		t.Fatalf("unexpected log: %+v", logs.entries)
	}
}

func TestGenerationInvalidRequestSkipsCall(t *testing.T) {
	gen := &fakeGenerator{reply: planReply}
	svc := GenerationService{Generator: gen}

	if _, err := svc.TripRecommendations(context.Background(), models.TripRequest{Duration: 2}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.TripRecommendations(context.Background(), models.TripRequest{Destination: "Goa"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times for invalid input", gen.calls)
	}
}

func TestGenerationFailuresCarryRawResponse(t *testing.T) {
	cases := []struct {
		name    string
		reply   string
		check   func(error) bool
		outcome string
	}{
		{"no json", "Sorry, I cannot help with that.", domain.IsUnparsable, models.OutcomeUnparsable},
		{"schema", `{"itinerary": [], "summary": "none"}`, domain.IsSchemaMismatch, models.OutcomeSchemaMismatch},
	}
	for _, tc := range cases {
		logs := &fakeLogs{}
		svc := GenerationService{Generator: &fakeGenerator{reply: tc.reply}, Logs: logs}
		_, err := svc.TripRecommendations(context.Background(), models.TripRequest{Destination: "Goa", Duration: 1})
		if !tc.check(err) {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if raw, ok := domain.RawResponse(err); !ok || raw != tc.reply {
			t.Fatalf("%s: raw response not attached: %q", tc.name, raw)
		}
		if logs.entries[0].Outcome != tc.outcome || logs.entries[0].RawResponse != tc.reply {
			t.Fatalf("%s: log got %+v", tc.name, logs.entries[0])
		}
	}
}

func TestGenerationTransportErrorAndTimeout(t *testing.T) {
	svc := GenerationService{Generator: &fakeGenerator{err: domain.TransportError{Provider: "fake", Err: errors.New("503")}}}
	if _, err := svc.DestinationRecommendations(context.Background(), models.PreferenceProfile{}); !domain.IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}

	svc = GenerationService{Generator: &fakeGenerator{reply: "[]"}, Timeout: time.Second}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.DestinationRecommendations(ctx, models.PreferenceProfile{}); !domain.IsTransport(err) {
		t.Fatalf("cancelled context should surface as transport error, got %v", err)
	}
}

func TestGenerationLogFailureIsIgnored(t *testing.T) {
	svc := GenerationService{
		Generator: &fakeGenerator{reply: `[{"name": "Hampi", "description": "ruins", "totalCost": "₹12,000", "topAttractions": ["Virupaksha"]}]`},
		Logs:      &fakeLogs{fail: true},
	}
	recs, err := svc.DestinationRecommendations(context.Background(), models.PreferenceProfile{})
	if err != nil {
		t.Fatalf("log failure must not fail the request: %v", err)
	}
	if len(recs) != 1 || recs[0].TotalCost.Value != 12000 {
		t.Fatalf("unexpected recommendations: %+v", recs)
	}
}

func TestPlaceDetailsAndDestinationGuide(t *testing.T) {
	gen := &fakeGenerator{reply: `{"name": "Amber Fort", "description": "Hilltop fort", "costs": {"entryFee": 200}}`}
	svc := GenerationService{Generator: gen}
	details, err := svc.PlaceDetails(context.Background(), models.PlaceDetailsRequest{PlaceName: "Amber Fort", Destination: "Jaipur"})
	if err != nil {
		t.Fatalf("place details: %v", err)
	}
	if details.Destination != "Jaipur" || details.Costs.EntryFee != "200" {
		t.Fatalf("unexpected details: %+v", details)
	}

	gen.reply = `{"destination": "Jaipur", "overview": "Pink city", "tips": ["start early"], "food": [{"name": "Dal baati"}]}`
	guide, err := svc.DestinationDetails(context.Background(), models.DestinationDetailsRequest{Destination: "Jaipur"})
	if err != nil {
		t.Fatalf("destination details: %v", err)
	}
	if guide.Overview != "Pink city" || !strings.Contains(string(guide.Document), "Dal baati") {
		t.Fatalf("unexpected guide: %+v", guide)
	}
}

func TestGenerateForTripStoresRecomputedItinerary(t *testing.T) {
	trips := newFakeTrips(storedTrip(1, 7))
	gen := &fakeGenerator{reply: planReply}
	svc := GenerationService{Generator: gen, Trips: trips, UserID: 7}

	trip, err := svc.GenerateForTrip(context.Background(), 1)
	if err != nil {
		t.Fatalf("generate for trip: %v", err)
	}
	if !strings.Contains(gen.prompts[0].Text, "Goa") {
		t.Fatalf("prompt not built from stored trip")
	}
	if trip.Budget.Spent != 1650 || trip.Budget.Remaining != 20000-1650 || trip.Summary.TotalCost.Value != 1650 {
		t.Fatalf("totals not recomputed: %+v", trip.Budget)
	}
	if len(trips.byID[1].Itinerary) != 2 {
		t.Fatalf("itinerary not stored")
	}

	other := GenerationService{Generator: gen, Trips: trips, UserID: 8}
	if _, err := other.GenerateForTrip(context.Background(), 1); !domain.IsNotFound(err) {
		t.Fatalf("non-owner should get not found, got %v", err)
	}
}

func TestOptimizeTrip(t *testing.T) {
	stored := storedTrip(1, 7)
	trips := newFakeTrips(stored)
	svc := GenerationService{Generator: &fakeGenerator{reply: planReply}, Trips: trips, UserID: 7}

	if _, err := svc.OptimizeTrip(context.Background(), 1, nil); !domain.IsValidation(err) {
		t.Fatalf("empty itinerary should be rejected, got %v", err)
	}

	stored.Itinerary = []models.DayPlan{{Day: 1, Places: []models.Place{{Name: "Casino", Category: models.CategoryActivity, EstimatedCost: models.NewAmount(30000)}}}}
	trips.byID[1] = stored
	gen := &fakeGenerator{reply: planReply}
	svc.Generator = gen
	limit := int64(5000)
	trip, err := svc.OptimizeTrip(context.Background(), 1, &limit)
	if err != nil {
		t.Fatalf("optimize: %v", err)
	}
	if gen.prompts[0].Kind != prompts.KindBudgetOptimization || !strings.Contains(gen.prompts[0].Text, "5000") {
		t.Fatalf("unexpected prompt: %s", gen.prompts[0].Kind)
	}
	if trip.Budget.Spent != 1650 {
		t.Fatalf("optimized plan not applied: %+v", trip.Budget)
	}
}
