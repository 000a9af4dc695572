package domain

import (
	"encoding/json"
	"reflect"
	"testing"

	"tripplanner/internal/domain/models"
)

func sampleTrip() models.Trip {
	return models.Trip{
		Destination: "Jaipur",
		Budget:      models.Budget{Total: 20000, Spent: 999, Remaining: 1, Currency: "INR"},
		Itinerary: []models.DayPlan{
			{
				Day: 2,
				Places: []models.Place{
					{Name: "Hawa Mahal", Category: models.CategoryAttraction, EstimatedCost: models.NewAmount(200)},
				},
				Transportation: models.Transportation{Mode: "auto", EstimatedCost: models.NewAmount(150)},
				Meals: []models.Meal{
					{Type: models.MealDinner, EstimatedCost: models.NewAmount(600)},
				},
				TotalDayCost: models.NewAmount(1),
			},
			{
				Day: 1,
				Places: []models.Place{
					{Name: "Amber Fort", Category: models.CategoryAttraction, EstimatedCost: models.NewAmount(500)},
					{Name: "City Palace", Category: models.CategoryAttraction, EstimatedCost: models.NewAmount(700)},
				},
				Transportation: models.Transportation{Mode: "taxi", EstimatedCost: models.NewAmount(400)},
				Meals: []models.Meal{
					{Type: models.MealBreakfast, EstimatedCost: models.NewAmount(150)},
					{Type: models.MealLunch, EstimatedCost: models.NewAmount(350)},
				},
				Accommodation: &models.Accommodation{Name: "Haveli", EstimatedCost: models.NewAmount(2000)},
				TotalDayCost:  models.NewAmount(99999),
			},
		},
	}
}

func TestRecomputeDayTotalSumsPlacesMealsTransport(t *testing.T) {
	day := sampleTrip().Itinerary[1]

	total, anomalies := RecomputeDayTotal(&day)
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %+v", anomalies)
	}
	want := int64(500 + 700 + 400 + 150 + 350)
	if total != want {
		t.Fatalf("total mismatch: got %d want %d", total, want)
	}
	if day.TotalDayCost.Value != want {
		t.Fatalf("totalDayCost not overwritten: got %d", day.TotalDayCost.Value)
	}
}

func TestRecomputeDayTotalMissingCostsCountAsZero(t *testing.T) {
	day := models.DayPlan{
		Day:    1,
		Places: []models.Place{{Name: "Beach", Category: models.CategoryActivity}},
		Meals:  []models.Meal{{Type: models.MealSnack}},
	}
	total, anomalies := RecomputeDayTotal(&day)
	if total != 0 || len(anomalies) != 0 {
		t.Fatalf("expected zero total without anomalies, got %d %+v", total, anomalies)
	}
}

func TestRecomputeTripTotalsSumAndBudgetInvariant(t *testing.T) {
	trip, anomalies := RecomputeTripTotals(sampleTrip())
	if len(anomalies) != 0 {
		t.Fatalf("unexpected anomalies: %+v", anomalies)
	}

	if trip.Itinerary[0].Day != 1 || trip.Itinerary[1].Day != 2 {
		t.Fatalf("itinerary not sorted by day: %d, %d", trip.Itinerary[0].Day, trip.Itinerary[1].Day)
	}

	var sum int64
	for _, day := range trip.Itinerary {
		var components int64
		for _, p := range day.Places {
			components += p.EstimatedCost.Value
		}
		for _, m := range day.Meals {
			components += m.EstimatedCost.Value
		}
		components += day.Transportation.EstimatedCost.Value
		if day.TotalDayCost.Value != components {
			t.Fatalf("day %d total %d != components %d", day.Day, day.TotalDayCost.Value, components)
		}
		sum += day.TotalDayCost.Value
	}

	if trip.Summary.TotalCost.Value != sum {
		t.Fatalf("summary.totalCost %d != sum %d", trip.Summary.TotalCost.Value, sum)
	}
	if trip.Budget.Spent != sum {
		t.Fatalf("budget.spent %d != %d", trip.Budget.Spent, sum)
	}
	if trip.Budget.Remaining != trip.Budget.Total-trip.Budget.Spent {
		t.Fatalf("remaining %d != total-spent %d", trip.Budget.Remaining, trip.Budget.Total-trip.Budget.Spent)
	}
	if trip.Summary.AverageDailyCost.Value != sum/2 {
		t.Fatalf("averageDailyCost got %d want %d", trip.Summary.AverageDailyCost.Value, sum/2)
	}
}

func TestRecomputeTripTotalsIdempotent(t *testing.T) {
	once, _ := RecomputeTripTotals(sampleTrip())
	twice, anomalies := RecomputeTripTotals(once)
	if len(anomalies) != 0 {
		t.Fatalf("second pass reported anomalies: %+v", anomalies)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("recompute is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestRecomputeTripTotalsDoesNotMutateInput(t *testing.T) {
	in := sampleTrip()
	in.Itinerary[1].Places[0].EstimatedCost = models.NewAmount(-50)

	_, anomalies := RecomputeTripTotals(in)
	if len(anomalies) != 1 {
		t.Fatalf("expected one anomaly, got %+v", anomalies)
	}
	if in.Itinerary[1].Places[0].EstimatedCost.Value != -50 {
		t.Fatalf("input place cost mutated to %d", in.Itinerary[1].Places[0].EstimatedCost.Value)
	}
	if in.Itinerary[0].Day != 2 {
		t.Fatalf("input itinerary order mutated")
	}
}

func TestRecomputeTripTotalsZeroesMalformedCosts(t *testing.T) {
	var day models.DayPlan
	raw := `{"day":1,"places":[{"name":"Fort","category":"attraction","estimatedCost":"free entry"}],
		"transportation":{"mode":"bus","estimatedCost":-30},
		"meals":[{"type":"lunch","estimatedCost":"₹1,200"}]}`
	if err := json.Unmarshal([]byte(raw), &day); err != nil {
		t.Fatalf("unmarshal day: %v", err)
	}

	trip, anomalies := RecomputeTripTotals(models.Trip{Budget: models.Budget{Total: 5000}, Itinerary: []models.DayPlan{day}})
	if len(anomalies) != 2 {
		t.Fatalf("expected 2 anomalies, got %+v", anomalies)
	}
	if anomalies[0].Field != "places[0].estimatedCost" || anomalies[0].Raw != "free entry" {
		t.Fatalf("unexpected first anomaly: %+v", anomalies[0])
	}
	if anomalies[1].Field != "transportation.estimatedCost" {
		t.Fatalf("unexpected second anomaly: %+v", anomalies[1])
	}
	if trip.Summary.TotalCost.Value != 1200 {
		t.Fatalf("total got %d want 1200", trip.Summary.TotalCost.Value)
	}
	if trip.Budget.Remaining != 3800 {
		t.Fatalf("remaining got %d want 3800", trip.Budget.Remaining)
	}
	if trip.Itinerary[0].Places[0].EstimatedCost.Malformed() || trip.Itinerary[0].Transportation.EstimatedCost.Value != 0 {
		t.Fatalf("malformed costs were not normalized")
	}
}

func TestRecomputeTripTotalsBudgetEdgeValues(t *testing.T) {
	cases := []struct {
		name  string
		total int64
		cost  int64
	}{
		{"zero budget zero cost", 0, 0},
		{"zero budget with cost", 0, 450},
		{"over budget", 100, 250},
		{"large values", 1 << 50, 1 << 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip := models.Trip{
				Budget: models.Budget{Total: tc.total},
				Itinerary: []models.DayPlan{{
					Day:            1,
					Transportation: models.Transportation{EstimatedCost: models.NewAmount(tc.cost)},
				}},
			}
			got, _ := RecomputeTripTotals(trip)
			if got.Budget.Spent != tc.cost {
				t.Fatalf("spent got %d want %d", got.Budget.Spent, tc.cost)
			}
			if got.Budget.Remaining != tc.total-tc.cost {
				t.Fatalf("remaining got %d want %d", got.Budget.Remaining, tc.total-tc.cost)
			}
		})
	}
}

func TestRecomputeTripTotalsEmptyItinerary(t *testing.T) {
	got, _ := RecomputeTripTotals(models.Trip{Budget: models.Budget{Total: 1000, Spent: 300, Remaining: 0}})
	if got.Budget.Spent != 0 || got.Budget.Remaining != 1000 {
		t.Fatalf("empty itinerary should reset spent/remaining, got %+v", got.Budget)
	}
	if got.Summary.TotalCost.Value != 0 || got.Summary.AverageDailyCost.Value != 0 {
		t.Fatalf("empty itinerary should zero summary, got %+v", got.Summary)
	}
}

func TestRecomputePlanTotals(t *testing.T) {
	plan := models.TripPlan{
		Destination: "Goa",
		Itinerary: []models.DayPlan{
			{Day: 1, Meals: []models.Meal{{EstimatedCost: models.NewAmount(300)}}, TotalDayCost: models.NewAmount(5)},
			{Day: 2, Meals: []models.Meal{{EstimatedCost: models.NewAmount(400)}}},
		},
		Summary: models.Summary{TotalCost: models.NewAmount(15000)},
	}
	got, _ := RecomputePlanTotals(plan)
	if got.Summary.TotalCost.Value != 700 {
		t.Fatalf("plan total got %d want 700", got.Summary.TotalCost.Value)
	}
	if got.Summary.AverageDailyCost.Value != 350 {
		t.Fatalf("plan average got %d want 350", got.Summary.AverageDailyCost.Value)
	}
}
