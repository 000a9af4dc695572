package domain

import (
	"fmt"
	"math"
	"sort"

	"tripplanner/internal/domain/models"
)

// RecomputeDayTotal overwrites day.TotalDayCost with the sum of every place,
// meal and transportation cost of that day. Accommodation is informational and
// not part of the total. Malformed or negative costs are zeroed in place and
// reported as anomalies.
func RecomputeDayTotal(day *models.DayPlan) (int64, []Anomaly) {
	var (
		total     int64
		anomalies []Anomaly
	)
	add := func(a *models.Amount, field string) {
		v, anomaly := cleanAmount(a, day.Day, field)
		if anomaly != nil {
			anomalies = append(anomalies, *anomaly)
		}
		total += v
	}

	for i := range day.Places {
		add(&day.Places[i].EstimatedCost, fmt.Sprintf("places[%d].estimatedCost", i))
	}
	for i := range day.Meals {
		add(&day.Meals[i].EstimatedCost, fmt.Sprintf("meals[%d].estimatedCost", i))
	}
	add(&day.Transportation.EstimatedCost, "transportation.estimatedCost")
	if day.Accommodation != nil {
		if _, anomaly := cleanAmount(&day.Accommodation.EstimatedCost, day.Day, "accommodation.estimatedCost"); anomaly != nil {
			anomalies = append(anomalies, *anomaly)
		}
	}

	day.TotalDayCost = models.NewAmount(total)
	return total, anomalies
}

// RecomputeTripTotals is the only writer of summary.totalCost,
// summary.averageDailyCost, budget.spent and budget.remaining. The input is
// not modified; the result depends only on the itinerary and budget.total.
func RecomputeTripTotals(trip models.Trip) (models.Trip, []Anomaly) {
	itinerary, total, anomalies := recomputeItinerary(trip.Itinerary)

	trip.Itinerary = itinerary
	trip.Summary.TotalCost = models.NewAmount(total)
	trip.Summary.AverageDailyCost = models.NewAmount(averageDaily(total, len(itinerary)))
	trip.Budget.Spent = total
	trip.Budget.Remaining = trip.Budget.Total - trip.Budget.Spent
	return trip, anomalies
}

// RecomputePlanTotals applies the same rules to a generated plan that is not
// attached to a stored trip yet.
func RecomputePlanTotals(plan models.TripPlan) (models.TripPlan, []Anomaly) {
	itinerary, total, anomalies := recomputeItinerary(plan.Itinerary)

	plan.Itinerary = itinerary
	plan.Summary.TotalCost = models.NewAmount(total)
	plan.Summary.AverageDailyCost = models.NewAmount(averageDaily(total, len(itinerary)))
	return plan, anomalies
}

func recomputeItinerary(in []models.DayPlan) ([]models.DayPlan, int64, []Anomaly) {
	out := make([]models.DayPlan, len(in))
	for i, day := range in {
		out[i] = cloneDay(day)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })

	var (
		total     int64
		anomalies []Anomaly
	)
	for i := range out {
		dayTotal, dayAnomalies := RecomputeDayTotal(&out[i])
		total += dayTotal
		anomalies = append(anomalies, dayAnomalies...)
	}
	return out, total, anomalies
}

func cloneDay(day models.DayPlan) models.DayPlan {
	if day.Places != nil {
		day.Places = append([]models.Place(nil), day.Places...)
	}
	if day.Meals != nil {
		day.Meals = append([]models.Meal(nil), day.Meals...)
	}
	if day.Accommodation != nil {
		acc := *day.Accommodation
		day.Accommodation = &acc
	}
	return day
}

func cleanAmount(a *models.Amount, day int, field string) (int64, *Anomaly) {
	switch {
	case a.Malformed():
		anomaly := &Anomaly{Day: day, Field: field, Raw: a.Raw}
		*a = models.NewAmount(0)
		return 0, anomaly
	case a.Value < 0:
		anomaly := &Anomaly{Day: day, Field: field, Raw: fmt.Sprintf("%d", a.Value)}
		*a = models.NewAmount(0)
		return 0, anomaly
	default:
		return a.Value, nil
	}
}

func averageDaily(total int64, days int) int64 {
	if days <= 0 {
		return 0
	}
	return roundMoney(float64(total) / float64(days))
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}
