package services

import (
	"fmt"
	"strings"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/prompts"
	"tripplanner/internal/utils"
)

// TripService owns the trip lifecycle. Every write path runs the itinerary
// through domain.RecomputeTripTotals before it is stored.
type TripService struct {
	Trips     TripStore
	RequestID string
}

type BudgetInput struct {
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

type TripInput struct {
	Destination string                 `json:"destination"`
	StartDate   string                 `json:"startDate"`
	EndDate     string                 `json:"endDate"`
	Budget      BudgetInput            `json:"budget"`
	Preferences models.TripPreferences `json:"preferences"`
}

// BudgetPatch has no spent/remaining: those are derived.
type BudgetPatch struct {
	Total    *int64  `json:"total"`
	Currency *string `json:"currency"`
}

type PreferencesPatch struct {
	TravelStyle       *string  `json:"travelStyle"`
	Transportation    []string `json:"transportation"`
	Interests         []string `json:"interests"`
	AccommodationType *string  `json:"accommodationType"`
}

// SummaryPatch has no totalCost/averageDailyCost: those are derived.
type SummaryPatch struct {
	Highlights         []string `json:"highlights"`
	MustTryExperiences []string `json:"mustTryExperiences"`
	BestTimeToVisit    *string  `json:"bestTimeToVisit"`
	LocalCustoms       []string `json:"localCustoms"`
	PackingTips        []string `json:"packingTips"`
	SafetyTips         []string `json:"safetyTips"`
}

// TripPatch is a partial update. Nil fields keep the stored value.
type TripPatch struct {
	Destination *string           `json:"destination"`
	StartDate   *string           `json:"startDate"`
	EndDate     *string           `json:"endDate"`
	Budget      *BudgetPatch      `json:"budget"`
	Preferences *PreferencesPatch `json:"preferences"`
	Itinerary   []models.DayPlan  `json:"itinerary"`
	Summary     *SummaryPatch     `json:"summary"`
	Status      *string           `json:"status"`
}

func (s TripService) Create(userID int64, in TripInput) (models.Trip, error) {
	destination := utils.NormalizeSpace(in.Destination)
	if destination == "" {
		return models.Trip{}, domain.ValidationError{Field: "destination", Msg: "required"}
	}
	start, end, err := parseTripDates(in.StartDate, in.EndDate)
	if err != nil {
		return models.Trip{}, err
	}
	if in.Budget.Total < 0 {
		return models.Trip{}, domain.ValidationError{Field: "budget.total", Msg: "must not be negative"}
	}
	cur, err := prompts.NormalizeCurrency(in.Budget.Currency)
	if err != nil {
		return models.Trip{}, err
	}

	trip := models.Trip{
		UserID:      userID,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Budget:      models.Budget{Total: in.Budget.Total, Currency: cur},
		Preferences: normalizeTripPreferences(in.Preferences),
		Itinerary:   []models.DayPlan{},
		Summary:     models.Summary{Highlights: []string{}, MustTryExperiences: []string{}},
		Status:      models.StatusPlanning,
	}
	trip, _ = domain.RecomputeTripTotals(trip)

	trip, err = s.Trips.Create(trip)
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%d user_id=%d destination=%q", trip.ID, userID, destination))
	return trip, nil
}

func (s TripService) List(userID int64) ([]models.Trip, error) {
	return s.Trips.ListByUser(userID)
}

func (s TripService) Get(userID, tripID int64) (models.Trip, error) {
	return s.Trips.GetByID(tripID, userID)
}

func (s TripService) Update(userID, tripID int64, p TripPatch) (models.Trip, error) {
	trip, err := s.Trips.GetByID(tripID, userID)
	if err != nil {
		return models.Trip{}, err
	}

	if p.Destination != nil {
		if d := utils.NormalizeSpace(*p.Destination); d != "" {
			trip.Destination = d
		}
	}
	if p.StartDate != nil || p.EndDate != nil {
		startRaw, endRaw := utils.FormatDate(trip.StartDate), utils.FormatDate(trip.EndDate)
		if p.StartDate != nil && strings.TrimSpace(*p.StartDate) != "" {
			startRaw = *p.StartDate
		}
		if p.EndDate != nil && strings.TrimSpace(*p.EndDate) != "" {
			endRaw = *p.EndDate
		}
		start, end, err := parseTripDates(startRaw, endRaw)
		if err != nil {
			return models.Trip{}, err
		}
		trip.StartDate, trip.EndDate = start, end
	}
	if p.Budget != nil {
		if p.Budget.Total != nil {
			if *p.Budget.Total < 0 {
				return models.Trip{}, domain.ValidationError{Field: "budget.total", Msg: "must not be negative"}
			}
			trip.Budget.Total = *p.Budget.Total
		}
		if p.Budget.Currency != nil {
			cur, err := prompts.NormalizeCurrency(*p.Budget.Currency)
			if err != nil {
				return models.Trip{}, err
			}
			trip.Budget.Currency = cur
		}
	}
	if p.Preferences != nil {
		trip.Preferences = mergeTripPreferences(trip.Preferences, *p.Preferences)
	}
	if p.Itinerary != nil {
		days, err := checkItinerary(p.Itinerary)
		if err != nil {
			return models.Trip{}, err
		}
		trip.Itinerary = days
	}
	if p.Summary != nil {
		trip.Summary = mergeSummary(trip.Summary, *p.Summary)
	}
	if p.Status != nil && strings.TrimSpace(*p.Status) != "" {
		status := models.TripStatus(strings.ToLower(strings.TrimSpace(*p.Status)))
		if !status.Valid() {
			return models.Trip{}, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("unknown status %q", *p.Status)}
		}
		trip.Status = status
	}

	return s.save(trip, "update")
}

// UpdateItinerary replaces the itinerary and recomputes every derived total.
func (s TripService) UpdateItinerary(userID, tripID int64, days []models.DayPlan) (models.Trip, error) {
	if days == nil {
		return models.Trip{}, domain.ValidationError{Field: "itinerary", Msg: "required"}
	}
	checked, err := checkItinerary(days)
	if err != nil {
		return models.Trip{}, err
	}
	trip, err := s.Trips.GetByID(tripID, userID)
	if err != nil {
		return models.Trip{}, err
	}
	trip.Itinerary = checked
	return s.save(trip, "update_itinerary")
}

func (s TripService) Delete(userID, tripID int64) error {
	if err := s.Trips.Delete(tripID, userID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "trip", "delete", fmt.Sprintf("trip_id=%d user_id=%d", tripID, userID))
	return nil
}

// ApplyPlan stores a generated plan as the trip's itinerary. Descriptive
// summary fields come from the plan; totals are recomputed.
func (s TripService) ApplyPlan(trip models.Trip, plan models.TripPlan, action string) (models.Trip, error) {
	trip.Itinerary = plan.Itinerary
	trip.Summary = plan.Summary
	return s.save(trip, action)
}

func (s TripService) save(trip models.Trip, action string) (models.Trip, error) {
	trip, anomalies := domain.RecomputeTripTotals(trip)
	logAnomalies(s.RequestID, "trip", trip.ID, anomalies)

	trip, err := s.Trips.Update(trip)
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trip", action, fmt.Sprintf("trip_id=%d spent=%d remaining=%d days=%d",
		trip.ID, trip.Budget.Spent, trip.Budget.Remaining, len(trip.Itinerary)))
	return trip, nil
}

func parseTripDates(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := utils.ParseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ValidationError{Field: "startDate", Msg: "must be a date (YYYY-MM-DD)", Err: err}
	}
	end, err := utils.ParseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.ValidationError{Field: "endDate", Msg: "must be a date (YYYY-MM-DD)", Err: err}
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, domain.ValidationError{Field: "endDate", Msg: "must be after startDate"}
	}
	return start, end, nil
}

// checkItinerary applies the day and tag rules of generated plans to a
// client-supplied itinerary and canonicalizes the tags.
func checkItinerary(days []models.DayPlan) ([]models.DayPlan, error) {
	out := make([]models.DayPlan, len(days))
	seen := make(map[int]bool, len(days))
	for i, day := range days {
		field := fmt.Sprintf("itinerary[%d]", i)
		if day.Day < 1 {
			return nil, domain.ValidationError{Field: field + ".day", Msg: "must be at least 1"}
		}
		if seen[day.Day] {
			return nil, domain.ValidationError{Field: field + ".day", Msg: fmt.Sprintf("duplicate day %d", day.Day)}
		}
		seen[day.Day] = true

		day.Places = append([]models.Place{}, day.Places...)
		for j, p := range day.Places {
			if strings.TrimSpace(p.Name) == "" {
				return nil, domain.ValidationError{Field: fmt.Sprintf("%s.places[%d].name", field, j), Msg: "required"}
			}
			c, ok := models.ParsePlaceCategory(string(p.Category))
			if !ok {
				return nil, domain.ValidationError{Field: fmt.Sprintf("%s.places[%d].category", field, j), Msg: fmt.Sprintf("unknown category %q", p.Category)}
			}
			day.Places[j].Category = c
		}
		day.Meals = append([]models.Meal{}, day.Meals...)
		for j, m := range day.Meals {
			if strings.TrimSpace(string(m.Type)) == "" {
				continue
			}
			t, ok := models.ParseMealType(string(m.Type))
			if !ok {
				return nil, domain.ValidationError{Field: fmt.Sprintf("%s.meals[%d].type", field, j), Msg: fmt.Sprintf("unknown meal type %q", m.Type)}
			}
			day.Meals[j].Type = t
		}
		out[i] = day
	}
	for n := 1; n <= len(days); n++ {
		if !seen[n] {
			return nil, domain.ValidationError{Field: "itinerary", Msg: fmt.Sprintf("days must be contiguous from 1, day %d missing", n)}
		}
	}
	return out, nil
}

func normalizeTripPreferences(p models.TripPreferences) models.TripPreferences {
	p.TravelStyle = strings.ToLower(strings.TrimSpace(p.TravelStyle))
	p.AccommodationType = strings.TrimSpace(p.AccommodationType)
	p.Transportation = utils.CleanList(p.Transportation)
	p.Interests = utils.CleanList(p.Interests)
	return p
}

func mergeTripPreferences(cur models.TripPreferences, p PreferencesPatch) models.TripPreferences {
	if p.TravelStyle != nil {
		cur.TravelStyle = *p.TravelStyle
	}
	if p.Transportation != nil {
		cur.Transportation = p.Transportation
	}
	if p.Interests != nil {
		cur.Interests = p.Interests
	}
	if p.AccommodationType != nil {
		cur.AccommodationType = *p.AccommodationType
	}
	return normalizeTripPreferences(cur)
}

func mergeSummary(cur models.Summary, p SummaryPatch) models.Summary {
	if p.Highlights != nil {
		cur.Highlights = p.Highlights
	}
	if p.MustTryExperiences != nil {
		cur.MustTryExperiences = p.MustTryExperiences
	}
	if p.BestTimeToVisit != nil {
		cur.BestTimeToVisit = strings.TrimSpace(*p.BestTimeToVisit)
	}
	if p.LocalCustoms != nil {
		cur.LocalCustoms = p.LocalCustoms
	}
	if p.PackingTips != nil {
		cur.PackingTips = p.PackingTips
	}
	if p.SafetyTips != nil {
		cur.SafetyTips = p.SafetyTips
	}
	return cur
}

func logAnomalies(requestID, module string, tripID int64, anomalies []domain.Anomaly) {
	for _, a := range anomalies {
		utils.LogEvent(requestID, module, "cost_anomaly", fmt.Sprintf("trip_id=%d day=%d field=%s raw=%q", tripID, a.Day, a.Field, a.Raw))
	}
}
