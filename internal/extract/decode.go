package extract

import (
	"encoding/json"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
)

// DecodeTripPlan extracts, validates and decodes an itinerary document.
// Initial generation and budget optimization both go through here.
func DecodeTripPlan(raw string) (models.TripPlan, Stage, error) {
	var plan models.TripPlan
	res, err := Extract(raw, KindObject)
	if err != nil {
		return plan, "", err
	}
	if err := ValidateTripPlan(res.Value, raw); err != nil {
		return plan, res.Stage, err
	}
	if err := json.Unmarshal(res.Value, &plan); err != nil {
		return models.TripPlan{}, res.Stage, domain.SchemaError{Msg: "itinerary has wrong field types", Raw: raw, Err: err}
	}
	normalizePlan(&plan)
	return plan, res.Stage, nil
}

func DecodeRecommendations(raw string) ([]models.DestinationRecommendation, Stage, error) {
	res, err := Extract(raw, KindArray)
	if err != nil {
		return nil, "", err
	}
	if err := ValidateRecommendations(res.Value, raw); err != nil {
		return nil, res.Stage, err
	}
	var recs []models.DestinationRecommendation
	if err := json.Unmarshal(res.Value, &recs); err != nil {
		return nil, res.Stage, domain.SchemaError{Msg: "recommendations have wrong field types", Raw: raw, Err: err}
	}
	return recs, res.Stage, nil
}

func DecodePlaceDetails(raw string) (models.PlaceDetails, Stage, error) {
	var details models.PlaceDetails
	res, err := Extract(raw, KindObject)
	if err != nil {
		return details, "", err
	}
	if err := ValidatePlaceDetails(res.Value, raw); err != nil {
		return details, res.Stage, err
	}
	if err := json.Unmarshal(res.Value, &details); err != nil {
		return models.PlaceDetails{}, res.Stage, domain.SchemaError{Msg: "place details have wrong field types", Raw: raw, Err: err}
	}
	return details, res.Stage, nil
}

func DecodeDestinationGuide(raw string) (models.DestinationGuide, Stage, error) {
	var guide models.DestinationGuide
	res, err := Extract(raw, KindObject)
	if err != nil {
		return guide, "", err
	}
	if err := ValidateDestinationGuide(res.Value, raw); err != nil {
		return guide, res.Stage, err
	}
	if err := json.Unmarshal(res.Value, &guide); err != nil {
		return models.DestinationGuide{}, res.Stage, domain.SchemaError{Msg: "destination guide has wrong field types", Raw: raw, Err: err}
	}
	guide.Document = res.Value
	return guide, res.Stage, nil
}

// normalizePlan rewrites category and meal tags to their canonical form.
// Validation already rejected unknown tags.
func normalizePlan(plan *models.TripPlan) {
	for i := range plan.Itinerary {
		day := &plan.Itinerary[i]
		for j := range day.Places {
			if c, ok := models.ParsePlaceCategory(string(day.Places[j].Category)); ok {
				day.Places[j].Category = c
			}
		}
		for j := range day.Meals {
			if m, ok := models.ParseMealType(string(day.Meals[j].Type)); ok {
				day.Meals[j].Type = m
			}
		}
	}
}
