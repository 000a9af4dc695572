package models

import (
	"strings"

	"github.com/samber/lo"
)

type PlaceCategory string

const (
	CategoryAttraction    PlaceCategory = "attraction"
	CategoryRestaurant    PlaceCategory = "restaurant"
	CategoryAccommodation PlaceCategory = "accommodation"
	CategoryActivity      PlaceCategory = "activity"
)

var PlaceCategories = []PlaceCategory{CategoryAttraction, CategoryRestaurant, CategoryAccommodation, CategoryActivity}

// ParsePlaceCategory matches the trimmed, lower-cased tag against the four
// known categories. Anything else is rejected.
func ParsePlaceCategory(s string) (PlaceCategory, bool) {
	c := PlaceCategory(strings.ToLower(strings.TrimSpace(s)))
	return c, lo.Contains(PlaceCategories, c)
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

func ParseMealType(s string) (MealType, bool) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	return m, lo.Contains(MealTypes, m)
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	Address       string       `json:"address,omitempty"`
	GoogleMapsURL string       `json:"googleMapsUrl,omitempty"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
}

type Place struct {
	Name                  string        `json:"name"`
	Description           string        `json:"description,omitempty"`
	Category              PlaceCategory `json:"category"`
	EstimatedCost         Amount        `json:"estimatedCost"`
	EstimatedTimeRequired Text          `json:"estimatedTimeRequired,omitempty"`
	BestTimeToVisit       string        `json:"bestTimeToVisit,omitempty"`
	Location              Location      `json:"location"`
	ImageURL              string        `json:"imageUrl,omitempty"`
	Images                []string      `json:"images,omitempty"`
	Tips                  []string      `json:"tips,omitempty"`
	CulturalSignificance  string        `json:"culturalSignificance,omitempty"`
}

type Transportation struct {
	Mode          string `json:"mode,omitempty"`
	EstimatedCost Amount `json:"estimatedCost"`
	Details       string `json:"details,omitempty"`
}

type Meal struct {
	Type          MealType `json:"type,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
	Cuisine       string   `json:"cuisine,omitempty"`
	SpecialDish   string   `json:"specialDish,omitempty"`
	EstimatedCost Amount   `json:"estimatedCost"`
	Location      string   `json:"location,omitempty"`
}

type Accommodation struct {
	Name          string   `json:"name,omitempty"`
	Type          string   `json:"type,omitempty"`
	EstimatedCost Amount   `json:"estimatedCost"`
	Location      string   `json:"location,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
}

// DayPlan is one day of an itinerary. TotalDayCost is derived and only
// written by the consistency engine.
type DayPlan struct {
	Day            int            `json:"day"`
	Places         []Place        `json:"places"`
	Transportation Transportation `json:"transportation"`
	Meals          []Meal         `json:"meals"`
	Accommodation  *Accommodation `json:"accommodation,omitempty"`
	TotalDayCost   Amount         `json:"totalDayCost"`
}

type Summary struct {
	Highlights         []string `json:"highlights"`
	TotalCost          Amount   `json:"totalCost"`
	AverageDailyCost   Amount   `json:"averageDailyCost"`
	MustTryExperiences []string `json:"mustTryExperiences"`
	BestTimeToVisit    string   `json:"bestTimeToVisit,omitempty"`
	LocalCustoms       []string `json:"localCustoms,omitempty"`
	PackingTips        []string `json:"packingTips,omitempty"`
	SafetyTips         []string `json:"safetyTips,omitempty"`
}

// TripPlan is the itinerary document produced by generation and budget
// optimization.
type TripPlan struct {
	Destination string    `json:"destination"`
	Duration    int       `json:"duration"`
	Currency    string    `json:"currency"`
	Itinerary   []DayPlan `json:"itinerary"`
	Summary     Summary   `json:"summary"`
}
