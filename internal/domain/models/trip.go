package models

import (
	"encoding/json"
	"math"
	"time"

	"github.com/samber/lo"
)

type TripStatus string

const (
	StatusPlanning   TripStatus = "planning"
	StatusConfirmed  TripStatus = "confirmed"
	StatusInProgress TripStatus = "in-progress"
	StatusCompleted  TripStatus = "completed"
	StatusCancelled  TripStatus = "cancelled"
)

var TripStatuses = []TripStatus{StatusPlanning, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

func (s TripStatus) Valid() bool {
	return lo.Contains(TripStatuses, s)
}

const DefaultCurrency = "INR"

// Budget totals. Spent and Remaining are derived from the itinerary.
type Budget struct {
	Total     int64  `json:"total"`
	Spent     int64  `json:"spent"`
	Remaining int64  `json:"remaining"`
	Currency  string `json:"currency"`
}

type TripPreferences struct {
	TravelStyle       string   `json:"travelStyle,omitempty"`
	Transportation    []string `json:"transportation"`
	Interests         []string `json:"interests"`
	AccommodationType string   `json:"accommodationType,omitempty"`
}

type Trip struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user"`
	Destination string          `json:"destination"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	Budget      Budget          `json:"budget"`
	Preferences TripPreferences `json:"preferences"`
	Itinerary   []DayPlan       `json:"itinerary"`
	Summary     Summary         `json:"summary"`
	Status      TripStatus      `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Duration is the number of days between start and end, rounded up.
func (t Trip) Duration() int {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return 0
	}
	days := t.EndDate.Sub(t.StartDate).Hours() / 24
	return int(math.Ceil(days))
}

func (t Trip) MarshalJSON() ([]byte, error) {
	type tripJSON Trip
	return json.Marshal(struct {
		tripJSON
		Duration int `json:"duration"`
	}{tripJSON(t), t.Duration()})
}
