package models

type RequestBudget struct {
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

type TimeAvailability struct {
	DaysAvailable   int    `json:"daysAvailable"`
	PreferredSeason string `json:"preferredSeason"`
}

// TripRequest is the input of itinerary generation. It is never persisted.
type TripRequest struct {
	Destination       string           `json:"destination"`
	Duration          int              `json:"duration"`
	Budget            RequestBudget    `json:"budget"`
	TravelStyle       string           `json:"travelStyle"`
	Transportation    []string         `json:"transportation"`
	Interests         []string         `json:"interests"`
	AccommodationType string           `json:"accommodationType"`
	HasOwnVehicle     bool             `json:"hasOwnVehicle"`
	TimeAvailability  TimeAvailability `json:"timeAvailability"`
}

type PlaceDetailsRequest struct {
	PlaceName   string   `json:"placeName"`
	Destination string   `json:"destination"`
	Interests   []string `json:"interests"`
	Currency    string   `json:"currency"`
}

type OptimizeBudgetRequest struct {
	TripPlan         TripPlan `json:"tripPlan"`
	BudgetConstraint int64    `json:"budgetConstraint"`
}

type TransportPreference struct {
	HasOwnVehicle  bool     `json:"hasOwnVehicle"`
	PreferredModes []string `json:"preferredModes"`
}

// PreferenceProfile is what the onboarding flow collects before any trip
// exists.
type PreferenceProfile struct {
	Budget           BudgetRange         `json:"budget"`
	Currency         string              `json:"currency"`
	TimeAvailability TimeAvailability    `json:"timeAvailability"`
	Interests        []string            `json:"interests"`
	Transportation   TransportPreference `json:"transportation"`
}

type DestinationDetailsRequest struct {
	Destination string            `json:"destination"`
	Preferences PreferenceProfile `json:"preferences"`
}
