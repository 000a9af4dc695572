package models

import "encoding/json"

type DestinationRecommendation struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TotalCost       Amount   `json:"totalCost"`
	BestTimeToVisit string   `json:"bestTimeToVisit,omitempty"`
	TopAttractions  []string `json:"topAttractions"`
}

type PlaceCosts struct {
	EntryFee   Text   `json:"entryFee,omitempty"`
	GuidedTour Text   `json:"guidedTour,omitempty"`
	AudioGuide Text   `json:"audioGuide,omitempty"`
	OtherFees  []Text `json:"otherFees,omitempty"`
}

type PlaceTiming struct {
	BestTimeOfDay Text `json:"bestTimeOfDay,omitempty"`
	BestSeason    Text `json:"bestSeason,omitempty"`
	OpeningHours  Text `json:"openingHours,omitempty"`
	TimeRequired  Text `json:"timeRequired,omitempty"`
}

type Nearby struct {
	Attractions []string `json:"attractions,omitempty"`
	Restaurants []string `json:"restaurants,omitempty"`
	Shopping    []string `json:"shopping,omitempty"`
}

type PlaceDetails struct {
	Name            string      `json:"name"`
	Destination     string      `json:"destination,omitempty"`
	Description     string      `json:"description"`
	History         string      `json:"history,omitempty"`
	Significance    string      `json:"significance,omitempty"`
	WhyVisit        []string    `json:"whyVisit,omitempty"`
	Costs           PlaceCosts  `json:"costs"`
	Timing          PlaceTiming `json:"timing"`
	Tips            []string    `json:"tips,omitempty"`
	Nearby          Nearby      `json:"nearby"`
	CulturalNotes   []string    `json:"culturalNotes,omitempty"`
	PhotographyTips []string    `json:"photographyTips,omitempty"`
	Accessibility   string      `json:"accessibility,omitempty"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	GoogleMapsURL   string      `json:"googleMapsUrl,omitempty"`
}

// DestinationGuide keeps the typed head of a guide next to the full
// validated document, which carries many optional nested sections.
type DestinationGuide struct {
	Destination     string          `json:"destination"`
	Overview        string          `json:"overview"`
	BestTimeToVisit Text            `json:"bestTimeToVisit,omitempty"`
	DaysRecommended Text            `json:"daysRecommended,omitempty"`
	Tips            []string        `json:"tips,omitempty"`
	Document        json.RawMessage `json:"-"`
}
