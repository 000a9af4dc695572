package models

import (
	"time"

	"github.com/samber/lo"
)

var TravelStyles = []string{"adventure", "relaxation", "cultural", "foodie", "budget", "luxury"}

const DefaultTravelStyle = "adventure"

var DefaultTransportation = []string{"walking", "public transport"}

func ValidTravelStyle(s string) bool {
	return lo.Contains(TravelStyles, s)
}

type BudgetRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type UserPreferences struct {
	BudgetRange             BudgetRange `json:"budgetRange"`
	TravelStyle             string      `json:"travelStyle"`
	PreferredTransportation []string    `json:"preferredTransportation"`
	Interests               []string    `json:"interests"`
}

type User struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Preferences  UserPreferences `json:"preferences"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
