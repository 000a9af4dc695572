package domain

// Anomaly records a cost value the consistency engine refused to trust.
type Anomaly struct {
	Day   int    `json:"day"`
	Field string `json:"field"`
	Raw   string `json:"raw"`
}
