package models

import "time"

// Outcomes recorded for a generation call.
const (
	OutcomeOK             = "ok"
	OutcomeInvalid        = "invalid_request"
	OutcomeTransportError = "transport_error"
	OutcomeUnparsable     = "unparsable"
	OutcomeSchemaMismatch = "schema_mismatch"
)

// GenerationLog is one prompt/response exchange with the generative client,
// kept for diagnosing bad model output.
type GenerationLog struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"userId"`
	TripID      int64     `json:"tripId,omitempty"`
	Kind        string    `json:"kind"`
	Provider    string    `json:"provider"`
	Prompt      string    `json:"prompt"`
	RawResponse string    `json:"rawResponse"`
	Outcome     string    `json:"outcome"`
	Stage       string    `json:"stage,omitempty"`
	ErrorText   string    `json:"error,omitempty"`
	LatencyMS   int64     `json:"latencyMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
