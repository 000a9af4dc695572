package services

import (
	"context"
	"fmt"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"
	"tripplanner/internal/extract"
	"tripplanner/internal/genai"
	"tripplanner/internal/prompts"
	"tripplanner/internal/utils"
)

const DefaultGenerationTimeout = 60 * time.Second

// GenerationService runs one request through prompt building, the
// generative client, extraction and the consistency engine. Each call makes
// exactly one generation attempt.
type GenerationService struct {
	Generator genai.Generator
	Trips     TripStore
	Logs      GenerationLogStore
	Timeout   time.Duration
	UserID    int64
	RequestID string
}

// decodeFunc turns raw model text into the typed result held by the caller.
type decodeFunc func(raw string) (extract.Stage, error)

func (s GenerationService) TripRecommendations(ctx context.Context, req models.TripRequest) (models.TripPlan, error) {
	p, err := prompts.TripPlan(req)
	if err != nil {
		return models.TripPlan{}, err
	}
	plan, err := s.generatePlan(ctx, p, 0)
	if err != nil {
		return models.TripPlan{}, err
	}
	return fillPlanHead(plan, req.Destination, req.Duration, req.Budget.Currency), nil
}

func (s GenerationService) PlaceDetails(ctx context.Context, req models.PlaceDetailsRequest) (models.PlaceDetails, error) {
	p, err := prompts.PlaceDetails(req, req.Currency)
	if err != nil {
		return models.PlaceDetails{}, err
	}
	var details models.PlaceDetails
	err = s.run(ctx, p, 0, func(raw string) (extract.Stage, error) {
		var stage extract.Stage
		var err error
		details, stage, err = extract.DecodePlaceDetails(raw)
		return stage, err
	})
	if err != nil {
		return models.PlaceDetails{}, err
	}
	if details.Destination == "" {
		details.Destination = req.Destination
	}
	return details, nil
}

// OptimizeBudget returns a revised plan for a free-standing trip plan. The
// answer is validated exactly like an initial plan.
func (s GenerationService) OptimizeBudget(ctx context.Context, req models.OptimizeBudgetRequest) (models.TripPlan, error) {
	p, err := prompts.BudgetOptimization(req.TripPlan, req.BudgetConstraint)
	if err != nil {
		return models.TripPlan{}, err
	}
	plan, err := s.generatePlan(ctx, p, 0)
	if err != nil {
		return models.TripPlan{}, err
	}
	return fillPlanHead(plan, req.TripPlan.Destination, req.TripPlan.Duration, req.TripPlan.Currency), nil
}

func (s GenerationService) DestinationRecommendations(ctx context.Context, profile models.PreferenceProfile) ([]models.DestinationRecommendation, error) {
	p, err := prompts.DestinationRecommendations(profile)
	if err != nil {
		return nil, err
	}
	var recs []models.DestinationRecommendation
	err = s.run(ctx, p, 0, func(raw string) (extract.Stage, error) {
		var stage extract.Stage
		var err error
		recs, stage, err = extract.DecodeRecommendations(raw)
		return stage, err
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (s GenerationService) DestinationDetails(ctx context.Context, req models.DestinationDetailsRequest) (models.DestinationGuide, error) {
	p, err := prompts.DestinationGuide(req.Destination, req.Preferences)
	if err != nil {
		return models.DestinationGuide{}, err
	}
	var guide models.DestinationGuide
	err = s.run(ctx, p, 0, func(raw string) (extract.Stage, error) {
		var stage extract.Stage
		var err error
		guide, stage, err = extract.DecodeDestinationGuide(raw)
		return stage, err
	})
	if err != nil {
		return models.DestinationGuide{}, err
	}
	return guide, nil
}

// GenerateForTrip builds an itinerary for a stored trip from its own
// destination, dates, budget and preferences, then stores it.
func (s GenerationService) GenerateForTrip(ctx context.Context, tripID int64) (models.Trip, error) {
	trip, err := s.Trips.GetByID(tripID, s.UserID)
	if err != nil {
		return models.Trip{}, err
	}
	req := tripRequestFromTrip(trip)
	p, err := prompts.TripPlan(req)
	if err != nil {
		return models.Trip{}, err
	}
	plan, err := s.generatePlan(ctx, p, trip.ID)
	if err != nil {
		return models.Trip{}, err
	}
	return s.tripService().ApplyPlan(trip, plan, "generate")
}

// OptimizeTrip revises the stored itinerary against budgetConstraint, or the
// trip's own budget total when nil.
func (s GenerationService) OptimizeTrip(ctx context.Context, tripID int64, budgetConstraint *int64) (models.Trip, error) {
	trip, err := s.Trips.GetByID(tripID, s.UserID)
	if err != nil {
		return models.Trip{}, err
	}
	if len(trip.Itinerary) == 0 {
		return models.Trip{}, domain.ValidationError{Field: "itinerary", Msg: "trip has no itinerary to optimize"}
	}
	constraint := trip.Budget.Total
	if budgetConstraint != nil {
		constraint = *budgetConstraint
	}

	current := models.TripPlan{
		Destination: trip.Destination,
		Duration:    len(trip.Itinerary),
		Currency:    trip.Budget.Currency,
		Itinerary:   trip.Itinerary,
		Summary:     trip.Summary,
	}
	p, err := prompts.BudgetOptimization(current, constraint)
	if err != nil {
		return models.Trip{}, err
	}
	plan, err := s.generatePlan(ctx, p, trip.ID)
	if err != nil {
		return models.Trip{}, err
	}
	return s.tripService().ApplyPlan(trip, plan, "optimize_budget")
}

func (s GenerationService) generatePlan(ctx context.Context, p prompts.Prompt, tripID int64) (models.TripPlan, error) {
	var plan models.TripPlan
	err := s.run(ctx, p, tripID, func(raw string) (extract.Stage, error) {
		var stage extract.Stage
		var err error
		plan, stage, err = extract.DecodeTripPlan(raw)
		return stage, err
	})
	if err != nil {
		return models.TripPlan{}, err
	}
	plan, anomalies := domain.RecomputePlanTotals(plan)
	logAnomalies(s.RequestID, "generation", tripID, anomalies)
	return plan, nil
}

// run makes the single generation call under the configured timeout, hands
// the raw text to decode and records the exchange.
func (s GenerationService) run(ctx context.Context, p prompts.Prompt, tripID int64, decode decodeFunc) error {
	if s.Generator == nil {
		return domain.TransportError{Err: fmt.Errorf("generative client is not configured")}
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	entry := models.GenerationLog{
		UserID:   s.UserID,
		TripID:   tripID,
		Kind:     string(p.Kind),
		Provider: s.Generator.Provider(),
		Prompt:   p.Text,
	}

	start := time.Now()
	raw, err := s.Generator.Generate(callCtx, p)
	entry.LatencyMS = time.Since(start).Milliseconds()
	entry.RawResponse = raw
	if err != nil {
		entry.Outcome = models.OutcomeTransportError
		entry.ErrorText = err.Error()
		s.record(entry)
		utils.LogEvent(s.RequestID, "generation", string(p.Kind), fmt.Sprintf("outcome=%s latency_ms=%d err=%v", entry.Outcome, entry.LatencyMS, err))
		return err
	}

	stage, err := decode(raw)
	entry.Stage = string(stage)
	switch {
	case err == nil:
		entry.Outcome = models.OutcomeOK
	case domain.IsSchemaMismatch(err):
		entry.Outcome = models.OutcomeSchemaMismatch
	default:
		entry.Outcome = models.OutcomeUnparsable
	}
	if err != nil {
		entry.ErrorText = err.Error()
	}
	s.record(entry)
	utils.LogEvent(s.RequestID, "generation", string(p.Kind), fmt.Sprintf("outcome=%s stage=%s latency_ms=%d", entry.Outcome, stage, entry.LatencyMS))
	return err
}

// record never fails the request.
func (s GenerationService) record(entry models.GenerationLog) {
	if s.Logs == nil {
		return
	}
	if _, err := s.Logs.Insert(entry); err != nil {
		utils.LogEvent(s.RequestID, "generation", "log_failed", err.Error())
	}
}

func (s GenerationService) tripService() TripService {
	return TripService{Trips: s.Trips, RequestID: s.RequestID}
}

func tripRequestFromTrip(t models.Trip) models.TripRequest {
	duration := t.Duration()
	if duration < 1 {
		duration = 1
	}
	return models.TripRequest{
		Destination:       t.Destination,
		Duration:          duration,
		Budget:            models.RequestBudget{Total: t.Budget.Total, Currency: t.Budget.Currency},
		TravelStyle:       t.Preferences.TravelStyle,
		Transportation:    t.Preferences.Transportation,
		Interests:         t.Preferences.Interests,
		AccommodationType: t.Preferences.AccommodationType,
		TimeAvailability:  models.TimeAvailability{DaysAvailable: duration},
	}
}

// fillPlanHead sets the plan's destination, duration and currency from the
// request when the model left them out.
func fillPlanHead(plan models.TripPlan, destination string, duration int, currency string) models.TripPlan {
	if plan.Destination == "" {
		plan.Destination = destination
	}
	if plan.Duration < 1 {
		plan.Duration = duration
		if plan.Duration < 1 {
			plan.Duration = len(plan.Itinerary)
		}
	}
	if plan.Currency == "" {
		if cur, err := prompts.NormalizeCurrency(currency); err == nil {
			plan.Currency = cur
		}
	}
	return plan
}
