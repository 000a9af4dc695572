package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/domain/models"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/services"
)

type itineraryBody struct {
	Itinerary []models.DayPlan `json:"itinerary"`
}

type optimizeTripBody struct {
	BudgetConstraint *int64 `json:"budgetConstraint"`
}

// POST /api/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	trip, err := h.tripService(c).Create(middleware.GetUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GET /api/trips
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.tripService(c).List(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	trip, err := h.tripService(c).Get(middleware.GetUserID(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var patch services.TripPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	trip, err := h.tripService(c).Update(middleware.GetUserID(c), id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	if err := h.tripService(c).Delete(middleware.GetUserID(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip removed"})
}

// PUT /api/trips/:id/itinerary
func (h *Handler) UpdateItinerary(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var body itineraryBody
	if !BindJSONOrError(c, &body) {
		return
	}
	if body.Itinerary == nil {
		RespondError(c, http.StatusBadRequest, "validation_error", "itinerary is required")
		return
	}
	trip, err := h.tripService(c).UpdateItinerary(middleware.GetUserID(c), id, body.Itinerary)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/generate
func (h *Handler) GenerateTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	trip, err := h.generationService(c).GenerateForTrip(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/optimize-budget
// The body is optional; without a constraint the trip budget total is used.
func (h *Handler) OptimizeTrip(c *gin.Context) {
	id, ok := tripIDParam(c)
	if !ok {
		return
	}
	var body optimizeTripBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			RespondError(c, http.StatusBadRequest, "validation_error", "invalid JSON payload: "+err.Error())
			return
		}
	}
	trip, err := h.generationService(c).OptimizeTrip(c.Request.Context(), id, body.BudgetConstraint)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
