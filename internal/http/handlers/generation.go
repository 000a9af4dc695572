package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/domain/models"
)

// POST /api/gemini/trip-recommendations
func (h *Handler) TripRecommendations(c *gin.Context) {
	var req models.TripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	plan, err := h.generationService(c).TripRecommendations(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /api/gemini/place-details
func (h *Handler) PlaceDetails(c *gin.Context) {
	var req models.PlaceDetailsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	details, err := h.generationService(c).PlaceDetails(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// POST /api/gemini/optimize-budget
func (h *Handler) OptimizeBudget(c *gin.Context) {
	var req models.OptimizeBudgetRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	plan, err := h.generationService(c).OptimizeBudget(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /api/gemini/destination-recommendations
func (h *Handler) DestinationRecommendations(c *gin.Context) {
	var profile models.PreferenceProfile
	if !BindJSONOrError(c, &profile) {
		return
	}
	recs, err := h.generationService(c).DestinationRecommendations(c.Request.Context(), profile)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// POST /api/gemini/destination-details
func (h *Handler) DestinationDetails(c *gin.Context) {
	var req models.DestinationDetailsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	guide, err := h.generationService(c).DestinationDetails(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, guide)
}
