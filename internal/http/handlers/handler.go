package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/cache"
	"tripplanner/internal/genai"
	"tripplanner/internal/http/middleware"
	"tripplanner/internal/services"
)

// Handler carries the dependencies shared by the API handlers. Services are
// built per request so they log with that request's id.
type Handler struct {
	Trips        services.TripStore
	Users        services.UserStore
	Logs         services.GenerationLogStore
	Generator    genai.Generator
	Cache        cache.Store
	JWTSecret    []byte
	GenAITimeout time.Duration
}

func (h *Handler) userService(c *gin.Context) services.UserService {
	return services.UserService{
		Users:     h.Users,
		Cache:     h.Cache,
		JWTSecret: h.JWTSecret,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) tripService(c *gin.Context) services.TripService {
	return services.TripService{Trips: h.Trips, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) generationService(c *gin.Context) services.GenerationService {
	return services.GenerationService{
		Generator: h.Generator,
		Trips:     h.Trips,
		Logs:      h.Logs,
		Timeout:   h.GenAITimeout,
		UserID:    middleware.GetUserID(c),
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) exportService(c *gin.Context) services.ExportService {
	return services.ExportService{Trips: h.Trips, RequestID: middleware.GetRequestID(c)}
}
