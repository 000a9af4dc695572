package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "tripplanner/internal/config"
	h "tripplanner/internal/http/handlers"
	"tripplanner/internal/http/middleware"
)

// NewRouter wires every route. done stops the rate limiter cleanup loop.
func NewRouter(env intconfig.Env, hd *h.Handler, done <-chan struct{}) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"message":    "route not found",
			"code":       "not_found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/users", hd.Register)
		api.POST("/users/login", hd.Login)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(hd.JWTSecret))

		users := protected.Group("/users")
		users.GET("/profile", hd.GetProfile)
		users.PUT("/profile", hd.UpdateProfile)

		genLimit := middleware.RateLimit(env.GenAIRatePerMin, env.GenAIRateBurst, done)

		trips := protected.Group("/trips")
		trips.POST("", hd.CreateTrip)
		trips.GET("", hd.ListTrips)
		trips.GET("/:id", hd.GetTrip)
		trips.PUT("/:id", hd.UpdateTrip)
		trips.DELETE("/:id", hd.DeleteTrip)
		trips.PUT("/:id/itinerary", hd.UpdateItinerary)
		trips.POST("/:id/generate", genLimit, hd.GenerateTrip)
		trips.POST("/:id/optimize-budget", genLimit, hd.OptimizeTrip)
		trips.GET("/:id/export/pdf", hd.ExportPDF)
		trips.GET("/:id/export/ics", hd.ExportICS)
		trips.GET("/:id/export/csv", hd.ExportCSV)

		gemini := protected.Group("/gemini")
		gemini.Use(genLimit)
		gemini.POST("/trip-recommendations", hd.TripRecommendations)
		gemini.POST("/place-details", hd.PlaceDetails)
		gemini.POST("/optimize-budget", hd.OptimizeBudget)
		gemini.POST("/destination-recommendations", hd.DestinationRecommendations)
		gemini.POST("/destination-details", hd.DestinationDetails)
	}

	h.SetRouter(r)
	return r
}
