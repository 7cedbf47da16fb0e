package app

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"bookingdesk/internal/handler"
	"bookingdesk/internal/logger"
	"bookingdesk/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	WizardHandler  *handler.WizardHandler
	CatalogHandler *handler.CatalogHandler
	PlacesHandler  *handler.PlacesHandler
	JournalHandler *handler.JournalHandler
	Idempotency    middleware.IdempotencyStore
	AllowedOrigins []string
	NewRelicApp    *newrelic.Application
	Log            *logger.Logger
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	router := gin.New()

	router.Use(gin.RecoveryWithWriter(log.Writer()))
	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.IdempotencyMiddleware(deps.Idempotency, log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Wizard session routes.
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", deps.WizardHandler.CreateSession)
			sessions.GET("/:id", deps.WizardHandler.GetSession)
			sessions.DELETE("/:id", deps.WizardHandler.DeleteSession)

			sessions.POST("/:id/search", deps.WizardHandler.Search)
			sessions.POST("/:id/search/live", deps.WizardHandler.LiveSearch)
			sessions.POST("/:id/page", deps.WizardHandler.ChangePage)
			sessions.POST("/:id/vehicle", deps.WizardHandler.SelectVehicle)

			sessions.POST("/:id/segments", deps.WizardHandler.AddSegment)
			sessions.PATCH("/:id/segments/:index", deps.WizardHandler.UpdateSegment)
			sessions.DELETE("/:id/segments/:index", deps.WizardHandler.RemoveSegment)
			sessions.PUT("/:id/segments/:index/location", deps.WizardHandler.SetLocation)

			sessions.POST("/:id/pricing", deps.WizardHandler.RequestPricing)
			sessions.POST("/:id/back", deps.WizardHandler.Back)
			sessions.POST("/:id/confirm", deps.WizardHandler.Confirm)
			sessions.POST("/:id/reset", deps.WizardHandler.Reset)
			sessions.GET("/:id/summary", deps.WizardHandler.Summary)
			sessions.DELETE("/:id/notices/:noticeId", deps.WizardHandler.DismissNotice)
		}

		// Catalog routes.
		catalog := v1.Group("/catalog")
		{
			catalog.GET("/booking-types", deps.CatalogHandler.BookingTypes)
			catalog.GET("/vehicle-types", deps.CatalogHandler.VehicleTypes)
			catalog.GET("/vehicle-makes", deps.CatalogHandler.VehicleMakes)
			catalog.GET("/vehicle-makes/:id/models", deps.CatalogHandler.VehicleModels)
		}

		// Address autocomplete routes.
		places := v1.Group("/places")
		{
			places.GET("/predictions", deps.PlacesHandler.Predictions)
			places.GET("/:placeId", deps.PlacesHandler.Place)
		}

		// Journal routes.
		journal := v1.Group("/journal")
		{
			journal.GET("", deps.JournalHandler.ListRecent)
			journal.GET("/:bookingId", deps.JournalHandler.GetByBookingID)
		}
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
