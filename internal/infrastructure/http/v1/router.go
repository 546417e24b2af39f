// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"movistock/internal/domain/catalogs/product"
	"movistock/internal/domain/catalogs/unit"
	"movistock/internal/domain/movement"
	"movistock/internal/infrastructure/http/v1/handlers"
	"movistock/internal/infrastructure/http/v1/middleware"
	"movistock/internal/infrastructure/storage/postgres"
	"movistock/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Movements is the form session service
	Movements *movement.Service

	// Sessions is the session store (health reporting)
	Sessions *movement.Manager

	// Products and Units serve the catalogs the form binds to
	Products *product.Service
	Units    *unit.Service

	// Pool is the database pool; nil when running without a database
	Pool *postgres.Pool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Sessions)
	health := router.Group("/health")
	{
		health.GET("", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}

	api := router.Group("/api/v1")

	sessionHandler := handlers.NewSessionHandler(base, cfg.Movements)
	sessions := api.Group("/sessions")
	{
		sessions.POST("", sessionHandler.Open)
		sessions.GET("/:id", sessionHandler.Get)
		sessions.PATCH("/:id", sessionHandler.UpdateHeader)
		sessions.DELETE("/:id", sessionHandler.Close)
		sessions.POST("/:id/items", sessionHandler.AddItem)
		sessions.PATCH("/:id/items/:pos", sessionHandler.UpdateItem)
		sessions.DELETE("/:id/items/:pos", sessionHandler.RemoveItem)
		sessions.POST("/:id/submit", sessionHandler.Submit)
	}

	catalogHandler := handlers.NewCatalogHandler(base, cfg.Products, cfg.Units)
	catalog := api.Group("/catalog")
	{
		catalog.GET("/products", catalogHandler.Products)
		catalog.GET("/units", catalogHandler.Units)
	}

	return router
}
