// Package http provides the REST surface next to the WebSocket endpoint:
// health, document files and settings.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
)

// RouterConfig carries the dependencies the HTTP layer needs. Using a
// config struct keeps the constructor signature stable as the surface
// grows.
type RouterConfig struct {
	Database     *database.Database
	Registry     *providers.Registry
	Checker      *services.Checker
	DocumentsDir string
	Version      string

	// Queue is optional. When present, document saves enqueue cache
	// warming and prediction learning tasks.
	Queue DocumentQueue
}

// RouteRegistrar is anything that can attach its routes to the engine.
// The WebSocket controller implements it.
type RouteRegistrar interface {
	RegisterRoutes(router *gin.Engine)
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig, extra ...RouteRegistrar) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.Registry, cfg.Version)
	router.GET("/health", healthController.Status)

	filesController := NewFilesController(cfg.DocumentsDir, cfg.Queue)
	api := router.Group("/api")
	{
		api.GET("/files", filesController.List)
		api.GET("/files/:name", filesController.Get)
		api.PUT("/files/:name", filesController.Put)
		api.DELETE("/files/:name", filesController.Delete)

		settingsController := NewSettingsController(cfg.Database, cfg.Registry, cfg.Checker)
		api.GET("/settings", settingsController.Get)
		api.PUT("/settings", settingsController.Update)
	}

	for _, registrar := range extra {
		registrar.RegisterRoutes(router)
	}

	return router
}
