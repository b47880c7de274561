package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
)

type HealthResponse struct {
	Status  string                               `json:"status"`
	Time    string                               `json:"time"`
	Version string                               `json:"version,omitempty"`
	Checks  map[string]string                    `json:"checks"`
	Engines map[string]providers.ProviderStatus `json:"engines"`
}

type HealthController struct {
	db       *database.Database
	registry *providers.Registry
	version  string
}

func NewHealthController(db *database.Database, registry *providers.Registry, version string) *HealthController {
	return &HealthController{
		db:       db,
		registry: registry,
		version:  version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		sqlDB, err := h.db.DB.DB()
		if err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else if err := sqlDB.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	engines := map[string]providers.ProviderStatus{}
	if h.registry != nil {
		engines = h.registry.Status()
		available := 0
		for _, s := range engines {
			if s.Available {
				available++
			}
		}
		switch {
		case available == 0:
			checks["spellcheck"] = "no engines available"
			status = "unhealthy"
		case available < len(engines):
			checks["spellcheck"] = "some engines unavailable"
			if status == "healthy" {
				status = "degraded"
			}
		default:
			checks["spellcheck"] = "ok"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
		Engines: engines,
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
