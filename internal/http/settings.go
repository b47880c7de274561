package http

import (
	"log"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/scribe/internal/database"
	"github.com/mrlokans/scribe/internal/entities"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
)

type settingsPayload struct {
	PreferredEngine  *string `json:"preferred_engine"`
	DefaultLanguage  *string `json:"default_language"`
	PredictionEngine *string `json:"prediction_engine"`
}

// SettingsController exposes the user-tunable settings. Changing the
// preferred spell check engine drops the whole result cache, since every
// cached entry was computed by the previous engine.
type SettingsController struct {
	db       *database.Database
	registry *providers.Registry
	checker  *services.Checker
}

func NewSettingsController(db *database.Database, registry *providers.Registry, checker *services.Checker) *SettingsController {
	return &SettingsController{db: db, registry: registry, checker: checker}
}

func (s *SettingsController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"preferred_engine":  s.valueOrDefault(entities.SettingKeyPreferredEngine, ""),
		"default_language":  s.valueOrDefault(entities.SettingKeyDefaultLanguage, "en"),
		"prediction_engine": s.valueOrDefault(entities.SettingKeyPredictionEngine, "heuristic"),
	})
}

func (s *SettingsController) Update(c *gin.Context) {
	var payload settingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if payload.PreferredEngine != nil {
		engine := *payload.PreferredEngine
		if engine != "" && !slices.Contains(s.registry.Names(), engine) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "unknown engine: " + engine,
				"engines": s.registry.Names(),
			})
			return
		}

		previous := s.valueOrDefault(entities.SettingKeyPreferredEngine, "")
		if err := s.db.SetSetting(entities.SettingKeyPreferredEngine, engine); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if previous != engine {
			if removed, err := s.checker.InvalidateAll(); err != nil {
				log.Printf("Failed to invalidate cache after engine change: %v", err)
			} else {
				log.Printf("Engine changed from %q to %q, invalidated %d cached results", previous, engine, removed)
			}
		}
	}

	if payload.DefaultLanguage != nil {
		if err := s.db.SetSetting(entities.SettingKeyDefaultLanguage, *payload.DefaultLanguage); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if payload.PredictionEngine != nil {
		if err := s.db.SetSetting(entities.SettingKeyPredictionEngine, *payload.PredictionEngine); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	s.Get(c)
}

func (s *SettingsController) valueOrDefault(key, fallback string) string {
	setting, err := s.db.GetSetting(key)
	if err != nil || setting.Value == "" {
		return fallback
	}
	return setting.Value
}
