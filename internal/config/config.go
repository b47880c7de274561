// Package config reads service configuration from environment variables.
package config

import (
	"time"

	"github.com/spf13/viper"
)

const DefaultDatabasePath = "./scribe.db"

type (
	Config struct {
		HTTP
		Database
		Spellcheck
		Prediction
		Documents
		CachePrune
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Spellcheck struct {
		DefaultLanguage string
		NeuralEndpoint  string // Empty disables the remote engine
	}
	Prediction struct {
		DefaultEngine string
	}
	Documents struct {
		Dir string
	}
	CachePrune struct {
		Enabled  bool
		Schedule string        // Cron format: "0 3 * * *" = daily at 03:00
		MaxAge   time.Duration // Entries unused longer than this are removed
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("default_language", "en")
	v.SetDefault("neural_endpoint", "")
	v.SetDefault("prediction_engine", "heuristic")
	v.SetDefault("documents_dir", "./documents")
	v.SetDefault("cache_prune_enabled", false)
	v.SetDefault("cache_prune_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("cache_prune_max_age", "720h")       // 30 days

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Spellcheck: Spellcheck{
			DefaultLanguage: v.GetString("DEFAULT_LANGUAGE"),
			NeuralEndpoint:  v.GetString("NEURAL_ENDPOINT"),
		},
		Prediction: Prediction{
			DefaultEngine: v.GetString("PREDICTION_ENGINE"),
		},
		Documents: Documents{
			Dir: v.GetString("DOCUMENTS_DIR"),
		},
		CachePrune: CachePrune{
			Enabled:  v.GetBool("CACHE_PRUNE_ENABLED"),
			Schedule: v.GetString("CACHE_PRUNE_SCHEDULE"),
			MaxAge:   v.GetDuration("CACHE_PRUNE_MAX_AGE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
