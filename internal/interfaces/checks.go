package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/gorilla/websocket"

	"github.com/mrlokans/scribe/internal/database/cache"
	"github.com/mrlokans/scribe/internal/database/dictionary"
	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/events/handlers"
	scribehttp "github.com/mrlokans/scribe/internal/http"
	"github.com/mrlokans/scribe/internal/prediction"
	"github.com/mrlokans/scribe/internal/scheduler"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
	"github.com/mrlokans/scribe/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.ResultCache = (*cache.Repository)(nil)
var _ services.WordStore = (*dictionary.Repository)(nil)
var _ scheduler.Pruner = (*cache.Repository)(nil)

// =============================================================================
// Spell Check Engines
// =============================================================================

var _ spellcheck.Provider = (*providers.NeuralProvider)(nil)
var _ spellcheck.Provider = (*providers.AspellProvider)(nil)
var _ spellcheck.Provider = (*providers.FuzzyProvider)(nil)
var _ spellcheck.Provider = (*providers.WordlistProvider)(nil)
var _ services.ProviderSource = (*providers.Registry)(nil)

// =============================================================================
// Prediction Engines
// =============================================================================

var _ prediction.Engine = (*prediction.HeuristicEngine)(nil)
var _ prediction.Engine = (*prediction.FrequencyEngine)(nil)

// =============================================================================
// Background Tasks
// =============================================================================

var _ tasks.DocumentChecker = (*services.Checker)(nil)
var _ tasks.TextLearner = (*prediction.FrequencyEngine)(nil)
var _ scribehttp.DocumentQueue = (*tasks.Client)(nil)

// =============================================================================
// Event Routing
// =============================================================================

var _ events.Conn = (*websocket.Conn)(nil)
var _ events.Handler = (*handlers.SpellcheckHandler)(nil)
var _ events.Handler = (*handlers.PredictionHandler)(nil)
var _ events.Handler = (*handlers.DictionaryHandler)(nil)
var _ events.Handler = (*handlers.HealthHandler)(nil)
