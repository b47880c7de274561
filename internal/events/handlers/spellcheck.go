// Package handlers contains the message handlers the editor exposes over
// the WebSocket event router.
package handlers

import (
	"context"
	"encoding/json"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/services"
	"github.com/mrlokans/scribe/internal/spellcheck"
)

const (
	KeySpellcheck = "spellcheck_request"
	KeyPrediction = "prediction_request"
	KeyDictionary = "dictionary_request"
	KeyHealth     = "health_request"
)

type spellcheckRequest struct {
	events.Envelope
	Lines    []string `json:"lines"`
	Language string   `json:"language"`
	Engine   string   `json:"engine"`
}

// SpellcheckResponse reports per-line errors for a checked batch. The
// errors map is sparse: clean lines are absent.
type SpellcheckResponse struct {
	events.BaseResponse
	Errors       map[int][]spellcheck.Error `json:"errors"`
	LinesChecked int                        `json:"lines_checked"`
	EngineUsed   string                     `json:"engine_used,omitempty"`
	LanguageUsed string                     `json:"language_used"`
}

// SpellcheckHandler serves spellcheck_request messages through the
// checker service.
type SpellcheckHandler struct {
	checker *services.Checker
}

func NewSpellcheckHandler(checker *services.Checker) *SpellcheckHandler {
	return &SpellcheckHandler{checker: checker}
}

func (h *SpellcheckHandler) Key() string { return KeySpellcheck }

func (h *SpellcheckHandler) Handle(ctx context.Context, payload json.RawMessage, conn events.Conn) any {
	var req spellcheckRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return events.HandlerError(h.Key(), "malformed payload: "+err.Error(), req.CorrelationID)
	}
	if req.Lines == nil {
		return events.HandlerError(h.Key(), "lines is required", req.CorrelationID)
	}
	if req.Language == "" {
		req.Language = "en"
	}

	outcome, err := h.checker.CheckLines(ctx, req.Lines, req.Language, req.Engine)
	if err != nil {
		return events.HandlerError(h.Key(), "spell check failed: "+err.Error(), req.CorrelationID)
	}

	resp := SpellcheckResponse{
		BaseResponse: events.BaseResponse{
			MessageKey:    "spellcheck_response",
			Success:       outcome.ProviderAvailable,
			CorrelationID: req.CorrelationID,
		},
		Errors:       outcome.Errors,
		LinesChecked: outcome.LinesChecked,
		EngineUsed:   outcome.EngineUsed,
		LanguageUsed: outcome.LanguageUsed,
	}
	if !outcome.ProviderAvailable {
		resp.ErrorMessage = "no spell check engine is available"
	}
	if outcome.RequestedEngine != "" {
		resp.Metadata = map[string]any{"requested_engine": outcome.RequestedEngine}
	}
	return resp
}
