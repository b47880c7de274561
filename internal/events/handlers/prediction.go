package handlers

import (
	"context"
	"encoding/json"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/prediction"
)

type predictionRequest struct {
	events.Envelope
	Text           string `json:"text"`
	PrevContext    string `json:"prev_context"`
	CurrentText    string `json:"current_text"`
	AfterContext   string `json:"after_context"`
	Cursor         *int   `json:"cursor"`
	MaxPredictions int    `json:"max_predictions"`
	Engine         string `json:"engine"`
}

// PredictionResponse carries ranked continuations ready to insert at the
// cursor.
type PredictionResponse struct {
	events.BaseResponse
	Predictions []string `json:"predictions"`
	EngineUsed  string   `json:"engine_used"`
}

// PredictionHandler serves prediction_request messages. Unlike spell
// checking there is no engine fallback: asking for an unknown engine is
// answered with the list of known ones.
type PredictionHandler struct {
	engines *prediction.Registry
}

func NewPredictionHandler(engines *prediction.Registry) *PredictionHandler {
	return &PredictionHandler{engines: engines}
}

func (h *PredictionHandler) Key() string { return KeyPrediction }

func (h *PredictionHandler) Handle(ctx context.Context, payload json.RawMessage, conn events.Conn) any {
	var req predictionRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		// Unmarshal keeps decoding past a type error, so any
		// correlation_id in the payload is already populated.
		return events.HandlerError(h.Key(), "malformed payload: "+err.Error(), req.CorrelationID)
	}

	// A bare text field is shorthand for a cursor at the end of it.
	if req.CurrentText == "" && req.Text != "" {
		req.CurrentText = req.Text
		if req.Cursor == nil {
			end := len(req.Text)
			req.Cursor = &end
		}
	}
	if req.Cursor == nil {
		end := len(req.CurrentText)
		req.Cursor = &end
	}

	engine := h.engines.Get(req.Engine)
	if engine == nil {
		resp := events.HandlerError(h.Key(), "unknown prediction engine: "+req.Engine, req.CorrelationID)
		resp.Metadata = map[string]any{"available_engines": h.engines.Names()}
		return resp
	}

	predictions := engine.Predict(ctx, prediction.Request{
		PrevContext:    req.PrevContext,
		CurrentText:    req.CurrentText,
		AfterContext:   req.AfterContext,
		Cursor:         *req.Cursor,
		MaxPredictions: req.MaxPredictions,
	})
	if predictions == nil {
		predictions = []string{}
	}

	return PredictionResponse{
		BaseResponse: events.BaseResponse{
			MessageKey:    "prediction_response",
			Success:       true,
			CorrelationID: req.CorrelationID,
		},
		Predictions: predictions,
		EngineUsed:  engine.Name(),
	}
}
