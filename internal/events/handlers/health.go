package handlers

import (
	"context"
	"encoding/json"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/prediction"
	"github.com/mrlokans/scribe/internal/spellcheck/providers"
)

type healthRequest struct {
	events.Envelope
	Component string `json:"component"`
	Detailed  bool   `json:"detailed"`
}

// HealthResponse summarizes service health. Status is healthy when every
// engine is up, degraded when only some are, unhealthy when spell
// checking is entirely unavailable.
type HealthResponse struct {
	events.BaseResponse
	Status     string                               `json:"status"`
	Components map[string]string                    `json:"components,omitempty"`
	Providers  map[string]providers.ProviderStatus `json:"providers,omitempty"`
	Engines    int                                  `json:"prediction_engines"`
}

// HealthHandler serves health_request messages.
type HealthHandler struct {
	registry *providers.Registry
	engines  *prediction.Registry
	pingDB   func() error
}

func NewHealthHandler(registry *providers.Registry, engines *prediction.Registry, pingDB func() error) *HealthHandler {
	return &HealthHandler{registry: registry, engines: engines, pingDB: pingDB}
}

func (h *HealthHandler) Key() string { return KeyHealth }

func (h *HealthHandler) Handle(ctx context.Context, payload json.RawMessage, conn events.Conn) any {
	var req healthRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return events.HandlerError(h.Key(), "malformed payload: "+err.Error(), req.CorrelationID)
	}

	status := h.registry.Status()
	available := 0
	for _, s := range status {
		if s.Available {
			available++
		}
	}

	dbOK := true
	if h.pingDB != nil {
		dbOK = h.pingDB() == nil
	}

	overall := "healthy"
	switch {
	case available == 0 || !dbOK:
		overall = "unhealthy"
	case available < len(status):
		overall = "degraded"
	}

	components := map[string]string{
		"spellcheck": componentStatus(available > 0),
		"prediction": componentStatus(h.engines.Count() > 0),
		"database":   componentStatus(dbOK),
	}
	if req.Component != "" {
		if state, ok := components[req.Component]; ok {
			components = map[string]string{req.Component: state}
		} else {
			return events.HandlerError(h.Key(), "unknown component: "+req.Component, req.CorrelationID)
		}
	}

	resp := HealthResponse{
		BaseResponse: events.BaseResponse{
			MessageKey:    "health_response",
			Success:       true,
			CorrelationID: req.CorrelationID,
		},
		Status:     overall,
		Components: components,
		Engines:    h.engines.Count(),
	}
	if req.Detailed {
		resp.Providers = status
	}
	return resp
}

func componentStatus(ok bool) string {
	if ok {
		return "ok"
	}
	return "unavailable"
}
