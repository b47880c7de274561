// Package events implements the topic-keyed message router behind the
// editor's WebSocket endpoint. Messages are JSON envelopes carrying a
// message_key that selects a handler; connections are auto-subscribed to
// the keys they use.
package events

import "encoding/json"

// Envelope is the part of every incoming message the router itself
// reads. The rest of the payload is handed to the handler untouched.
type Envelope struct {
	MessageKey    string `json:"message_key"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// BaseResponse carries the fields every outgoing message shares.
// Response structs embed it so the wire format stays flat.
type BaseResponse struct {
	MessageKey    string         `json:"message_key"`
	Success       bool           `json:"success"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	ErrorMessage  string         `json:"error,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// ErrorResponse is what the router sends when it cannot dispatch a
// message at all.
type ErrorResponse struct {
	BaseResponse
	AvailableHandlers []string `json:"available_handlers,omitempty"`
}

// NewError builds a routing-level error response.
func NewError(message, correlationID string) ErrorResponse {
	return ErrorResponse{
		BaseResponse: BaseResponse{
			MessageKey:    "error",
			Success:       false,
			CorrelationID: correlationID,
			ErrorMessage:  message,
		},
	}
}

// HandlerError builds a handler-level validation error response keyed
// `<key>_error`, echoing the correlation id so the client can match it
// to the request.
func HandlerError(key, message, correlationID string) BaseResponse {
	return BaseResponse{
		MessageKey:    key + "_error",
		Success:       false,
		CorrelationID: correlationID,
		ErrorMessage:  message,
	}
}

// peekEnvelope extracts the routing fields without validating the rest
// of the payload.
func peekEnvelope(raw json.RawMessage) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(raw, &env)
	return env, err
}
