package ws

import (
	"encoding/json"
	"strings"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/events/handlers"
)

// legacyEnvelope is the message shape older editor builds send: a type
// field instead of message_key, with flatter payloads.
type legacyEnvelope struct {
	Type          string `json:"type"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Text          string `json:"text,omitempty"`
	Content       string `json:"content,omitempty"`
	Language      string `json:"language,omitempty"`
	Word          string `json:"word,omitempty"`
	Cursor        *int   `json:"cursor,omitempty"`
	Engine        string `json:"engine,omitempty"`
}

// legacyTypes maps old message types to canonical message keys.
var legacyTypes = map[string]string{
	"spell_check_request": handlers.KeySpellcheck,
	"prediction_request":  handlers.KeyPrediction,
	"add_word":            handlers.KeyDictionary,
}

// isLegacy reports whether the raw message uses the old envelope, and
// returns the parsed envelope when it does.
func isLegacy(raw json.RawMessage) (legacyEnvelope, bool) {
	var env legacyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, false
	}
	if env.Type == "" || env.Type == "subscribe" || env.Type == "unsubscribe" {
		return env, false
	}
	_, known := legacyTypes[env.Type]
	return env, known || env.Type == "edit"
}

// translateLegacy rewrites an old-style message into a canonical
// envelope the router understands.
func translateLegacy(env legacyEnvelope) (json.RawMessage, error) {
	payload := map[string]any{
		"message_key": legacyTypes[env.Type],
	}
	if env.CorrelationID != "" {
		payload["correlation_id"] = env.CorrelationID
	}

	switch env.Type {
	case "spell_check_request":
		payload["lines"] = strings.Split(env.Text, "\n")
		if env.Language != "" {
			payload["language"] = env.Language
		}
		if env.Engine != "" {
			payload["engine"] = env.Engine
		}
	case "prediction_request":
		payload["text"] = env.Text
		if env.Cursor != nil {
			payload["current_text"] = env.Text
			payload["cursor"] = *env.Cursor
		}
		if env.Engine != "" {
			payload["engine"] = env.Engine
		}
	case "add_word":
		payload["operation"] = "add"
		payload["word"] = env.Word
	}
	return json.Marshal(payload)
}

// legacyResponseTypes maps canonical response keys back to the old
// type names.
var legacyResponseTypes = map[string]string{
	"spellcheck_response":      "spell_check_response",
	"spellcheck_request_error": "spell_check_error",
	"prediction_response":      "prediction_response",
	"prediction_request_error": "prediction_error",
	"dictionary_response":      "word_added",
	"dictionary_request_error": "word_error",
}

// legacyConn rewrites canonical responses into the old envelope before
// writing them, so a legacy request gets a legacy-shaped answer.
type legacyConn struct {
	inner events.Conn
}

func (c *legacyConn) WriteJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return c.inner.WriteJSON(v)
	}

	key, _ := decoded["message_key"].(string)
	legacyType, ok := legacyResponseTypes[key]
	if !ok {
		legacyType = key
	}
	delete(decoded, "message_key")
	decoded["type"] = legacyType
	return c.inner.WriteJSON(decoded)
}
