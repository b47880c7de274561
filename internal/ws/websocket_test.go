package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/prediction"
)

type pingHandler struct {
	key      string
	response string
}

func (h *pingHandler) Key() string { return h.key }

func (h *pingHandler) Handle(ctx context.Context, payload json.RawMessage, conn events.Conn) any {
	var env events.Envelope
	json.Unmarshal(payload, &env)
	return events.BaseResponse{
		MessageKey:    h.response,
		Success:       true,
		CorrelationID: env.CorrelationID,
	}
}

func setupServer(t *testing.T, router *events.Router) *httptest.Server {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewController(router, prediction.NewFrequencyEngine()).RegisterRoutes(engine)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, conn.ReadJSON(&decoded))
	return decoded
}

func TestWebSocket_Greeting(t *testing.T) {
	router := events.NewRouter()
	router.RegisterHandler(&pingHandler{key: "ping", response: "pong"})
	server := setupServer(t, router)

	conn := dial(t, server)
	greeting := readJSON(t, conn)

	assert.Equal(t, "connection_established", greeting["message_key"])
	assert.Equal(t, true, greeting["success"])
	assert.NotEmpty(t, greeting["connection_id"])
	assert.Equal(t, []any{"ping"}, greeting["available_handlers"])
}

func TestWebSocket_RoutesCanonicalEnvelope(t *testing.T) {
	router := events.NewRouter()
	router.RegisterHandler(&pingHandler{key: "ping", response: "pong"})
	server := setupServer(t, router)

	conn := dial(t, server)
	readJSON(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"message_key":    "ping",
		"correlation_id": "c9",
	}))

	resp := readJSON(t, conn)
	assert.Equal(t, "pong", resp["message_key"])
	assert.Equal(t, "c9", resp["correlation_id"])
}

func TestWebSocket_UnknownKey(t *testing.T) {
	router := events.NewRouter()
	router.RegisterHandler(&pingHandler{key: "ping", response: "pong"})
	server := setupServer(t, router)

	conn := dial(t, server)
	readJSON(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{"message_key": "bogus"}))

	resp := readJSON(t, conn)
	assert.Equal(t, "error", resp["message_key"])
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, []any{"ping"}, resp["available_handlers"])
}

func TestWebSocket_SubscribeControlFrame(t *testing.T) {
	router := events.NewRouter()
	server := setupServer(t, router)

	conn := dial(t, server)
	readJSON(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":   "subscribe",
		"topics": []string{"edit", "presence"},
	}))

	resp := readJSON(t, conn)
	assert.Equal(t, "subscription_confirmed", resp["message_key"])
	assert.Equal(t, []any{"edit", "presence"}, resp["topics"])

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":   "unsubscribe",
		"topics": []string{"presence"},
	}))

	resp = readJSON(t, conn)
	assert.Equal(t, "unsubscription_confirmed", resp["message_key"])
	assert.Equal(t, []any{"edit"}, resp["topics"])
}

func TestWebSocket_LegacyRequestGetsLegacyResponse(t *testing.T) {
	router := events.NewRouter()
	router.RegisterHandler(&pingHandler{key: "spellcheck_request", response: "spellcheck_response"})
	server := setupServer(t, router)

	conn := dial(t, server)
	readJSON(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"type":           "spell_check_request",
		"text":           "some text",
		"correlation_id": "L1",
	}))

	resp := readJSON(t, conn)
	assert.Equal(t, "spell_check_response", resp["type"])
	assert.NotContains(t, resp, "message_key")
	assert.Equal(t, "L1", resp["correlation_id"])
}

func TestWebSocket_EditBroadcast(t *testing.T) {
	router := events.NewRouter()
	server := setupServer(t, router)

	receiver := dial(t, server)
	readJSON(t, receiver)
	require.NoError(t, receiver.WriteJSON(map[string]any{
		"type":   "subscribe",
		"topics": []string{"edit"},
	}))
	readJSON(t, receiver)

	sender := dial(t, server)
	readJSON(t, sender)
	require.NoError(t, sender.WriteJSON(map[string]any{
		"type": "edit",
		"text": "shared document text",
	}))

	broadcast := readJSON(t, receiver)
	assert.Equal(t, "edit", broadcast["message_key"])
	assert.Equal(t, "shared document text", broadcast["text"])
	assert.NotEmpty(t, broadcast["origin"])
}

func TestTranslateLegacy_SpellCheck(t *testing.T) {
	raw, err := translateLegacy(legacyEnvelope{
		Type:     "spell_check_request",
		Text:     "line one\nline two",
		Language: "en",
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "spellcheck_request", decoded["message_key"])
	assert.Equal(t, []any{"line one", "line two"}, decoded["lines"])
	assert.Equal(t, "en", decoded["language"])
}

func TestTranslateLegacy_AddWord(t *testing.T) {
	raw, err := translateLegacy(legacyEnvelope{Type: "add_word", Word: "scribe"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "dictionary_request", decoded["message_key"])
	assert.Equal(t, "add", decoded["operation"])
	assert.Equal(t, "scribe", decoded["word"])
}

func TestIsLegacy(t *testing.T) {
	_, ok := isLegacy(json.RawMessage(`{"type": "spell_check_request", "text": "x"}`))
	assert.True(t, ok)

	_, ok = isLegacy(json.RawMessage(`{"type": "subscribe", "topics": []}`))
	assert.False(t, ok)

	_, ok = isLegacy(json.RawMessage(`{"message_key": "spellcheck_request"}`))
	assert.False(t, ok)

	_, ok = isLegacy(json.RawMessage(`{"type": "unknown_thing"}`))
	assert.False(t, ok)
}
