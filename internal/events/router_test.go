package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn records everything written to it.
type fakeConn struct {
	messages []any
	failWith error
}

func (c *fakeConn) WriteJSON(v any) error {
	if c.failWith != nil {
		return c.failWith
	}
	c.messages = append(c.messages, v)
	return nil
}

func (c *fakeConn) lastJSON(t *testing.T) map[string]any {
	t.Helper()
	require.NotEmpty(t, c.messages)
	data, err := json.Marshal(c.messages[len(c.messages)-1])
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	return decoded
}

type echoHandler struct {
	key    string
	panics bool
}

func (h *echoHandler) Key() string { return h.key }

func (h *echoHandler) Handle(ctx context.Context, payload json.RawMessage, conn Conn) any {
	if h.panics {
		panic("boom")
	}
	return BaseResponse{MessageKey: h.key + "_response", Success: true}
}

func TestRouter_MissingMessageKey(t *testing.T) {
	router := NewRouter()
	conn := &fakeConn{}

	err := router.Route(context.Background(), json.RawMessage(`{"data": 1}`), conn)

	require.NoError(t, err)
	resp := conn.lastJSON(t)
	assert.Equal(t, "error", resp["message_key"])
	assert.Equal(t, false, resp["success"])
}

func TestRouter_UnknownKeyListsHandlers(t *testing.T) {
	router := NewRouter()
	router.RegisterHandler(&echoHandler{key: "spellcheck_request"})
	router.RegisterHandler(&echoHandler{key: "health_request"})
	conn := &fakeConn{}

	err := router.Route(context.Background(), json.RawMessage(`{"message_key": "nope"}`), conn)

	require.NoError(t, err)
	resp := conn.lastJSON(t)
	assert.Equal(t, "error", resp["message_key"])
	assert.Equal(t, false, resp["success"])
	assert.ElementsMatch(t,
		[]any{"health_request", "spellcheck_request"},
		resp["available_handlers"])
}

func TestRouter_DispatchesToHandler(t *testing.T) {
	router := NewRouter()
	router.RegisterHandler(&echoHandler{key: "ping"})
	conn := &fakeConn{}
	router.Connect(conn)

	err := router.Route(context.Background(), json.RawMessage(`{"message_key": "ping"}`), conn)

	require.NoError(t, err)
	resp := conn.lastJSON(t)
	assert.Equal(t, "ping_response", resp["message_key"])
	assert.Equal(t, true, resp["success"])
}

func TestRouter_AutoSubscribesOnDispatch(t *testing.T) {
	router := NewRouter()
	router.RegisterHandler(&echoHandler{key: "ping"})
	conn := &fakeConn{}
	router.Connect(conn)

	require.NoError(t, router.Route(context.Background(), json.RawMessage(`{"message_key": "ping"}`), conn))

	assert.Equal(t, []string{"ping"}, router.Topics(conn))
}

func TestRouter_NoSubscribeOnUnknownKey(t *testing.T) {
	router := NewRouter()
	conn := &fakeConn{}
	router.Connect(conn)

	require.NoError(t, router.Route(context.Background(), json.RawMessage(`{"message_key": "nope"}`), conn))

	assert.Empty(t, router.Topics(conn))
}

func TestRouter_RecoversHandlerPanic(t *testing.T) {
	router := NewRouter()
	router.RegisterHandler(&echoHandler{key: "ping", panics: true})
	conn := &fakeConn{}

	err := router.Route(context.Background(), json.RawMessage(`{"message_key": "ping", "correlation_id": "c1"}`), conn)

	require.NoError(t, err)
	resp := conn.lastJSON(t)
	assert.Equal(t, "ping_error", resp["message_key"])
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "c1", resp["correlation_id"])
	assert.Contains(t, resp["error"], "boom")
}

func TestRouter_LastHandlerWins(t *testing.T) {
	router := NewRouter()
	first := &echoHandler{key: "ping", panics: true}
	second := &echoHandler{key: "ping"}
	router.RegisterHandler(first)
	router.RegisterHandler(second)
	conn := &fakeConn{}

	require.NoError(t, router.Route(context.Background(), json.RawMessage(`{"message_key": "ping"}`), conn))

	resp := conn.lastJSON(t)
	assert.Equal(t, "ping_response", resp["message_key"])
}

func TestRouter_UnregisterHandler(t *testing.T) {
	router := NewRouter()
	router.RegisterHandler(&echoHandler{key: "ping"})

	assert.True(t, router.UnregisterHandler("ping"))
	assert.False(t, router.UnregisterHandler("ping"))
	assert.Empty(t, router.HandlerKeys())
}

func TestRouter_BroadcastToSubscribers(t *testing.T) {
	router := NewRouter()
	sender := &fakeConn{}
	subscribed := &fakeConn{}
	unrelated := &fakeConn{}
	router.Subscribe(sender, "edit")
	router.Subscribe(subscribed, "edit")
	router.Connect(unrelated)

	router.Broadcast("edit", BaseResponse{MessageKey: "edit", Success: true}, sender)

	assert.Empty(t, sender.messages)
	assert.Len(t, subscribed.messages, 1)
	assert.Empty(t, unrelated.messages)
}

func TestRouter_BroadcastDropsFailedConn(t *testing.T) {
	router := NewRouter()
	broken := &fakeConn{failWith: errors.New("gone")}
	router.Subscribe(broken, "edit")
	require.Equal(t, 1, router.ConnectionCount())

	router.Broadcast("edit", BaseResponse{MessageKey: "edit"}, nil)

	assert.Equal(t, 0, router.ConnectionCount())
}

func TestRouter_DisconnectIdempotent(t *testing.T) {
	router := NewRouter()
	conn := &fakeConn{}
	router.Connect(conn)
	router.Connect(conn)
	require.Equal(t, 1, router.ConnectionCount())

	router.Disconnect(conn)
	router.Disconnect(conn)

	assert.Equal(t, 0, router.ConnectionCount())
}

func TestRouter_UnsubscribeSetSemantics(t *testing.T) {
	router := NewRouter()
	conn := &fakeConn{}
	router.Subscribe(conn, "edit")
	router.Subscribe(conn, "edit")

	assert.Equal(t, []string{"edit"}, router.Topics(conn))

	router.Unsubscribe(conn, "edit")
	router.Unsubscribe(conn, "edit")

	assert.Empty(t, router.Topics(conn))
	assert.Equal(t, 1, router.ConnectionCount())
}
