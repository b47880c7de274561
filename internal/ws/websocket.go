package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mrlokans/scribe/internal/events"
	"github.com/mrlokans/scribe/internal/prediction"
)

// controlFrame is the subscribe/unsubscribe side channel; it bypasses
// the router entirely.
type controlFrame struct {
	Type   string   `json:"type"`
	Topics []string `json:"topics"`
}

type greeting struct {
	events.BaseResponse
	ConnectionID      string   `json:"connection_id"`
	AvailableHandlers []string `json:"available_handlers"`
}

type subscriptionUpdate struct {
	events.BaseResponse
	Topics []string `json:"topics"`
}

type editBroadcast struct {
	events.BaseResponse
	Text   string `json:"text"`
	Origin string `json:"origin"`
}

// Controller upgrades editor connections and pumps their messages
// through the event router.
type Controller struct {
	router   *events.Router
	learner  *prediction.FrequencyEngine
	upgrader websocket.Upgrader
}

// NewController creates the WebSocket controller. learner may be nil;
// when set, document edits feed its frequency tables.
func NewController(router *events.Router, learner *prediction.FrequencyEngine) *Controller {
	return &Controller{
		router:  router,
		learner: learner,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// RegisterRoutes sets up the WebSocket endpoint.
func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/ws", ctrl.serve)
}

func (ctrl *Controller) serve(c *gin.Context) {
	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	cl := &client{id: uuid.NewString(), conn: conn}
	legacy := &legacyConn{inner: cl}

	ctrl.router.Connect(cl)
	defer func() {
		ctrl.router.Disconnect(cl)
		ctrl.router.Disconnect(legacy)
		conn.Close()
		log.Printf("Connection %s closed", cl.id)
	}()

	welcome := greeting{
		BaseResponse:      events.BaseResponse{MessageKey: "connection_established", Success: true},
		ConnectionID:      cl.id,
		AvailableHandlers: ctrl.router.HandlerKeys(),
	}
	if err := cl.WriteJSON(welcome); err != nil {
		return
	}
	log.Printf("Connection %s established", cl.id)

	ctx := c.Request.Context()
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Connection %s read error: %v", cl.id, err)
			}
			return
		}
		if err := ctrl.handleMessage(ctx, raw, cl, legacy); err != nil {
			log.Printf("Connection %s write error: %v", cl.id, err)
			return
		}
	}
}

// handleMessage routes one frame. Control frames and legacy envelopes
// are unwrapped first; everything else goes straight to the router.
func (ctrl *Controller) handleMessage(ctx context.Context, raw []byte, cl *client, legacy *legacyConn) error {
	var control controlFrame
	if err := json.Unmarshal(raw, &control); err == nil {
		switch control.Type {
		case "subscribe":
			for _, topic := range control.Topics {
				ctrl.router.Subscribe(cl, topic)
			}
			return cl.WriteJSON(subscriptionUpdate{
				BaseResponse: events.BaseResponse{MessageKey: "subscription_confirmed", Success: true},
				Topics:       ctrl.router.Topics(cl),
			})
		case "unsubscribe":
			for _, topic := range control.Topics {
				ctrl.router.Unsubscribe(cl, topic)
			}
			return cl.WriteJSON(subscriptionUpdate{
				BaseResponse: events.BaseResponse{MessageKey: "unsubscription_confirmed", Success: true},
				Topics:       ctrl.router.Topics(cl),
			})
		}
	}

	if env, ok := isLegacy(raw); ok {
		if env.Type == "edit" {
			return ctrl.handleEdit(env, cl)
		}
		translated, err := translateLegacy(env)
		if err != nil {
			return cl.WriteJSON(events.NewError("invalid legacy message: "+err.Error(), env.CorrelationID))
		}
		return ctrl.router.Route(ctx, translated, legacy)
	}

	return ctrl.router.Route(ctx, raw, cl)
}

// handleEdit relays a document edit to the other subscribed connections
// and lets the frequency engine learn from the new text.
func (ctrl *Controller) handleEdit(env legacyEnvelope, cl *client) error {
	text := env.Text
	if text == "" {
		text = env.Content
	}
	if ctrl.learner != nil && text != "" {
		ctrl.learner.Learn(text)
	}

	ctrl.router.Subscribe(cl, "edit")
	ctrl.router.Broadcast("edit", editBroadcast{
		BaseResponse: events.BaseResponse{MessageKey: "edit", Success: true},
		Text:         text,
		Origin:       cl.id,
	}, cl)
	return nil
}
