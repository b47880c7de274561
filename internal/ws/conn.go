// Package ws exposes the event router over a gin WebSocket endpoint.
package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a WebSocket connection with a write lock. Gorilla
// connections allow only one concurrent writer, and broadcasts arrive
// from other connections' goroutines.
type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}
