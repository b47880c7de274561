package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Conn is the slice of a WebSocket connection the router needs. Gorilla
// connections satisfy it directly.
type Conn interface {
	WriteJSON(v any) error
}

// Handler processes messages for one message key. The returned value is
// serialized back to the sending connection; nil suppresses the reply.
// Handlers validate their own payloads and turn validation failures into
// `<key>_error` responses rather than errors.
type Handler interface {
	Key() string
	Handle(ctx context.Context, payload json.RawMessage, conn Conn) any
}

// Router dispatches JSON envelopes to handlers by message key and keeps
// per-connection topic subscriptions for broadcasting.
type Router struct {
	mu            sync.RWMutex
	handlers      map[string]Handler
	subscriptions map[Conn]map[string]bool
}

func NewRouter() *Router {
	return &Router{
		handlers:      make(map[string]Handler),
		subscriptions: make(map[Conn]map[string]bool),
	}
}

// RegisterHandler installs a handler for its key. Registering a second
// handler for the same key replaces the first.
func (r *Router) RegisterHandler(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[h.Key()]; exists {
		log.Printf("Replacing existing handler for message key %q", h.Key())
	}
	r.handlers[h.Key()] = h
}

// UnregisterHandler removes the handler for a key and reports whether
// one was registered.
func (r *Router) UnregisterHandler(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.handlers[key]
	delete(r.handlers, key)
	return exists
}

// HandlerKeys returns the registered message keys sorted alphabetically.
func (r *Router) HandlerKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.handlers))
	for key := range r.handlers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Connect starts tracking a connection. Calling it again for the same
// connection is a no-op that preserves existing subscriptions.
func (r *Router) Connect(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscriptions[conn]; !ok {
		r.subscriptions[conn] = make(map[string]bool)
	}
}

// Disconnect drops a connection and all its subscriptions. Safe to call
// repeatedly.
func (r *Router) Disconnect(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscriptions, conn)
}

// Subscribe adds the connection to a topic, connecting it first if
// needed.
func (r *Router) Subscribe(conn Conn, topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.subscriptions[conn]; !ok {
		r.subscriptions[conn] = make(map[string]bool)
	}
	r.subscriptions[conn][topic] = true
}

// Unsubscribe removes the connection from a topic.
func (r *Router) Unsubscribe(conn Conn, topic string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if topics, ok := r.subscriptions[conn]; ok {
		delete(topics, topic)
	}
}

// Topics returns the topics a connection is subscribed to, sorted.
func (r *Router) Topics(conn Conn) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.subscriptions[conn]))
	for topic := range r.subscriptions[conn] {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Route dispatches one raw message from a connection. Every failure mode
// answers the sender with an error envelope; Route itself only returns
// an error when even that write fails.
func (r *Router) Route(ctx context.Context, raw json.RawMessage, conn Conn) error {
	env, err := peekEnvelope(raw)
	if err != nil {
		return conn.WriteJSON(NewError(fmt.Sprintf("invalid message: %v", err), ""))
	}
	if env.MessageKey == "" {
		return conn.WriteJSON(NewError("message is missing a message_key", env.CorrelationID))
	}

	r.mu.RLock()
	handler, ok := r.handlers[env.MessageKey]
	r.mu.RUnlock()
	if !ok {
		resp := NewError(fmt.Sprintf("no handler registered for %q", env.MessageKey), env.CorrelationID)
		resp.AvailableHandlers = r.HandlerKeys()
		return conn.WriteJSON(resp)
	}

	response := r.dispatch(ctx, handler, raw, conn, env)

	r.Subscribe(conn, env.MessageKey)

	if response == nil {
		return nil
	}
	return conn.WriteJSON(response)
}

// dispatch isolates handler panics so a single bad message cannot take
// down the connection loop.
func (r *Router) dispatch(ctx context.Context, handler Handler, raw json.RawMessage, conn Conn, env Envelope) (response any) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Handler for %q panicked: %v", env.MessageKey, rec)
			response = HandlerError(env.MessageKey, fmt.Sprintf("internal handler failure: %v", rec), env.CorrelationID)
		}
	}()
	return handler.Handle(ctx, raw, conn)
}

// Broadcast sends a message to every connection subscribed to the topic,
// except the excluded one. Connections that fail to accept the write are
// disconnected.
func (r *Router) Broadcast(topic string, message any, exclude Conn) {
	r.mu.RLock()
	var targets []Conn
	for conn, topics := range r.subscriptions {
		if conn != exclude && topics[topic] {
			targets = append(targets, conn)
		}
	}
	r.mu.RUnlock()

	for _, conn := range targets {
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("Dropping subscriber of %q after failed write: %v", topic, err)
			r.Disconnect(conn)
		}
	}
}

// ConnectionCount returns the number of tracked connections.
func (r *Router) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscriptions)
}
