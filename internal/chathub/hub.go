// Package chathub pushes newly stored chat messages to the websocket
// connections of their participants.
package chathub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Envelope is one delivery: a JSON payload addressed to a set of users.
type Envelope struct {
	Recipients []uint          `json:"recipients"`
	Payload    json.RawMessage `json:"payload"`
}

// Broker fans envelopes out between service instances.
type Broker interface {
	Publish(ctx context.Context, env Envelope) error
	Run(ctx context.Context, deliver func(Envelope))
	Close() error
}

// client serialises writes; websocket connections allow one writer at a time.
type client struct {
	mu   sync.Mutex
	conn Conn
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks open connections per user.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]map[Conn]*client
	broker  Broker
}

// NewHub returns a hub. A nil broker keeps delivery in-process.
func NewHub(broker Broker) *Hub {
	return &Hub{
		clients: make(map[uint]map[Conn]*client),
		broker:  broker,
	}
}

// Run consumes the broker until ctx is cancelled. It returns at once without a broker.
func (h *Hub) Run(ctx context.Context) {
	if h.broker == nil {
		return
	}
	h.broker.Run(ctx, h.deliver)
}

func (h *Hub) Register(userID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; !ok {
		h.clients[userID] = make(map[Conn]*client)
	}
	h.clients[userID][conn] = &client{conn: conn}
	logrus.WithFields(logrus.Fields{
		"user_id":     userID,
		"connections": len(h.clients[userID]),
	}).Debug("chat client registered")
}

func (h *Hub) Unregister(userID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

// Connections reports how many sockets a user has open.
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Broadcast sends v to every connection of the given users, through the
// broker when one is configured.
func (h *Hub) Broadcast(ctx context.Context, v interface{}, recipients ...uint) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal chat payload: %w", err)
	}
	env := Envelope{Recipients: recipients, Payload: payload}
	if h.broker != nil {
		return h.broker.Publish(ctx, env)
	}
	h.deliver(env)
	return nil
}

func (h *Hub) deliver(env Envelope) {
	type target struct {
		userID uint
		c      *client
	}
	seen := make(map[uint]bool, len(env.Recipients))
	var targets []target

	h.mu.RLock()
	for _, id := range env.Recipients {
		if seen[id] {
			continue
		}
		seen[id] = true
		for _, c := range h.clients[id] {
			targets = append(targets, target{userID: id, c: c})
		}
	}
	h.mu.RUnlock()

	for _, t := range targets {
		if err := t.c.write(env.Payload); err != nil {
			logrus.WithError(err).WithField("user_id", t.userID).Info("dropping chat client after failed write")
			h.Unregister(t.userID, t.c.conn)
			t.c.conn.Close()
		}
	}
}
