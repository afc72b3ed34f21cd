// Package realtime pushes completed analyses to connected websocket
// subscribers. The hub fans one message out to every client; slow clients
// are dropped rather than allowed to stall the broadcast loop.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/wonny/newslens/pkg/logger"
)

const (
	// Per-client buffered messages before the client is considered stuck
	clientBufferSize = 16

	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
	writeWait    = 10 * time.Second
)

// Event is one websocket payload
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Hub manages websocket subscribers and fans out analysis events
type Hub struct {
	logger *logger.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	clients map[*Client]struct{}
	mu      sync.RWMutex

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHub creates a new broadcast hub
func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger:     log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]struct{}),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until Stop is called
func (h *Hub) Run() {
	defer close(h.doneCh)

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.WithField("clients", count).Debug("Websocket client registered")

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.mu.RLock()
			targets := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				targets = append(targets, client)
			}
			h.mu.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- message:
				default:
					// Buffer full; the client is not keeping up
					h.removeClient(client)
				}
			}

		case <-h.stopCh:
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects every client
func (h *Hub) Stop() {
	h.logger.Info("Stopping realtime hub")
	close(h.stopCh)
	<-h.doneCh
}

// Publish broadcasts a typed event to every connected client
func (h *Hub) Publish(eventType string, data interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal realtime event")
		return
	}

	select {
	case h.broadcast <- payload:
	case <-h.stopCh:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.logger.WithField("clients", len(h.clients)).Debug("Websocket client removed")
}
