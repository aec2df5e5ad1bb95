// Package realtime fans change notifications out to connected dashboard
// clients over websockets. Delivery is fire-and-forget: there is no
// ordering guarantee across listeners and no replay for late subscribers.
package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Event names broadcast to clients.
const (
	EventLeadsUpdated     = "leads-updated"
	EventContactsUpdated  = "contacts-updated"
	EventPipelinesUpdated = "pipelines-updated"
	EventFormsUpdated     = "forms-updated"
)

// Event is the wire message pushed to subscribed clients
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// Hub tracks websocket subscribers per tenant and broadcasts change events
type Hub struct {
	mu      sync.Mutex
	clients map[uuid.UUID]map[*websocket.Conn]bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*websocket.Conn]bool),
	}
}

// Register adds a connection to a tenant's subscriber set
func (h *Hub) Register(tenantID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[tenantID] == nil {
		h.clients[tenantID] = make(map[*websocket.Conn]bool)
	}
	h.clients[tenantID][conn] = true
}

// Unregister removes a connection from a tenant's subscriber set
func (h *Hub) Unregister(tenantID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[tenantID], conn)
	if len(h.clients[tenantID]) == 0 {
		delete(h.clients, tenantID)
	}
}

// Broadcast pushes an event to every subscriber of a tenant. Connections
// that fail to accept the write are closed and dropped.
func (h *Hub) Broadcast(tenantID uuid.UUID, eventType string) {
	msg := Event{Type: eventType, At: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[tenantID] {
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(h.clients[tenantID], conn)
		}
	}
}

// ClientCount returns the number of live subscribers for a tenant
func (h *Hub) ClientCount(tenantID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[tenantID])
}
