package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/leadhive/leadhive-api/internal/presentation/http/dto/response"
	"github.com/leadhive/leadhive-api/internal/presentation/http/middleware"
	"github.com/leadhive/leadhive-api/internal/realtime"
)

// EventsHandler upgrades clients to a websocket subscribed to their
// tenant's change events
type EventsHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin from the dashboard;
			// auth happens before the upgrade
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe handles the websocket upgrade
func (h *EventsHandler) Subscribe(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		response.BadRequest(c, "Failed to upgrade connection")
		return
	}

	h.hub.Register(tenantID, conn)

	go func() {
		defer func() {
			h.hub.Unregister(tenantID, conn)
			conn.Close()
		}()
		for {
			// Clients never send application data; reads only surface
			// close and keepalive frames
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
