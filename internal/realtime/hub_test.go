package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestClient(t *testing.T, hub *Hub, tenantID uuid.UUID) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(tenantID, conn)
	}))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesSubscriber(t *testing.T) {
	hub := NewHub()
	tenantID := uuid.New()
	conn := dialTestClient(t, hub, tenantID)

	require.Eventually(t, func() bool {
		return hub.ClientCount(tenantID) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(tenantID, EventLeadsUpdated)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var event Event
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, EventLeadsUpdated, event.Type)
}

func TestBroadcastIsTenantScoped(t *testing.T) {
	hub := NewHub()
	tenantA := uuid.New()
	tenantB := uuid.New()
	connB := dialTestClient(t, hub, tenantB)

	require.Eventually(t, func() bool {
		return hub.ClientCount(tenantB) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(tenantA, EventContactsUpdated)

	connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var event Event
	err := connB.ReadJSON(&event)
	assert.Error(t, err, "subscriber of another tenant should receive nothing")
}

func TestUnregisterRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	tenantID := uuid.New()
	conn := dialTestClient(t, hub, tenantID)

	require.Eventually(t, func() bool {
		return hub.ClientCount(tenantID) == 1
	}, time.Second, 10*time.Millisecond)

	hub.mu.Lock()
	var registered *websocket.Conn
	for c := range hub.clients[tenantID] {
		registered = c
	}
	hub.mu.Unlock()

	hub.Unregister(tenantID, registered)
	assert.Equal(t, 0, hub.ClientCount(tenantID))
	_ = conn
}
