package websocket

import (
	"sync"

	"github.com/google/uuid"

	"people-directory/pkg/logger"
	"people-directory/pkg/metrics"
)

// Conn is the part of a websocket connection the manager writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

type Client struct {
	Conn      Conn
	SessionID uuid.UUID

	// gorilla-style conns allow one concurrent writer
	writeMu sync.Mutex
}

func (c *Client) Send(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

type WebSocketManager struct {
	mu      sync.RWMutex
	clients map[Conn]*Client
}

// Manager is the process-wide connection registry.
var Manager = NewManager()

func NewManager() *WebSocketManager {
	return &WebSocketManager{clients: make(map[Conn]*Client)}
}

func (m *WebSocketManager) RegisterClient(conn Conn, sessionID uuid.UUID) *Client {
	client := &Client{Conn: conn, SessionID: sessionID}

	m.mu.Lock()
	m.clients[conn] = client
	count := len(m.clients)
	m.mu.Unlock()

	metrics.WebSocketClients.Set(float64(count))
	logger.WebSocket("client_registered", "Client registered", map[string]interface{}{
		"session_id": sessionID.String(),
		"clients":    count,
	})
	return client
}

func (m *WebSocketManager) UnregisterClient(conn Conn) {
	m.mu.Lock()
	client, ok := m.clients[conn]
	delete(m.clients, conn)
	count := len(m.clients)
	m.mu.Unlock()

	if !ok {
		return
	}
	metrics.WebSocketClients.Set(float64(count))
	logger.WebSocket("client_unregistered", "Client unregistered", map[string]interface{}{
		"session_id": client.SessionID.String(),
		"clients":    count,
	})
}

// Send writes v to conn if it is registered.
func (m *WebSocketManager) Send(conn Conn, v interface{}) error {
	m.mu.RLock()
	client, ok := m.clients[conn]
	m.mu.RUnlock()

	if !ok {
		return conn.WriteJSON(v)
	}
	return client.Send(v)
}

func (m *WebSocketManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// SessionIDs returns the distinct sessions that have a connection open.
func (m *WebSocketManager) SessionIDs() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[uuid.UUID]struct{}, len(m.clients))
	ids := make([]uuid.UUID, 0, len(m.clients))
	for _, client := range m.clients {
		if _, ok := seen[client.SessionID]; ok {
			continue
		}
		seen[client.SessionID] = struct{}{}
		ids = append(ids, client.SessionID)
	}
	return ids
}

// BroadcastViews sends every client except those of skip the message build
// returns for its session. Clients for which build fails are skipped.
func (m *WebSocketManager) BroadcastViews(skip uuid.UUID, build func(sessionID uuid.UUID) (interface{}, error)) int {
	m.mu.RLock()
	targets := make([]*Client, 0, len(m.clients))
	for _, client := range m.clients {
		if client.SessionID != skip {
			targets = append(targets, client)
		}
	}
	m.mu.RUnlock()

	sent := 0
	for _, client := range targets {
		msg, err := build(client.SessionID)
		if err != nil {
			continue
		}
		if err := client.Send(msg); err != nil {
			logger.WebSocketError("broadcast_failed", "Failed to push view", err, map[string]interface{}{
				"session_id": client.SessionID.String(),
			})
			continue
		}
		sent++
	}
	return sent
}
