package session

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/creastat/stream-gateway/pkg/logger"
	"github.com/creastat/stream-gateway/pkg/models"
	"github.com/creastat/stream-gateway/pkg/ops"
)

// Manager accepts per-session WebSocket connections, tracks group
// membership for fan-out and feeds inbound frames to the dispatcher. A
// single malformed frame is never fatal to the connection.
type Manager struct {
	registry   *Registry
	dispatcher *ops.Dispatcher
	upgrader   websocket.Upgrader
	log        logger.Logger
}

// NewManager creates a session manager around the given dispatcher.
func NewManager(dispatcher *ops.Dispatcher, log logger.Logger) *Manager {
	return &Manager{
		registry:   NewRegistry(),
		dispatcher: dispatcher,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

// Registry exposes the broadcast-group registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// HandleSession serves GET /ws/ai/{session_id}. A missing session id is
// rejected before any handshake.
func (m *Manager) HandleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("session_id")
	if sessionID == "" {
		http.Error(w, "session id required", http.StatusNotFound)
		return
	}

	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Warn("websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	conn := newConn(ws, m.log)
	group := GroupKey(sessionID)
	m.registry.Join(group, conn)

	// Leave is idempotent and runs on every exit path, including an exit
	// before the handshake message went out.
	defer func() {
		m.registry.Leave(group, conn)
		conn.close()
	}()

	go conn.writePump()

	conn.Queue(models.ConnectionEstablished{
		Type:         "connection_established",
		SessionID:    sessionID,
		Capabilities: m.dispatcher.Capabilities(),
		Timestamp:    models.Timestamp(),
	})

	m.log.Info("session connected", "session_id", sessionID, "group_size", m.registry.Size(group))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			m.log.Debug("session read loop ended", "session_id", sessionID, "error", err)
			return
		}

		// Each operation runs as its own unit of work so a slow handler
		// never blocks an interleaved ping on the same socket.
		go m.dispatcher.Dispatch(ctx, data, conn.Queue)
	}
}

// HandleHealth serves GET /ws/health: accept, emit one health_check frame,
// close. Liveness probe only.
func (m *Manager) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ws, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer ws.Close()

	probe := models.HealthCheck{
		Type:      "health_check",
		Status:    "ok",
		Timestamp: models.Timestamp(),
	}
	if err := ws.WriteJSON(probe); err != nil {
		m.log.Debug("health probe write failed", "error", err)
	}
}
