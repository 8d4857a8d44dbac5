package notify

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"driver-hub/internal/shared/jwt"
	"driver-hub/internal/shared/util"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSManager tracks one live connection per driver and pushes
// notifications to it.
type WSManager struct {
	tokens  *jwt.Manager
	logger  *util.Logger
	mu      sync.RWMutex
	drivers map[string]*websocket.Conn
}

func NewWSManager(tokens *jwt.Manager, logger *util.Logger) *WSManager {
	return &WSManager{
		tokens:  tokens,
		logger:  logger,
		drivers: make(map[string]*websocket.Conn),
	}
}

func (m *WSManager) addConn(driverID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.drivers[driverID]; ok {
		old.Close()
	}
	m.drivers[driverID] = conn
}

func (m *WSManager) deleteConn(driverID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.drivers[driverID] == conn {
		delete(m.drivers, driverID)
	}
}

// SendToDriver pushes a notification to the driver's live connection, if
// any. A missing connection is not an error; the backlog in History
// covers it.
func (m *WSManager) SendToDriver(driverID string, n Notification) error {
	m.mu.RLock()
	conn, ok := m.drivers[driverID]
	m.mu.RUnlock()
	if !ok {
		return nil
	}

	if err := conn.WriteJSON(map[string]interface{}{
		"type":         "notification",
		"notification": n,
	}); err != nil {
		m.deleteConn(driverID, conn)
		return fmt.Errorf("push to driver %s: %w", driverID, err)
	}
	return nil
}

// HandleDriverWebSocket upgrades the connection and keeps it registered
// until the driver disconnects.
func (m *WSManager) HandleDriverWebSocket(w http.ResponseWriter, r *http.Request) {
	driverID := r.PathValue("driver_id")

	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	claims, err := m.tokens.Parse(token)
	if err != nil || claims.Role != "driver" || claims.UserID != driverID {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Error("WSManager", fmt.Errorf("upgrade failed for driver %s: %w", driverID, err))
		return
	}

	m.addConn(driverID, conn)
	m.logger.Info("WSManager", fmt.Sprintf("driver connected [driver_id=%s]", driverID))

	// Reads are only used to detect the peer going away.
	go func() {
		defer func() {
			m.deleteConn(driverID, conn)
			conn.Close()
			m.logger.Info("WSManager", fmt.Sprintf("driver disconnected [driver_id=%s]", driverID))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
