package ws

import (
	"sync"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/realtime"
)

// WebSocketManager tracks connected clients and bridges realtime hub
// events out to their sockets. One client per connection; a user with
// two tabs holds two clients.
type WebSocketManager struct {
	hub *realtime.Hub

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewWebSocketManager(hub *realtime.Hub) *WebSocketManager {
	return &WebSocketManager{
		hub:        hub,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *WebSocketManager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("websocket client connected", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				// Detach from the hub before closing the channel so no
				// callback writes to a closed send channel.
				client.dropSubscriptions()
				close(client.send)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Info("websocket client disconnected", "user_id", client.UserID, "total", total)
		}
	}
}

func (m *WebSocketManager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
