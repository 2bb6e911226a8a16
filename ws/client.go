package ws

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/realtime"
)

type incomingMessage struct {
	Action string          `json:"action"` // "subscribe" or "unsubscribe"
	Data   json.RawMessage `json:"data"`
}

type channelRequest struct {
	Table  string `json:"table"`
	Filter string `json:"filter"`
}

type outgoingEvent struct {
	Type  string         `json:"type"`
	Event realtime.Event `json:"event"`
}

type Client struct {
	UserID string

	conn    *websocket.Conn
	send    chan any
	manager *WebSocketManager

	mu   sync.Mutex
	subs map[channelRequest]*realtime.Subscription
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	for {
		_, msgBytes, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg incomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Warn("websocket: unparseable message", "user_id", c.UserID, "error", err)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *Client) handleMessage(msg incomingMessage) {
	var req channelRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Table == "" {
		logger.Warn("websocket: invalid channel request", "user_id", c.UserID, "action", msg.Action)
		return
	}

	switch msg.Action {
	case "subscribe":
		c.subscribe(req)
	case "unsubscribe":
		c.unsubscribe(req)
	default:
		logger.Warn("websocket: unhandled action", "action", msg.Action)
	}
}

// filterAllowed rejects user-scoped filters that name someone else.
// Tournament-scoped channels stay open to any authenticated socket.
func (c *Client) filterAllowed(filter string) bool {
	if owner, ok := strings.CutPrefix(filter, "user_id="); ok {
		return owner == c.UserID
	}
	return true
}

func (c *Client) subscribe(req channelRequest) {
	if !c.filterAllowed(req.Filter) {
		logger.Warn("websocket: filter denied", "user_id", c.UserID, "filter", req.Filter)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.subs[req]; exists {
		return
	}
	c.subs[req] = c.manager.hub.Subscribe(req.Table, req.Filter, func(event realtime.Event) {
		// Drop rather than block: a stalled socket must not hold the hub.
		select {
		case c.send <- outgoingEvent{Type: "change", Event: event}:
		default:
		}
	})
}

func (c *Client) unsubscribe(req channelRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub, exists := c.subs[req]; exists {
		sub.Unsubscribe()
		delete(c.subs, req)
	}
}

func (c *Client) dropSubscriptions() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for req, sub := range c.subs {
		sub.Unsubscribe()
		delete(c.subs, req)
	}
}
