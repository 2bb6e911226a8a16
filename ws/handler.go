package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fairway_backend/internal/auth"
	"fairway_backend/internal/logger"
	"fairway_backend/internal/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager *WebSocketManager
	tokens  *auth.TokenIssuer
}

func NewWebSocketHandler(manager *WebSocketManager, tokens *auth.TokenIssuer) *WebSocketHandler {
	return &WebSocketHandler{manager: manager, tokens: tokens}
}

// ServeWS upgrades the connection. Browsers cannot set an Authorization
// header on a WebSocket, so the JWT arrives as a query parameter.
func (h *WebSocketHandler) ServeWS(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "'token' query parameter is required"})
		return
	}
	claims, err := h.tokens.Parse(tokenStr)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		UserID:  claims.UserID,
		conn:    conn,
		send:    make(chan any, 256),
		manager: h.manager,
		subs:    make(map[channelRequest]*realtime.Subscription),
	}

	h.manager.register <- client

	go client.readPump()
	go client.writePump()
}
