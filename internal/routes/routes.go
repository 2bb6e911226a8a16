package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fairway_backend/internal/handlers"
	"fairway_backend/internal/logger"
	"fairway_backend/ws"
)

// RegisterRoutes wires every HTTP and WebSocket route onto the engine.
func RegisterRoutes(
	engine *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.WebSocketHandler,
	authMW gin.HandlerFunc,
) {
	api := engine.Group("/api/v1")
	{
		appHandlers.ConfigHandler.RegisterRoutes(api, authMW)
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.TournamentHandler.RegisterRoutes(api, authMW)
		appHandlers.RoundHandler.RegisterRoutes(api, authMW)
		appHandlers.ChatHandler.RegisterRoutes(api, authMW)
		appHandlers.PostHandler.RegisterRoutes(api, authMW)
		appHandlers.NotificationHandler.RegisterRoutes(api, authMW)
		appHandlers.PushHandler.RegisterRoutes(api, authMW)
		appHandlers.UploadHandler.RegisterRoutes(api, authMW)
	}

	// Token auth happens inside the handler (query parameter).
	engine.GET("/ws", wsHandler.ServeWS)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	logger.Info("routes registered", "api_prefix", "/api/v1")
}
