package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway_backend/internal/services"
)

type ConfigHandler struct {
	*BaseHandler
	configService services.ConfigService
}

func NewConfigHandler(base *BaseHandler, configService services.ConfigService) *ConfigHandler {
	return &ConfigHandler{BaseHandler: base, configService: configService}
}

func (h *ConfigHandler) RegisterRoutes(r *gin.RouterGroup, _ gin.HandlerFunc) {
	// Served before login; clients bootstrap from it.
	r.GET("/config", h.Get)
}

func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.configService.ClientConfig()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
