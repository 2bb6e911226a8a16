package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"
)

type PushHandler struct {
	*BaseHandler
	pushService services.PushService
}

func NewPushHandler(base *BaseHandler, pushService services.PushService) *PushHandler {
	return &PushHandler{BaseHandler: base, pushService: pushService}
}

func (h *PushHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	push := r.Group("/push")
	{
		// The key is needed before the user subscribes, so no auth.
		push.GET("/vapid-key", h.VAPIDKey)

		push.POST("/subscribe", authMW, h.Subscribe)
		push.DELETE("/subscribe", authMW, h.Unsubscribe)
		// Kept alongside DELETE for clients that cannot send bodies on DELETE.
		push.POST("/unsubscribe", authMW, h.Unsubscribe)
		push.POST("/send", authMW, h.Send)
	}
}

func (h *PushHandler) VAPIDKey(c *gin.Context) {
	key, err := h.pushService.PublicKey()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VAPIDKeyResponse{PublicKey: key})
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.PushSubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.pushService.Subscribe(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.PushUnsubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.pushService.Unsubscribe(req.Subscription.Endpoint); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *PushHandler) Send(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.PushSendRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.pushService.Send(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
