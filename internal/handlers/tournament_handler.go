package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"
)

type TournamentHandler struct {
	*BaseHandler
	tournamentService services.TournamentService
}

func NewTournamentHandler(base *BaseHandler, tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{BaseHandler: base, tournamentService: tournamentService}
}

func (h *TournamentHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	tournaments := r.Group("/tournaments")
	tournaments.Use(authMW)
	{
		tournaments.POST("", h.Create)
		tournaments.POST("/join", h.Join)
		tournaments.GET("/:tournamentId", h.Get)
		tournaments.GET("/:tournamentId/players", h.Players)
		tournaments.PUT("/blur", h.UpdateBlur)
		tournaments.POST("/:tournamentId/invite", h.Invite)
	}
}

func (h *TournamentHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTournamentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	tournament, err := h.tournamentService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tournament)
}

func (h *TournamentHandler) Join(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.JoinTournamentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	tournament, err := h.tournamentService.Join(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (h *TournamentHandler) Get(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	tournament, err := h.tournamentService.Get(c.Param("tournamentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tournament)
}

func (h *TournamentHandler) Players(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	players, err := h.tournamentService.Players(c.Param("tournamentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": players})
}

func (h *TournamentHandler) UpdateBlur(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBlurRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.tournamentService.UpdateBlur(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *TournamentHandler) Invite(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.InviteRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.tournamentService.Invite(c.Request.Context(), userID, c.Param("tournamentId"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
