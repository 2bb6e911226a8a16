package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway_backend/internal/services"
	"fairway_backend/internal/services/dto"
)

type RoundHandler struct {
	*BaseHandler
	roundService services.RoundService
}

func NewRoundHandler(base *BaseHandler, roundService services.RoundService) *RoundHandler {
	return &RoundHandler{BaseHandler: base, roundService: roundService}
}

func (h *RoundHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	rounds := r.Group("/rounds")
	rounds.Use(authMW)
	{
		rounds.POST("", h.Create)
		rounds.GET("/:roundId", h.Scorecard)
		rounds.POST("/:roundId/scores", h.SubmitScore)
		rounds.PUT("/:roundId/complete", h.Complete)
	}
	r.GET("/tournaments/:tournamentId/rounds", authMW, h.PlayerRounds)

	courses := r.Group("/courses")
	courses.Use(authMW)
	{
		courses.GET("", h.Courses)
		courses.GET("/:courseId", h.Course)
	}
}

func (h *RoundHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRoundRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	round, err := h.roundService.CreateRound(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

func (h *RoundHandler) SubmitScore(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitScoreRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.roundService.SubmitScore(c.Request.Context(), userID, c.Param("roundId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RoundHandler) Complete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.roundService.CompleteRound(c.Request.Context(), userID, c.Param("roundId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RoundHandler) Scorecard(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	card, err := h.roundService.GetScorecard(c.Param("roundId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *RoundHandler) PlayerRounds(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	playerID := c.Query("player_id")
	if playerID == "" {
		playerID = userID
	}

	rounds, err := h.roundService.GetPlayerRounds(c.Param("tournamentId"), playerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

func (h *RoundHandler) Courses(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	courses, err := h.roundService.ListCourses()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *RoundHandler) Course(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	course, err := h.roundService.GetCourse(c.Param("courseId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
