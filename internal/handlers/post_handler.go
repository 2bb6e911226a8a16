package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fairway_backend/internal/services"
)

type createPostRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	Body         string `json:"body" validate:"required,min=1,max=4000"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}

type PostHandler struct {
	*BaseHandler
	postService services.PostService
}

func NewPostHandler(base *BaseHandler, postService services.PostService) *PostHandler {
	return &PostHandler{BaseHandler: base, postService: postService}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	posts := r.Group("/posts")
	posts.Use(authMW)
	{
		posts.POST("", h.Create)
	}
	r.GET("/tournaments/:tournamentId/posts", authMW, h.Feed)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req createPostRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, req.TournamentID, req.Body, req.ImageURL)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Feed(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 50)
	posts, err := h.postService.GetFeed(userID, c.Param("tournamentId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
