package dto

import "fairway_backend/internal/models"

type SendMessageRequest struct {
	TournamentID string `json:"tournament_id" validate:"required"`
	Body         string `json:"body" validate:"required,min=1,max=2000"`
}

type MessageListResponse struct {
	Messages []models.Message `json:"messages"`
}
