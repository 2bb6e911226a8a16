package services

import (
	"context"

	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

type ChatService interface {
	// SendMessage persists the message, publishes the realtime change hint
	// and fans out a chat notification to the other players.
	SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*models.Message, error)
	GetMessages(userID, tournamentID string, limit int) (*dto.MessageListResponse, error)
}

type chatService struct {
	messageRepo         repositories.MessageRepository
	tournamentRepo      repositories.TournamentRepository
	notificationService NotificationService
	hub                 *realtime.Hub
}

func NewChatService(
	messageRepo repositories.MessageRepository,
	tournamentRepo repositories.TournamentRepository,
	notificationService NotificationService,
	hub *realtime.Hub,
) ChatService {
	return &chatService{
		messageRepo:         messageRepo,
		tournamentRepo:      tournamentRepo,
		notificationService: notificationService,
		hub:                 hub,
	}
}

func (s *chatService) SendMessage(ctx context.Context, senderID string, req *dto.SendMessageRequest) (*models.Message, error) {
	player, err := s.tournamentRepo.FindPlayer(req.TournamentID, senderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, apperrors.NewForbiddenError("join the tournament to chat")
		}
		return nil, apperrors.InternalError(err)
	}

	message := &models.Message{
		TournamentID: req.TournamentID,
		SenderID:     senderID,
		SenderName:   player.DisplayName,
		Body:         req.Body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.hub.Publish("messages", "tournament_id="+req.TournamentID, "insert")

	// Fan-out failures never fail the send.
	s.notificationService.Broadcast(ctx, BroadcastEvent{
		SenderID:     senderID,
		TournamentID: req.TournamentID,
		Type:         repositories.NotificationTypeChat,
		Title:        "New message",
		Message:      player.DisplayName + ": " + truncateBody(req.Body, 120),
	})

	return message, nil
}

func (s *chatService) GetMessages(userID, tournamentID string, limit int) (*dto.MessageListResponse, error) {
	if _, err := s.tournamentRepo.FindPlayer(tournamentID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, apperrors.NewForbiddenError("join the tournament to read chat")
		}
		return nil, apperrors.InternalError(err)
	}

	messages, err := s.messageRepo.FindTournamentMessages(tournamentID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.MessageListResponse{Messages: messages}, nil
}

func truncateBody(body string, max int) string {
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "…"
}
