package services

import (
	"context"
	"encoding/json"
	"sync"

	"gorm.io/datatypes"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/metrics"
	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
)

// BroadcastEvent is one event fanned out to a tournament's players.
type BroadcastEvent struct {
	SenderID     string
	TournamentID string
	Type         string // a repositories.NotificationType* constant
	Title        string
	Message      string
	Data         map[string]interface{}
}

// RecipientOutcome reports one recipient's notification creation.
type RecipientOutcome struct {
	UserID string
	Err    error
}

// BroadcastResult is the explicit batch outcome of a fan-out: one entry
// per recipient plus the push batch summary. Per-item failures never fail
// the caller's top-level action.
type BroadcastResult struct {
	Outcomes      []RecipientOutcome
	PushAttempted int
	PushErr       error
}

// Created counts successfully persisted notifications.
func (r *BroadcastResult) Created() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts recipients whose notification could not be written.
func (r *BroadcastResult) Failed() int {
	return len(r.Outcomes) - r.Created()
}

type NotificationService interface {
	GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error)
	GetUnreadCount(userID string) (int64, error)
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	ClearAll(userID string) error

	// Broadcast creates one notification per registered player except the
	// sender, concurrently, then triggers one push batch excluding the
	// sender. It never returns an error: failures are collected in the
	// result, logged and counted.
	Broadcast(ctx context.Context, event BroadcastEvent) *BroadcastResult
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	tournamentRepo   repositories.TournamentRepository
	pushService      PushService
	hub              *realtime.Hub
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	tournamentRepo repositories.TournamentRepository,
	pushService PushService,
	hub *realtime.Hub,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		tournamentRepo:   tournamentRepo,
		pushService:      pushService,
		hub:              hub,
	}
}

func (s *notificationService) GetUserNotifications(userID string, criteria repositories.NotificationCriteria) (*dto.NotificationListResponse, error) {
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, err
	}

	views := make([]dto.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, dto.NotificationView{
			Notification: n,
			Presentation: repositories.PresentationFor(n.Type),
		})
	}

	return &dto.NotificationListResponse{
		Notifications: views,
		Total:         total,
		Page:          criteria.Page,
		PageSize:      criteria.PageSize,
	}, nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(userID)
}

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(userID, notificationID); err != nil {
		return err
	}
	s.hub.Publish("notifications", "user_id="+userID, "update")
	return nil
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(userID); err != nil {
		return err
	}
	s.hub.Publish("notifications", "user_id="+userID, "update")
	return nil
}

func (s *notificationService) ClearAll(userID string) error {
	if err := s.notificationRepo.DeleteUserNotifications(userID); err != nil {
		return err
	}
	s.hub.Publish("notifications", "user_id="+userID, "delete")
	return nil
}

func (s *notificationService) Broadcast(ctx context.Context, event BroadcastEvent) *BroadcastResult {
	result := &BroadcastResult{}

	players, err := s.tournamentRepo.FindPlayers(event.TournamentID)
	if err != nil {
		logger.CtxWithError(ctx, "fan-out aborted: failed to list players", err,
			"tournament_id", event.TournamentID)
		return result
	}

	var dataJSON datatypes.JSON
	if event.Data != nil {
		if raw, err := json.Marshal(event.Data); err == nil {
			dataJSON = datatypes.JSON(raw)
		} else {
			logger.CtxWithError(ctx, "fan-out: failed to marshal event data", err)
		}
	}

	var recipients []string
	for _, p := range players {
		if p.UserID == event.SenderID {
			continue
		}
		recipients = append(recipients, p.UserID)
	}

	result.Outcomes = make([]RecipientOutcome, len(recipients))

	var wg sync.WaitGroup
	for i, userID := range recipients {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			err := s.notificationRepo.Create(&models.Notification{
				UserID:       userID,
				TournamentID: event.TournamentID,
				Type:         event.Type,
				Title:        event.Title,
				Message:      event.Message,
				Data:         dataJSON,
			})
			result.Outcomes[i] = RecipientOutcome{UserID: userID, Err: err}
			if err != nil {
				metrics.NotificationsFailed.Inc()
				logger.CtxWithError(ctx, "fan-out: notification creation failed", err,
					"user_id", userID, "tournament_id", event.TournamentID)
				return
			}
			metrics.NotificationsCreated.Inc()
			s.hub.Publish("notifications", "user_id="+userID, "insert")
		}(i, userID)
	}
	wg.Wait()

	pushResp, pushErr := s.pushService.Send(ctx, &dto.PushSendRequest{
		TournamentID:  event.TournamentID,
		Title:         event.Title,
		Message:       event.Message,
		ExcludeUserID: event.SenderID,
	})
	if pushErr != nil {
		result.PushErr = pushErr
		logger.CtxWithError(ctx, "fan-out: push batch failed", pushErr,
			"tournament_id", event.TournamentID)
	} else {
		result.PushAttempted = pushResp.Sent
	}

	return result
}
