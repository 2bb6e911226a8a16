package services

import (
	"context"
	"encoding/json"
	"sync"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/metrics"
	"fairway_backend/internal/models"
	"fairway_backend/internal/push"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/services/dto"
	"fairway_backend/pkg/apperrors"
)

// pushPayload is the JSON body delivered to the service worker.
type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Icon  string `json:"icon"`
	Badge string `json:"badge"`
	URL   string `json:"url"`
}

type PushService interface {
	Subscribe(req *dto.PushSubscribeRequest) error
	Unsubscribe(endpoint string) error
	// PublicKey returns the VAPID public key, or a NOT_CONFIGURED error
	// when push is disabled.
	PublicKey() (string, error)
	// Send attempts delivery to every matching subscription. Sent reports
	// the attempted candidate count; per-subscription failures are caught,
	// and endpoints reported gone (410) are pruned.
	Send(ctx context.Context, req *dto.PushSendRequest) (*dto.PushSendResponse, error)
}

type pushService struct {
	subRepo   repositories.PushSubscriptionRepository
	transport push.Transport
	keys      push.VAPIDKeys
}

func NewPushService(subRepo repositories.PushSubscriptionRepository, transport push.Transport, keys push.VAPIDKeys) PushService {
	return &pushService{
		subRepo:   subRepo,
		transport: transport,
		keys:      keys,
	}
}

func (s *pushService) Subscribe(req *dto.PushSubscribeRequest) error {
	sub := &models.PushSubscription{
		UserID:       req.UserID,
		TournamentID: req.TournamentID,
		Endpoint:     req.Subscription.Endpoint,
		P256dh:       req.Subscription.Keys.P256dh,
		Auth:         req.Subscription.Keys.Auth,
	}
	return s.subRepo.Upsert(sub)
}

func (s *pushService) Unsubscribe(endpoint string) error {
	err := s.subRepo.DeleteByEndpoint(endpoint)
	if err != nil && !apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
		return err
	}
	// Deleting an already-deleted endpoint is fine: the end state matches.
	return nil
}

func (s *pushService) PublicKey() (string, error) {
	if !s.keys.Configured() {
		return "", apperrors.NewNotConfiguredError("push", "VAPID keys are not configured")
	}
	return s.keys.PublicKey, nil
}

func (s *pushService) Send(ctx context.Context, req *dto.PushSendRequest) (*dto.PushSendResponse, error) {
	// Absent credentials are a degraded mode, not a failure.
	if !s.keys.Configured() {
		return &dto.PushSendResponse{
			Success: true,
			Sent:    0,
			Message: "push notifications not configured",
		}, nil
	}

	subs, err := s.subRepo.FindByTournament(req.TournamentID, repositories.SubscriptionFilter{
		UserID:        req.UserID,
		ExcludeUserID: req.ExcludeUserID,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "push", "failed to load subscriptions", 500)
	}

	if len(subs) == 0 {
		return &dto.PushSendResponse{Success: true, Sent: 0}, nil
	}

	payload, err := json.Marshal(pushPayload{
		Title: req.Title,
		Body:  req.Message,
		Icon:  "/icons/icon-192.png",
		Badge: "/icons/badge-72.png",
		URL:   "/tournament/" + req.TournamentID,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	var wg sync.WaitGroup
	for i := range subs {
		sub := subs[i]
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.deliver(ctx, &sub, payload)
		}()
	}
	wg.Wait()

	// Sent reports attempted candidates; confirmed outcomes go to metrics.
	return &dto.PushSendResponse{Success: true, Sent: len(subs)}, nil
}

func (s *pushService) deliver(ctx context.Context, sub *models.PushSubscription, payload []byte) {
	status, err := s.transport.Send(ctx, sub, payload)
	if err != nil {
		metrics.PushFailed.Inc()
		logger.Warn("push delivery failed", "endpoint", sub.Endpoint, "error", err.Error())
		return
	}

	if status == push.StatusGone {
		// The endpoint no longer exists; stop retrying it forever.
		metrics.PushPruned.Inc()
		if err := s.subRepo.DeleteByEndpoint(sub.Endpoint); err != nil &&
			!apperrors.Is(err, repositories.ErrSubscriptionNotFound) {
			logger.Warn("failed to prune gone subscription", "endpoint", sub.Endpoint, "error", err.Error())
		}
		return
	}

	if status >= 400 {
		metrics.PushFailed.Inc()
		logger.Warn("push service rejected delivery", "endpoint", sub.Endpoint, "status", status)
		return
	}

	metrics.PushSent.Inc()
}
