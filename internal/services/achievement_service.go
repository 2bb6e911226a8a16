package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/metrics"
	"fairway_backend/internal/models"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/scoring"
)

// ScoreEvent carries one submitted hole result into the achievement
// pipeline, with the player's full round so far as detection context.
type ScoreEvent struct {
	UserID       string
	PlayerName   string
	TournamentID string
	RoundID      string
	Newest       scoring.HoleScore
	Previous     []scoring.HoleScore
}

// AchievementService turns submitted scores into feed posts and fan-out
// notifications. Publishing failures are logged and counted but never
// surfaced to the score submitter.
type AchievementService interface {
	// OnScoreSubmitted detects achievements for the event and publishes
	// each one. It returns the detected achievements so the caller can
	// echo them in its own response.
	OnScoreSubmitted(ctx context.Context, event ScoreEvent) []scoring.Achievement
}

type achievementService struct {
	postRepo            repositories.PostRepository
	notificationService NotificationService
	hub                 *realtime.Hub
}

func NewAchievementService(
	postRepo repositories.PostRepository,
	notificationService NotificationService,
	hub *realtime.Hub,
) AchievementService {
	return &achievementService{
		postRepo:            postRepo,
		notificationService: notificationService,
		hub:                 hub,
	}
}

func (s *achievementService) OnScoreSubmitted(ctx context.Context, event ScoreEvent) []scoring.Achievement {
	achievements := scoring.Detect(event.Newest, event.Previous)

	for _, a := range achievements {
		metrics.AchievementsDetected.WithLabelValues(a.Type).Inc()
		s.publish(ctx, event, a)
	}

	return achievements
}

// publish creates the feed post and broadcasts the notification for one
// achievement. A post failure skips the hub event for the feed but the
// notification fan-out still runs; one achievement failing never stops
// the next.
func (s *achievementService) publish(ctx context.Context, event ScoreEvent, a scoring.Achievement) {
	headline := a.Headline(event.PlayerName)

	data := map[string]interface{}{
		"achievement": a.Type,
		"hole":        a.HoleNumber,
		"strokes":     a.Strokes,
		"par":         a.Par,
		"round_id":    event.RoundID,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		logger.CtxWithError(ctx, "achievement publish: data marshal failed", err)
		raw = nil
	}

	post := &models.Post{
		TournamentID: event.TournamentID,
		AuthorID:     event.UserID,
		AuthorName:   event.PlayerName,
		Kind:         models.PostKindAchievement,
		Body:         headline,
		Data:         datatypes.JSON(raw),
	}
	if err := s.postRepo.Create(post); err != nil {
		metrics.AchievementPostsFailed.Inc()
		logger.CtxWithError(ctx, "achievement publish: post creation failed", err,
			"tournament_id", event.TournamentID, "type", a.Type)
	} else {
		s.hub.Publish("posts", "tournament_id="+event.TournamentID, "insert")
	}

	s.notificationService.Broadcast(ctx, BroadcastEvent{
		SenderID:     event.UserID,
		TournamentID: event.TournamentID,
		Type:         repositories.NotificationTypeAchievement,
		Title:        "Achievement!",
		Message:      headline,
		Data:         data,
	})
}
