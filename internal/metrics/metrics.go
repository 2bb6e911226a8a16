package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Per-item outcomes of fan-out batches. The HTTP responses report attempted
// counts; confirmed successes and failures live here.
var (
	PushSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairway_push_sent_total",
		Help: "Push deliveries confirmed by the push service.",
	})

	PushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairway_push_failed_total",
		Help: "Push deliveries that errored.",
	})

	PushPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairway_push_pruned_total",
		Help: "Push subscriptions deleted after a 410 Gone response.",
	})

	NotificationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairway_notifications_created_total",
		Help: "Notification records created by fan-out.",
	})

	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairway_notifications_failed_total",
		Help: "Notification creations that errored inside a fan-out batch.",
	})

	AchievementsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fairway_achievements_detected_total",
		Help: "Achievements detected on submitted hole scores.",
	}, []string{"type"})

	AchievementPostsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fairway_achievement_posts_failed_total",
		Help: "Achievement feed posts that failed to persist.",
	})
)
