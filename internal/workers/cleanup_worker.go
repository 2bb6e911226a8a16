package workers

import (
	"context"
	"time"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/repositories"
)

// CleanupWorker prunes read notifications past their retention window.
type CleanupWorker struct {
	notificationRepo repositories.NotificationRepository
	interval         time.Duration
	retention        time.Duration
}

func NewCleanupWorker(notificationRepo repositories.NotificationRepository) *CleanupWorker {
	return &CleanupWorker{
		notificationRepo: notificationRepo,
		interval:         6 * time.Hour,
		retention:        30 * 24 * time.Hour,
	}
}

func (w *CleanupWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CleanupWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("cleanup", "stopped", nil)
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-w.retention)
			deleted, err := w.notificationRepo.DeleteReadOlderThan(cutoff)
			if err != nil {
				logger.WorkerLog("cleanup", "prune notifications", err)
				continue
			}
			if deleted > 0 {
				logger.Info("cleanup worker: pruned notifications", "deleted", deleted)
			}
		}
	}
}
