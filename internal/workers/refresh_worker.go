package workers

import (
	"context"
	"time"

	"fairway_backend/internal/logger"
	"fairway_backend/internal/realtime"
)

// RefreshWorker periodically broadcasts refresh hints. Clients that
// missed a change event (reconnect, dropped frame) resync on the next
// tick instead of staying stale.
type RefreshWorker struct {
	hub      *realtime.Hub
	interval time.Duration
	tables   []string
}

func NewRefreshWorker(hub *realtime.Hub) *RefreshWorker {
	return &RefreshWorker{
		hub:      hub,
		interval: 30 * time.Second,
		tables:   []string{"messages", "posts", "rounds"},
	}
}

func (w *RefreshWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *RefreshWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("refresh", "stopped", nil)
			return
		case <-ticker.C:
			for _, table := range w.tables {
				w.hub.Broadcast(table, "refresh")
			}
		}
	}
}
