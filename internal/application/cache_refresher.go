package application

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type CacheLoader interface {
	Refresh(ctx context.Context) error
}

// CacheRefresher periodically reloads the portfolio cache so edits made
// directly in the document store become visible.
type CacheRefresher struct {
	loader   CacheLoader
	interval time.Duration
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewCacheRefresher(loader CacheLoader, interval time.Duration) *CacheRefresher {
	return &CacheRefresher{
		loader:   loader,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

func (r *CacheRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("Cache refresher started", "interval", r.interval)

	for {
		select {
		case <-ticker.C:
			if err := r.loader.Refresh(ctx); err != nil {
				slog.Error("Error refreshing portfolio cache", "error", err)
			}
		case <-r.stopChan:
			slog.Info("Cache refresher stopped")
			return
		case <-ctx.Done():
			slog.Info("Cache refresher stopped due to context cancellation")
			return
		}
	}
}

func (r *CacheRefresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopChan) })
}
