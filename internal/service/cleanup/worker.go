package cleanup

import (
	"context"
	"log"
	"time"
)

// GameStore deletes finished games past their retention period.
type GameStore interface {
	DeleteGamesOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

type Worker struct {
	Store     GameStore
	Retention time.Duration
	Interval  time.Duration
	// OnPurge, when set, runs after a pass that removed at least one game.
	OnPurge func(ctx context.Context)
}

func NewWorker(store GameStore, retention, interval time.Duration) *Worker {
	return &Worker{Store: store, Retention: retention, Interval: interval}
}

// Start runs a cleanup immediately, then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.RunOnce(ctx)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce executes the actual cleanup logic and returns how many games were removed.
func (w *Worker) RunOnce(ctx context.Context) int64 {
	deleted, err := w.Store.DeleteGamesOlderThan(ctx, w.Retention)
	if err != nil {
		log.Printf("[CLEANUP] Error cleaning up old games: %v", err)
		return 0
	}
	if deleted > 0 {
		log.Printf("[CLEANUP] Removed %d games older than %s", deleted, w.Retention)
		if w.OnPurge != nil {
			w.OnPurge(ctx)
		}
	}
	return deleted
}
