package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// SessionSweeper periodically purges browser sessions that have not been
// written for longer than the idle window.
type SessionSweeper struct {
	store    driven.StorageStore
	idle     time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewSessionSweeper creates a new SessionSweeper.
func NewSessionSweeper(store driven.StorageStore, idle, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		idle:     idle,
		interval: interval,
		now:      time.Now,
	}
}

// Start sweeps once immediately, then on every interval. Start blocks until
// the context is canceled.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	n, err := s.store.PurgeIdle(ctx, s.now().Add(-s.idle))
	if err != nil {
		slog.Error("session sweep failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("purged idle browser sessions", "rows", n)
	}
}
