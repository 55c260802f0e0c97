// Package sweeper releases slots held by pending appointments whose lock
// window lapsed without a confirmation.
package sweeper

import (
	"context"
	"log/slog"
	"time"
)

// DefaultInterval between sweeps.
const DefaultInterval = time.Minute

// Store is the slice of appointment storage the sweeper needs.
type Store interface {
	CancelExpired(ctx context.Context, now time.Time) (int, error)
}

type Sweeper struct {
	store    Store
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
}

func New(store Store, logger *slog.Logger, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sweeper{
		store:    store,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Run sweeps on a fixed interval until the context is cancelled. A failed
// sweep is logged and retried on the next tick; rows it missed stay eligible.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce runs a single sweep.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	released, err := s.store.CancelExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("expired hold sweep failed", "err", err)
		return
	}
	if released > 0 {
		s.logger.Info("released expired holds", "count", released)
	}
}
