package service

import (
	"context"
	"time"

	"zazen/internal/modules/session/domain"
	"zazen/internal/platform/clock"
)

const defaultTickInterval = 500 * time.Millisecond

// Runner owns the periodic-recompute scheduling handle for a headless
// session: the ticker is acquired when Run starts and released on
// every exit path, whether the session finishes, resets, or the
// context is cancelled.
type Runner struct {
	engine   *Engine
	clock    clock.Clock
	interval time.Duration
}

func NewRunner(engine *Engine, clk clock.Clock, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = defaultTickInterval
	}
	return &Runner{engine: engine, clock: clk, interval: interval}
}

// Run drives recomputes until the session leaves the Running/Paused
// states. It returns the context error on cancellation so callers can
// distinguish an aborted session from a completed one.
func (r *Runner) Run(ctx context.Context) error {
	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C():
			snap := r.engine.Recompute(now)
			if snap.Status == domain.StatusFinished || snap.Status == domain.StatusIdle {
				return nil
			}
		}
	}
}
