package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Reaper periodically drops sessions that have been idle longer than the
// view TTL. Their cached views expire with the same TTL.
type Reaper struct {
	svc      *GameService
	interval time.Duration
}

// NewReaper creates a Reaper polling at interval.
func NewReaper(svc *GameService, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{svc: svc, interval: interval}
}

// Start runs until ctx is cancelled.
func (r *Reaper) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", r.interval).Msg("Idle session reaper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Idle session reaper stopped")
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Reaper) sweep() {
	cutoff := r.svc.now().Add(-r.svc.viewTTL)
	if n := r.svc.ReapIdle(cutoff); n > 0 {
		log.Info().Int("reaped", n).Int("live", r.svc.LiveCount()).Msg("Dropped idle sessions")
	}
}
