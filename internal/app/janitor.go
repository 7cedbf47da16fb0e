package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"bookingdesk/internal/logger"
)

// SessionEvicter removes wizard sessions that have been idle too long.
type SessionEvicter interface {
	EvictIdle(ttl time.Duration) int
	Len() int
}

// Janitor periodically evicts idle wizard sessions.
type Janitor struct {
	cron     *cron.Cron
	sessions SessionEvicter
	ttl      time.Duration
	log      *logger.Logger
}

// NewJanitor schedules eviction of sessions idle for ttl. schedule uses cron
// syntax, including descriptors such as "@every 5m".
func NewJanitor(schedule string, ttl time.Duration, sessions SessionEvicter, log *logger.Logger) (*Janitor, error) {
	if log == nil {
		log = logger.Nop()
	}
	j := &Janitor{
		cron:     cron.New(),
		sessions: sessions,
		ttl:      ttl,
		log:      log.WithField("component", "janitor"),
	}
	if _, err := j.cron.AddFunc(schedule, j.Sweep); err != nil {
		return nil, fmt.Errorf("invalid janitor schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Sweep evicts idle sessions once.
func (j *Janitor) Sweep() {
	evicted := j.sessions.EvictIdle(j.ttl)
	if evicted > 0 {
		j.log.WithFields(map[string]any{
			"evicted":   evicted,
			"remaining": j.sessions.Len(),
		}).Info("evicted idle wizard sessions")
	}
}

// Start runs the schedule in the background.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
