// Package scheduler delivers the daily fact to every stored recipient.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/go-multierror"

	"funfact_bot/internal/config"
	"funfact_bot/internal/storage"
)

// Deliverer sends one fact to one chat.
type Deliverer interface {
	DeliverFact(ctx context.Context, chatID int64) error
}

// Scheduler wakes up periodically and runs the daily dispatch once the
// configured time of day has arrived.
type Scheduler struct {
	store     storage.Recipients
	deliverer Deliverer
	at        config.DailyTime
	loc       *time.Location
	log       *slog.Logger
	tick      time.Duration
	now       func() time.Time
}

// New creates a Scheduler that dispatches every day at the given time in loc.
func New(store storage.Recipients, deliverer Deliverer, at config.DailyTime, loc *time.Location, log *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		store:     store,
		deliverer: deliverer,
		at:        at,
		loc:       loc,
		log:       log,
		tick:      1 * time.Minute,
		now:       time.Now,
	}
}

// Run starts the scheduler loop, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	next := NextRun(s.now(), s.at, s.loc)
	s.log.Info("daily dispatch scheduled", "next_run", next)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next = s.runIfDue(ctx, next)
		}
	}
}

// runIfDue dispatches when next has passed and returns the following run time.
func (s *Scheduler) runIfDue(ctx context.Context, next time.Time) time.Time {
	now := s.now()
	if now.Before(next) {
		return next
	}

	if err := s.Dispatch(ctx); err != nil {
		s.log.Error("daily dispatch", "error", err)
	}

	next = NextRun(now, s.at, s.loc)
	s.log.Info("daily dispatch scheduled", "next_run", next)
	return next
}

// Dispatch delivers a fact to every recipient. A failure for one recipient
// does not stop delivery to the others; all failures are returned together.
func (s *Scheduler) Dispatch(ctx context.Context) error {
	ids, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list recipients: %w", err)
	}

	s.log.Info("sending daily facts", "recipients", len(ids))

	var result *multierror.Error
	sent := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			result = multierror.Append(result, ctx.Err())
			break
		}
		if err := s.deliverer.DeliverFact(ctx, id); err != nil {
			s.log.Error("deliver daily fact", "chat_id", id, "error", err)
			result = multierror.Append(result, fmt.Errorf("chat %d: %w", id, err))
			continue
		}
		sent++
	}

	s.log.Info("daily facts sent", "sent", sent, "failed", len(ids)-sent)
	return result.ErrorOrNil()
}

// NextRun returns the first occurrence of at strictly after now, in loc.
func NextRun(now time.Time, at config.DailyTime, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), at.Hour, at.Minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, at.Hour, at.Minute, 0, 0, loc)
	}
	return next
}
