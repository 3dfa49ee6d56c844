package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sender is the part of Service the scheduler drives.
type Sender interface {
	SendWeekly(ctx context.Context) (SendResult, error)
}

// Scheduler sends the weekly digest on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	sender  Sender
	timeout time.Duration
}

// NewScheduler registers schedule (standard five-field cron syntax) in loc.
func NewScheduler(schedule string, loc *time.Location, sender Sender, timeout time.Duration) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		sender:  sender,
		timeout: timeout,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result, err := s.sender.SendWeekly(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Scheduled digest failed")
		return
	}
	log.Info().Str("message_id", result.MessageID).Msg("Scheduled digest delivered")
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("entries", len(s.cron.Entries())).Msg("Digest scheduler started")
}

// Stop halts the schedule and waits for a running send to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Next reports when the digest will next be sent.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
