package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// Digester sends the daily progress summary.
type Digester interface {
	IsEnabled() bool
	SendProgressDigest(ctx context.Context) error
}

// Scheduler runs the daily digest job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	digester  Digester
	hour      int
}

// New creates a scheduler that sends the digest once a day at the given
// local hour (0-23).
func New(digester Digester, hour int) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 18
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		digester:  digester,
		hour:      hour,
	}
}

// Start begins running all scheduled tasks. Nothing is scheduled when the
// digester is disabled.
func (s *Scheduler) Start() {
	if !s.digester.IsEnabled() {
		log.Info().Msg("digest scheduling skipped: digester disabled")
		return
	}

	at := fmt.Sprintf("%02d:00", s.hour)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.sendDigest); err != nil {
		log.Error().Err(err).Msg("failed to schedule daily digest")
		return
	}
	s.scheduler.StartAsync()
	log.Info().Str("at", at).Msg("daily digest scheduled")
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.digester.SendProgressDigest(ctx); err != nil {
		log.Error().Err(err).Msg("daily digest failed")
	}
}
