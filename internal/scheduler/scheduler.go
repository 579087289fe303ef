package scheduler

import (
	"context"
	"math/rand"
	"time"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/config"
	"bambawatch/internal/orchestrator"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler runs the pipeline hourly at the top of the hour plus a random
// jitter, and fires the daily digest on its cron schedule. The operating
// window itself is enforced by the orchestrator's gate, so an off-hours
// tick is a cheap no-op.
type Scheduler struct {
	cfg      config.SchedulerConfig
	digest   string
	orch     *orchestrator.Orchestrator
	location *time.Location
	logger   zerolog.Logger
	rng      *rand.Rand
}

// NewScheduler creates a Scheduler.
func NewScheduler(cfg *config.GlobalConfig, orch *orchestrator.Orchestrator, location *time.Location, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg.SchedulerConfig,
		digest:   cfg.NotificationConfig.DigestCron,
		orch:     orch,
		location: location,
		logger:   logger.With().Str("component", "Scheduler").Logger(),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start runs an initial cycle immediately, then loops until the context is
// cancelled. Blocks for the lifetime of the process in automated mode.
func (s *Scheduler) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.location))
	if s.digest != "" {
		if _, err := c.AddFunc(s.digest, func() {
			if err := s.orch.RunDigest(ctx); err != nil {
				s.logger.Error().Err(err).Msg("Daily digest failed")
			}
		}); err != nil {
			return errorwrapper.WrapError(err, "invalid digest cron expression")
		}
		c.Start()
		defer c.Stop()
	}

	s.logger.Info().Msg("Running initial cycle")
	s.runCycle(ctx)

	for {
		next := s.NextRunTime(time.Now())
		s.logger.Info().Time("next_run", next).Msg("Next run scheduled")

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Scheduler stopping")
			return ctx.Err()
		case <-time.After(time.Until(next)):
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if err := s.orch.RunCycle(ctx); err != nil {
		// A failed cycle is logged and the loop keeps going; the next
		// hour gets a fresh attempt against intact history.
		s.logger.Error().Err(err).Msg("Run cycle failed")
	}
}

// NextRunTime computes the next top of the hour plus a uniform offset in
// [-jitter, +jitter] minutes. A result in the past degrades to one minute
// from now.
func (s *Scheduler) NextRunTime(now time.Time) time.Time {
	local := now.In(s.location)
	nextHour := local.Truncate(time.Hour).Add(time.Hour)

	jitter := time.Duration(0)
	if s.cfg.JitterMinutes > 0 {
		window := 2 * s.cfg.JitterMinutes * 60
		jitter = time.Duration(s.rng.Intn(window)-window/2) * time.Second
	}

	runAt := nextHour.Add(jitter)
	if !runAt.After(now) {
		runAt = now.Add(time.Minute)
	}
	return runAt
}
