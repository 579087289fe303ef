package orchestrator

import (
	"context"
	"math/rand"
	"time"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/config"
	"bambawatch/internal/datastore"
	"bambawatch/internal/differ"
	"bambawatch/internal/models"
	"bambawatch/internal/notifier"

	"github.com/rs/zerolog"
)

// Orchestrator wires the pipeline together: extraction across all stores,
// history append, change detection and notification dispatch. One
// Orchestrator handles one run at a time; scheduling lives elsewhere.
type Orchestrator struct {
	cfg        *config.GlobalConfig
	checker    StoreChecker
	guard      RunGuard
	history    *datastore.HistoryStore
	detector   *differ.ChangeDetector
	subs       datastore.SubscriberStore
	composer   *notifier.Composer
	digest     *notifier.DigestComposer
	dispatcher MessageDispatcher
	location   *time.Location
	logger     zerolog.Logger
	rng        *rand.Rand
}

// NewOrchestrator creates an Orchestrator. The timezone comes from the
// scheduler config; it drives both the operating-hours gate and digest
// timestamps.
func NewOrchestrator(
	cfg *config.GlobalConfig,
	checker StoreChecker,
	guard RunGuard,
	history *datastore.HistoryStore,
	subs datastore.SubscriberStore,
	dispatcher MessageDispatcher,
	location *time.Location,
	logger zerolog.Logger,
) *Orchestrator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Orchestrator{
		cfg:        cfg,
		checker:    checker,
		guard:      guard,
		history:    history,
		detector:   differ.NewChangeDetector(logger),
		subs:       subs,
		composer:   notifier.NewComposer(cfg.NotificationConfig.SubjectPrefix, rng, logger),
		digest:     notifier.NewDigestComposer(cfg.NotificationConfig.SubjectPrefix, location),
		dispatcher: dispatcher,
		location:   location,
		logger:     logger.With().Str("component", "Orchestrator").Logger(),
		rng:        rng,
	}
}

// WithinOperatingHours reports whether the given instant falls inside the
// configured local operating window.
func (o *Orchestrator) WithinOperatingHours(now time.Time) bool {
	hour := now.In(o.location).Hour()
	sc := o.cfg.SchedulerConfig
	return hour >= sc.OperatingHourStart && hour < sc.OperatingHourEnd
}

// RunCycle performs one complete run: check every store sequentially,
// append the batch to history, detect changes and notify immediate
// subscribers. Invoked outside the operating window it is a clean no-op
// that leaves history untouched.
func (o *Orchestrator) RunCycle(ctx context.Context) error {
	if !o.WithinOperatingHours(time.Now()) {
		o.logger.Info().Msg("Outside operating hours, skipping run")
		return nil
	}
	if !o.guard.AllowRun() {
		return nil
	}

	batch := o.checkAllStores(ctx)

	previous, err := o.history.AppendRun(batch)
	if err != nil {
		// History failure is fatal to the run: proceeding would detect
		// changes against a baseline we failed to record.
		return errorwrapper.WrapError(err, "history persistence failed")
	}

	changes := o.detector.Detect(batch, previous)
	o.logger.Info().Int("changes", len(changes)).Msg("Run cycle observations recorded")

	o.notifyImmediate(ctx, batch, changes)
	return nil
}

// checkAllStores runs the extractor over every store, one disposable
// session at a time. Parallel sessions would hammer the site and trip its
// anti-automation defenses.
func (o *Orchestrator) checkAllStores(ctx context.Context) models.RunBatch {
	batch := make(models.RunBatch, 0, len(o.cfg.Stores))
	for i, store := range o.cfg.Stores {
		if i > 0 {
			o.interStoreDelay(ctx)
		}
		batch = append(batch, o.checker.CheckStore(ctx, store))
	}
	return batch
}

func (o *Orchestrator) interStoreDelay(ctx context.Context) {
	ec := o.cfg.ExtractorConfig
	if ec.MaxStepDelayMs <= ec.MinStepDelayMs {
		return
	}
	d := time.Duration(ec.MinStepDelayMs+o.rng.Intn(ec.MaxStepDelayMs-ec.MinStepDelayMs)) * time.Millisecond
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// notifyImmediate composes and dispatches messages for immediate
// subscribers. A subscriber lookup failure degrades to an empty list; the
// observation side of the run has already completed and stays valid.
func (o *Orchestrator) notifyImmediate(ctx context.Context, batch models.RunBatch, changes []models.Change) {
	subscribers, err := o.subs.List(ctx, models.FrequencyImmediate)
	if err != nil {
		o.logger.Error().Err(err).Msg("Subscriber lookup failed, skipping notifications for this run")
		return
	}

	var messages []notifier.Message
	for _, sub := range subscribers {
		if msg, ok := o.composer.Compose(batch, changes, sub); ok {
			messages = append(messages, msg)
		}
	}
	if len(messages) == 0 {
		o.logger.Debug().Msg("No notifications to send this run")
		return
	}

	sent := o.dispatcher.Dispatch(ctx, messages)
	o.logger.Info().Int("composed", len(messages)).Int("sent", sent).Msg("Immediate notifications dispatched")
}

// RunDigest sends the daily summary of today's runs to daily subscribers.
func (o *Orchestrator) RunDigest(ctx context.Context) error {
	history, err := o.history.Load()
	if err != nil {
		return errorwrapper.WrapError(err, "failed to load history for digest")
	}

	runs := history.RunsOn(time.Now(), o.location)
	if len(runs) == 0 {
		o.logger.Info().Msg("No runs today, digest skipped")
		return nil
	}

	subscribers, err := o.subs.List(ctx, models.FrequencyDaily)
	if err != nil {
		o.logger.Error().Err(err).Msg("Subscriber lookup failed, digest skipped")
		return nil
	}

	var messages []notifier.Message
	for _, sub := range subscribers {
		if msg, ok := o.digest.Compose(runs, sub); ok {
			messages = append(messages, msg)
		}
	}
	if len(messages) == 0 {
		return nil
	}

	sent := o.dispatcher.Dispatch(ctx, messages)
	o.logger.Info().Int("runs", len(runs)).Int("sent", sent).Msg("Daily digest dispatched")
	return nil
}
