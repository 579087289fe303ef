package extractor

import (
	"context"
	"math/rand"
	"time"

	"bambawatch/internal/artifacts"
	"bambawatch/internal/config"
	"bambawatch/internal/models"

	"github.com/rs/zerolog"
)

// consentTimeout bounds the best-effort cookie banner lookup. Kept short:
// most of the time there is no banner and waiting longer just slows runs.
const consentTimeout = 5 * time.Second

// Extractor drives a headless browser through the fixed per-store
// navigation sequence and yields one Observation per store. It never lets
// an error escape CheckStore: every failure degrades to an Observation with
// no products and a FailedStep marker.
type Extractor struct {
	cfg    config.ExtractorConfig
	tiles  *TileParser
	sink   artifacts.Sink
	logger zerolog.Logger
	rng    *rand.Rand
}

// NewExtractor creates an Extractor.
func NewExtractor(cfg config.ExtractorConfig, sink artifacts.Sink, logger zerolog.Logger) *Extractor {
	return &Extractor{
		cfg:    cfg,
		tiles:  NewTileParser(logger),
		sink:   sink,
		logger: logger.With().Str("component", "Extractor").Logger(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CheckStore runs the full extraction state machine for one store inside a
// disposable browser session. The returned Observation is always usable;
// callers decide what to do with FailedStep.
func (e *Extractor) CheckStore(ctx context.Context, store models.Store) models.Observation {
	started := time.Now()
	e.logger.Info().Str("store", store.Name).Msg("Checking store")

	s, err := newSession(ctx, store, e.cfg, e.sink, e.logger, e.rng)
	if err != nil {
		e.logger.Error().Err(err).Str("store", store.Name).Msg("Failed to start browser session")
		return models.NewFailedObservation(store.Name, started, stepLaunchBrowser)
	}
	defer s.close()

	for _, st := range e.extractionSteps() {
		if err := ctx.Err(); err != nil {
			e.logger.Warn().Str("store", store.Name).Str("step", st.name).Msg("Context cancelled, aborting store check")
			return models.NewFailedObservation(store.Name, started, st.name)
		}

		err := st.run(s)
		s.screenshot(st.name)

		if err == nil {
			s.humanDelay()
			continue
		}
		if st.optional {
			e.logger.Debug().Err(err).Str("store", store.Name).Str("step", st.name).Msg("Optional step skipped")
			continue
		}

		e.logger.Warn().Err(err).Str("store", store.Name).Str("step", st.name).Msg("Extraction step failed, recording empty observation")
		return models.NewFailedObservation(store.Name, started, st.name)
	}

	obs := models.NewObservation(store.Name, started, s.items)
	e.logger.Info().
		Str("store", store.Name).
		Bool("available", obs.Available).
		Int("products", len(obs.Products)).
		Msg("Store check finished")
	return obs
}
