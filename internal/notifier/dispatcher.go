package notifier

import (
	"context"
	"sync"

	"bambawatch/internal/config"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Dispatcher fans composed messages out to the transport, one goroutine per
// recipient. Contract is fire-and-log: a failure for one recipient never
// blocks the others, and no retries happen at this layer.
type Dispatcher struct {
	transport Transport
	limiter   *rate.Limiter
	logger    zerolog.Logger
}

// NewDispatcher creates a Dispatcher throttled by the configured send rate.
func NewDispatcher(transport Transport, cfg config.NotificationConfig, logger zerolog.Logger) *Dispatcher {
	sendsPerSecond := cfg.SendsPerSecond
	if sendsPerSecond <= 0 {
		sendsPerSecond = 1
	}
	burst := cfg.SendBurst
	if burst < 1 {
		burst = 1
	}
	return &Dispatcher{
		transport: transport,
		limiter:   rate.NewLimiter(rate.Limit(sendsPerSecond), burst),
		logger:    logger.With().Str("component", "Dispatcher").Logger(),
	}
}

// Dispatch sends every message, waiting on the rate limiter between
// launches. Returns the number of messages that were sent successfully.
func (d *Dispatcher) Dispatch(ctx context.Context, messages []Message) int {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)

	for _, msg := range messages {
		if err := d.limiter.Wait(ctx); err != nil {
			d.logger.Warn().Err(err).Msg("Dispatch cancelled while waiting on rate limiter")
			break
		}

		wg.Add(1)
		go func(m Message) {
			defer wg.Done()
			if err := d.transport.Send(ctx, m); err != nil {
				d.logger.Error().Err(err).Str("recipient", m.To).Msg("Failed to send notification")
				return
			}
			d.logger.Info().Str("recipient", m.To).Str("subject", m.Subject).Msg("Notification sent")
			mu.Lock()
			sent++
			mu.Unlock()
		}(msg)
	}

	wg.Wait()
	return sent
}
