package extractor

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"bambawatch/internal/artifacts"
	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/config"
	"bambawatch/internal/models"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// session is one disposable browser session checking one store. Sessions
// are never shared between stores; a wedged session is simply closed and
// the next store gets a fresh one.
type session struct {
	store    models.Store
	cfg      config.ExtractorConfig
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	sink     artifacts.Sink
	logger   zerolog.Logger
	rng      *rand.Rand

	// filled by the extraction steps
	containerHTML string
	items         []models.Item
}

const webdriverMaskScript = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined})`

// newSession launches a fresh browser and opens a blank page bound to ctx.
func newSession(ctx context.Context, store models.Store, cfg config.ExtractorConfig, sink artifacts.Sink, logger zerolog.Logger, rng *rand.Rand) (*session, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if cfg.ChromePath != "" {
		l = l.Bin(cfg.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to launch browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, errorwrapper.WrapError(err, "failed to connect to browser")
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Cleanup()
		return nil, errorwrapper.WrapError(err, "failed to create page")
	}

	s := &session{
		store:    store,
		cfg:      cfg,
		launcher: l,
		browser:  browser,
		page:     page,
		sink:     sink,
		logger:   logger.With().Str("component", "ExtractorSession").Str("store", store.Name).Logger(),
		rng:      rng,
	}
	s.preparePage()
	return s, nil
}

// preparePage applies viewport, user agent and the webdriver mask.
// These are best-effort; a failure here degrades stealth, not correctness.
func (s *session) preparePage() {
	if err := s.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  s.cfg.WindowWidth,
		Height: s.cfg.WindowHeight,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to set viewport")
	}

	if err := s.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: s.cfg.UserAgent,
	}); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to set user agent")
	}

	if _, err := s.page.EvalOnNewDocument(webdriverMaskScript); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to install webdriver mask")
	}
}

// close tears the whole session down. Every part is best-effort; a crash
// or leak in one store's session must not reach the next store.
func (s *session) close() {
	if s.page != nil {
		_ = s.page.Close()
	}
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	s.logger.Debug().Msg("Browser session closed")
}

// humanDelay sleeps a bounded random interval to mimic human pacing.
// Purely cosmetic throttling; nothing may rely on it for correctness.
func (s *session) humanDelay() {
	min, max := s.cfg.MinStepDelayMs, s.cfg.MaxStepDelayMs
	if max <= min {
		return
	}
	d := time.Duration(min+s.rng.Intn(max-min)) * time.Millisecond
	time.Sleep(d)
}

// screenshot captures the current page and hands it to the artifact sink.
// Strictly best-effort: errors are logged and swallowed.
func (s *session) screenshot(step string) {
	png, err := s.page.Screenshot(false, nil)
	if err != nil {
		s.logger.Debug().Err(err).Str("step", step).Msg("Screenshot capture failed")
		return
	}
	s.sink.Save(s.store.Name, step, png)
}

// navigate loads a URL and waits for the load event, bounded by the
// navigation timeout.
func (s *session) navigate(url string) error {
	page := s.page.Timeout(s.navigationTimeout())
	if err := page.Navigate(url); err != nil {
		return errorwrapper.WrapError(err, "navigation to "+url+" failed")
	}
	if err := page.WaitLoad(); err != nil {
		return errorwrapper.WrapError(err, "page load timed out for "+url)
	}
	return nil
}

// waitForURL polls until the page URL contains the given fragment.
func (s *session) waitForURL(fragment string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		info, err := s.page.Info()
		if err == nil && strings.Contains(info.URL, fragment) {
			return nil
		}
		if time.Now().After(deadline) {
			return errorwrapper.WrapError(errorwrapper.ErrTimeout, "waiting for URL containing "+fragment)
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func (s *session) navigationTimeout() time.Duration {
	return time.Duration(s.cfg.NavigationTimeoutMs) * time.Millisecond
}

func (s *session) selectorTimeout() time.Duration {
	return time.Duration(s.cfg.SelectorTimeoutMs) * time.Millisecond
}

func (s *session) resultsTimeout() time.Duration {
	return time.Duration(s.cfg.ResultsTimeoutMs) * time.Millisecond
}
