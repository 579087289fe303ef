package extractor

import (
	"github.com/go-rod/rod/lib/proto"
)

// Step names double as screenshot labels and as the FailedStep marker on
// degraded observations.
const (
	stepLaunchBrowser  = "launch_browser"
	stepStorePage      = "store_page"
	stepSetLocation    = "set_location"
	stepSearchHome     = "search_home"
	stepDismissConsent = "dismiss_consent"
	stepSubmitSearch   = "submit_search"
	stepAwaitResults   = "await_results"
	stepExtractTiles   = "extract_tiles"
)

// step is one transition of the extraction state machine. An optional step
// may fail without failing the store check (consent prompts come and go).
type step struct {
	name     string
	optional bool
	run      func(s *session) error
}

// extractionSteps is the fixed navigation sequence executed per store.
func (e *Extractor) extractionSteps() []step {
	return []step{
		{name: stepStorePage, run: e.openStorePage},
		{name: stepSetLocation, run: e.confirmLocation},
		{name: stepSearchHome, run: e.openSearchHome},
		{name: stepDismissConsent, optional: true, run: e.dismissConsent},
		{name: stepSubmitSearch, run: e.submitSearch},
		{name: stepAwaitResults, run: e.awaitResults},
		{name: stepExtractTiles, run: e.extractTiles},
	}
}

// openStorePage navigates to the store's find-stores page.
func (e *Extractor) openStorePage(s *session) error {
	return s.navigate(s.store.URL)
}

// confirmLocation locates and activates the "Set location" control so the
// subsequent search is scoped to this store.
func (e *Extractor) confirmLocation(s *session) error {
	el, err := s.page.Timeout(s.selectorTimeout()).
		ElementR("button, a, [role='button']", locationControlPattern)
	if err != nil {
		return err
	}
	s.humanDelay()
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// openSearchHome navigates to the retailer homepage where the search box lives.
func (e *Extractor) openSearchHome(s *session) error {
	return s.navigate(s.cfg.HomeURL)
}

// dismissConsent clicks the cookie banner away if one is shown. Absence of
// the banner is not an error; this step is marked optional.
func (e *Extractor) dismissConsent(s *session) error {
	el, err := s.page.Timeout(consentTimeout).ElementR("button", consentButtonPattern)
	if err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// submitSearch types the tracked product query and picks the first
// suggestion, which routes to the results page.
func (e *Extractor) submitSearch(s *session) error {
	input, err := s.page.Timeout(s.selectorTimeout()).Element(searchInputSelector)
	if err != nil {
		return err
	}
	if err := input.Input(s.cfg.SearchQuery); err != nil {
		return err
	}
	s.humanDelay()

	option, err := s.page.Timeout(s.selectorTimeout()).Element(searchOptionSelector)
	if err != nil {
		return err
	}
	return option.Click(proto.InputMouseButtonLeft, 1)
}

// awaitResults waits for the search-results route and the tiles container,
// then snapshots the container HTML for parsing.
func (e *Extractor) awaitResults(s *session) error {
	if err := s.waitForURL(resultsURLFragment, s.resultsTimeout()); err != nil {
		return err
	}
	s.humanDelay()

	container, err := s.page.Timeout(s.resultsTimeout()).Element(resultsContainer)
	if err != nil {
		return err
	}
	html, err := container.HTML()
	if err != nil {
		return err
	}
	s.containerHTML = html
	return nil
}

// extractTiles parses the captured container HTML into items.
func (e *Extractor) extractTiles(s *session) error {
	items, err := e.tiles.Parse(s.containerHTML)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		e.logger.Warn().Str("store", s.store.Name).Msg("No product tiles found")
	}
	s.items = items
	return nil
}
