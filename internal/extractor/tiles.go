package extractor

import (
	"strings"

	"bambawatch/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

// Sentinel values recorded when a tile field cannot be extracted. A broken
// tile is still worth recording; dropping it would hide the product entirely.
const (
	unknownProductName = "Unknown Product"
	missingPrice       = "n/a"
)

// Selectors for the result tiles. Each field has a primary selector and a
// fallback because the site reshuffles its markup regularly.
const (
	tileSelector           = "section[data-testid='product-tile']"
	titleSelector          = "h2.product__title"
	titleFallbackSelector  = "h3"
	priceSelector          = "span.price__value"
	priceFallbackSelector  = "span.price, [data-testid='product-pricing']"
	unavailableSelector    = "[data-testid='large-screen-currently-unavailable-prompt']"
	resultsContainer       = "[data-testid='product-tiles']"
	searchInputSelector    = "input[placeholder*='Search']"
	searchOptionSelector   = "div[role='option']"
	resultsURLFragment     = "/search/products"
	locationControlPattern = "Set location"
	consentButtonPattern   = "Accept All Cookies"
)

// TileParser turns the results-container HTML into observed items.
// It is pure over its input so tile extraction stays testable without a
// live browser session.
type TileParser struct {
	logger zerolog.Logger
}

// NewTileParser creates a TileParser.
func NewTileParser(logger zerolog.Logger) *TileParser {
	return &TileParser{
		logger: logger.With().Str("component", "TileParser").Logger(),
	}
}

// Parse extracts one Item per product tile found in the container HTML.
// Missing fields degrade to sentinel values; availability defaults to true
// unless the explicit "currently unavailable" marker is present.
func (tp *TileParser) Parse(containerHTML string) ([]models.Item, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(containerHTML))
	if err != nil {
		return nil, err
	}

	var items []models.Item
	doc.Find(tileSelector).Each(func(_ int, tile *goquery.Selection) {
		items = append(items, tp.parseTile(tile))
	})

	tp.logger.Debug().Int("tiles", len(items)).Msg("Result tiles parsed")
	return items, nil
}

func (tp *TileParser) parseTile(tile *goquery.Selection) models.Item {
	title := firstText(tile, titleSelector)
	if title == "" {
		title = firstText(tile, titleFallbackSelector)
	}
	if title == "" {
		title = unknownProductName
	}

	price := firstText(tile, priceSelector)
	if price == "" {
		price = firstText(tile, priceFallbackSelector)
	}
	if price == "" {
		price = missingPrice
	}

	available := tile.Find(unavailableSelector).Length() == 0

	return models.NewItem(title, price, available)
}

func firstText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}
