package extractor

import (
	"testing"

	"bambawatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileParser_Parse_FullTile(t *testing.T) {
	html := `
	<div data-testid="product-tiles">
		<section data-testid="product-tile">
			<h2 class="product__title">Osem Bamba Peanut Snack | 25g</h2>
			<span class="price__value">$2.50</span>
		</section>
	</div>`

	parser := NewTileParser(zerolog.Nop())
	items, err := parser.Parse(html)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Osem Bamba Peanut Snack | 25g", items[0].Name)
	assert.Equal(t, models.SizeSmall, items[0].Size)
	assert.Equal(t, "$2.50", items[0].Price)
	assert.True(t, items[0].Available, "availability defaults to true without the unavailable marker")
}

func TestTileParser_Parse_TitleFallback(t *testing.T) {
	html := `
	<section data-testid="product-tile">
		<h3>Osem Bamba | 100g</h3>
		<span class="price">$5.00</span>
	</section>`

	parser := NewTileParser(zerolog.Nop())
	items, err := parser.Parse(html)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Osem Bamba | 100g", items[0].Name)
	assert.Equal(t, models.SizeLarge, items[0].Size)
	assert.Equal(t, "$5.00", items[0].Price)
}

func TestTileParser_Parse_MissingFieldsDegradeToSentinels(t *testing.T) {
	html := `<section data-testid="product-tile"><div>nothing useful</div></section>`

	parser := NewTileParser(zerolog.Nop())
	items, err := parser.Parse(html)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Unknown Product", items[0].Name)
	assert.Equal(t, "n/a", items[0].Price)
	assert.Equal(t, models.SizeUnknown, items[0].Size)
	assert.True(t, items[0].Available)
}

func TestTileParser_Parse_UnavailableMarker(t *testing.T) {
	html := `
	<section data-testid="product-tile">
		<h2 class="product__title">Osem Bamba Peanut Snack | 25g</h2>
		<span class="price__value">$2.50</span>
		<div data-testid="large-screen-currently-unavailable-prompt">Currently unavailable</div>
	</section>`

	parser := NewTileParser(zerolog.Nop())
	items, err := parser.Parse(html)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.False(t, items[0].Available)
}

func TestTileParser_Parse_NoTiles(t *testing.T) {
	parser := NewTileParser(zerolog.Nop())

	items, err := parser.Parse(`<div data-testid="product-tiles"></div>`)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTileParser_Parse_PricingFallbackSelector(t *testing.T) {
	html := `
	<section data-testid="product-tile">
		<h2 class="product__title">Plain Snack</h2>
		<div data-testid="product-pricing">$3.00</div>
	</section>`

	parser := NewTileParser(zerolog.Nop())
	items, err := parser.Parse(html)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "$3.00", items[0].Price)
	assert.Equal(t, models.SizeUnknown, items[0].Size)
}
