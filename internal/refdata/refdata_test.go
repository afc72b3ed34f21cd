package refdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ref := Default()

	require.NotNil(t, ref)
	assert.NotEmpty(t, ref.Tickers())
	assert.NotEmpty(t, ref.Sectors())

	// Registry lookups
	apple, ok := ref.Company("AAPL")
	require.True(t, ok, "AAPL must be in the registry")
	assert.Equal(t, "Apple Inc.", apple.Name)
	assert.Equal(t, SectorTechnology, apple.Sector)
	assert.Greater(t, apple.MarketCap, int64(1_000_000_000_000))

	_, ok = ref.Company("ZZZZ")
	assert.False(t, ok)
}

func TestDefault_FallbacksAreConsistent(t *testing.T) {
	ref := Default()

	// Broad-market fallback tickers must all resolve in the registry
	for _, ticker := range ref.BroadMarketTickers() {
		_, ok := ref.Company(ticker)
		assert.True(t, ok, "fallback ticker %s missing from registry", ticker)
	}
	assert.Len(t, ref.BroadMarketTickers(), 4)

	// Default sectors must all carry keyword sets
	for _, s := range ref.DefaultSectors() {
		assert.NotEmpty(t, ref.SectorKeywords(s), "default sector %s has no keywords", s)
	}
}

func TestDefault_EverySectorHasVolatilityAndKeywords(t *testing.T) {
	ref := Default()

	for _, s := range ref.Sectors() {
		assert.NotEmpty(t, ref.SectorKeywords(s), "sector %s has no keywords", s)
		assert.Greater(t, ref.SectorVolatility(s), 0.0, "sector %s has no volatility", s)
	}

	// Unlisted sector falls back to neutral volatility
	assert.Equal(t, 1.0, ref.SectorVolatility(Sector("Made Up")))
}

func TestBasePrice_UnknownTickerFallsBack(t *testing.T) {
	ref := Default()

	assert.Equal(t, 190.0, ref.BasePrice("AAPL"))
	assert.Equal(t, DefaultBasePrice, ref.BasePrice("ZZZZ"))
}

func TestTickers_Deterministic(t *testing.T) {
	ref := Default()

	first := ref.Tickers()
	second := ref.Tickers()

	require.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1], first[i], "tickers must be sorted")
	}
}

func TestCompaniesInSector(t *testing.T) {
	ref := Default()

	techs := ref.CompaniesInSector(SectorTechnology)
	require.NotEmpty(t, techs)

	// Ordered by descending market cap
	for i := 1; i < len(techs); i++ {
		assert.GreaterOrEqual(t, techs[i-1].MarketCap, techs[i].MarketCap)
	}

	for _, c := range techs {
		assert.Equal(t, SectorTechnology, c.Sector)
	}
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Dataset{})
	assert.Error(t, err, "empty dataset must be rejected")

	_, err = New(Dataset{
		Companies: []Company{
			{Ticker: "AAA", Name: "A", Sector: SectorTechnology, MarketCap: 1},
			{Ticker: "AAA", Name: "A again", Sector: SectorTechnology, MarketCap: 1},
		},
	})
	assert.Error(t, err, "duplicate tickers must be rejected")

	_, err = New(Dataset{
		Companies:          []Company{{Ticker: "AAA", Name: "A", Sector: SectorTechnology, MarketCap: 1}},
		BroadMarketTickers: []string{"BBB"},
	})
	assert.Error(t, err, "unknown fallback ticker must be rejected")
}

func TestDefault_LexiconTiersPopulated(t *testing.T) {
	lex := Default().Lexicon()

	tiers := map[string][]string{
		"positive strong":   lex.Positive.Strong,
		"positive moderate": lex.Positive.Moderate,
		"positive mild":     lex.Positive.Mild,
		"negative strong":   lex.Negative.Strong,
		"negative moderate": lex.Negative.Moderate,
		"negative mild":     lex.Negative.Mild,
	}

	for name, words := range tiers {
		require.NotEmpty(t, words, "%s tier is empty", name)
		for _, w := range words {
			assert.Equal(t, strings.ToLower(w), w, "%s word %q must be lowercase", name, w)
			assert.NotEmpty(t, strings.TrimSpace(w), "%s has a blank word", name)
		}
	}

	assert.Contains(t, lex.Positive.Strong, "surge")
	assert.Contains(t, lex.Negative.Mild, "dip")
}
