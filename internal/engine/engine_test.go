package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(refdata.Default(), logger.NewNop(), WithRandomSource(FixedRandomSource{Value: 0.9}))
}

func TestAnalyzeArticleImpact_EarningsStory(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact(
		"Apple Reports Record Fourth Quarter Earnings as iPhone Sales Surge",
		"Apple said revenue climbed to a record high on iphone demand. Analysts expect Apple to keep its momentum into next quarter.",
	)

	require.Len(t, result.StockImpacts, 1)
	impact := result.StockImpacts[0]

	assert.Equal(t, "AAPL", impact.Ticker)
	assert.Equal(t, "Apple Inc.", impact.CompanyName)
	assert.Equal(t, contracts.ImpactPositive, impact.ImpactLevel)
	assert.InDelta(t, 0.724, impact.ImpactScore, 0.001)
	assert.InDelta(t, 0.9108, impact.Confidence, 1e-6)
	assert.Equal(t, contracts.TimeframeShortTerm, impact.Timeframe)
	assert.NotEmpty(t, impact.Reasoning)

	require.NotNil(t, impact.PriceTarget)
	assert.Equal(t, 190.0, impact.PriceTarget.Current)
	assert.Greater(t, impact.PriceTarget.ChangePercent, 0.0)
	assert.Greater(t, impact.PriceTarget.Predicted, impact.PriceTarget.Current)

	sentiment := result.OverallMarketSentiment
	assert.Equal(t, contracts.SentimentVeryPositive, sentiment.Label)
	assert.Equal(t, 1.0, sentiment.Score)
	assert.InDelta(t, 0.8, sentiment.Confidence, 1e-9)

	assert.NotEmpty(t, result.KeyInsights)
	assert.NotEmpty(t, result.RiskFactors)
	assert.NotEmpty(t, result.Opportunities)
	assert.Len(t, result.Timeline.Immediate, 2)
}

func TestAnalyzeArticleImpact_EmptyInput(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact("", "")

	assert.Empty(t, result.StockImpacts)
	assert.Equal(t, 0.5, result.OverallMarketSentiment.Score)
	assert.Equal(t, contracts.SentimentNeutral, result.OverallMarketSentiment.Label)
	assert.Equal(t, 0.5, result.OverallMarketSentiment.Confidence)

	// Sector context falls back to the default trio
	require.Len(t, result.SectorImpacts, 3)
	assert.Equal(t, "Technology", result.SectorImpacts[0].Name)
	assert.Equal(t, "Financial Services", result.SectorImpacts[1].Name)
	assert.Equal(t, "Healthcare", result.SectorImpacts[2].Name)

	// Narrative sections keep their guaranteed fallback entries
	assert.NotEmpty(t, result.KeyInsights)
	assert.NotEmpty(t, result.RiskFactors)
	assert.NotEmpty(t, result.Opportunities)
}

func TestAnalyzeArticleImpact_IrrelevantText(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact("Local bakery wins community award", "The bakery celebrated with neighbors over the weekend.")

	assert.Empty(t, result.StockImpacts)
	assert.Equal(t, contracts.SentimentNeutral, result.OverallMarketSentiment.Label)
}

func TestAnalyzeArticleImpact_BroadMarketFallback(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact(
		"Fed signals the economy may enter a recession",
		"Persistent inflation keeps policymakers wary.",
	)

	require.Len(t, result.StockImpacts, 4)

	tickers := make([]string, 0, 4)
	for _, impact := range result.StockImpacts {
		tickers = append(tickers, impact.Ticker)
	}
	assert.ElementsMatch(t, []string{"AAPL", "MSFT", "GOOGL", "AMZN"}, tickers)

	assert.Contains(t, result.RiskFactors, "Macro rate and inflation pressure may dominate single-stock moves")
}

func TestAnalyzeArticleImpact_Deterministic(t *testing.T) {
	e := newTestEngine(t)

	headline := "Apple Reports Record Quarter"
	body := "Apple revenue climbed on iphone demand."

	first := e.AnalyzeArticleImpact(headline, body)
	second := e.AnalyzeArticleImpact(headline, body)

	assert.Equal(t, first, second)
}

func TestAnalyzeArticleImpact_JitterIsolatedToConfidence(t *testing.T) {
	low := New(refdata.Default(), logger.NewNop(), WithRandomSource(FixedRandomSource{Value: 0.8}))
	high := New(refdata.Default(), logger.NewNop(), WithRandomSource(FixedRandomSource{Value: 0.94}))

	headline := "Apple Reports Record Quarter"
	body := "Apple revenue climbed on iphone demand."

	lowResult := low.AnalyzeArticleImpact(headline, body)
	highResult := high.AnalyzeArticleImpact(headline, body)

	require.Len(t, lowResult.StockImpacts, 1)
	require.Len(t, highResult.StockImpacts, 1)

	// Impact score is untouched by the jitter
	assert.Equal(t, lowResult.StockImpacts[0].ImpactScore, highResult.StockImpacts[0].ImpactScore)
	assert.Less(t, lowResult.StockImpacts[0].Confidence, highResult.StockImpacts[0].Confidence)
}

func TestAnalyzeArticleImpact_TimeframePriority(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact("Breaking: Apple outlines long-term roadmap", "")

	require.NotEmpty(t, result.StockImpacts)
	for _, impact := range result.StockImpacts {
		assert.Equal(t, contracts.TimeframeImmediate, impact.Timeframe)
	}
}

func TestAnalyzeArticleImpact_SortedByExtremity(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact(
		"Markets split as chip stocks surge while banks slide",
		"Semiconductor names rallied on record demand while banking shares dropped on weak lending.",
	)

	require.NotEmpty(t, result.StockImpacts)
	for i := 1; i < len(result.StockImpacts); i++ {
		assert.GreaterOrEqual(t,
			result.StockImpacts[i-1].Extremity(),
			result.StockImpacts[i].Extremity(),
			"impacts must be ordered by distance from neutral")
	}
}

func TestAnalyzeArticleImpact_CapsConnectedStocks(t *testing.T) {
	e := newTestEngine(t)

	result := e.AnalyzeArticleImpact(
		"Tech roundup",
		"tech software cloud chip semiconductor hardware computing digital",
	)

	assert.Len(t, result.StockImpacts, 6)
}
