package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

// fixtureRef builds a small deterministic dataset so expected scores can be
// computed by hand
func fixtureRef(t *testing.T) *refdata.MarketReferenceData {
	t.Helper()

	const billion = 1_000_000_000

	ref, err := refdata.New(refdata.Dataset{
		Companies: []refdata.Company{
			{Ticker: "ACME", Name: "Acme Robotics", Sector: refdata.SectorTechnology, MarketCap: 2_000 * billion},
			{Ticker: "NANO", Name: "Nano Devices", Sector: refdata.SectorTechnology, MarketCap: 10 * billion},
			{Ticker: "BOLT", Name: "Bolt Industries", Sector: refdata.SectorIndustrials, MarketCap: 50 * billion},
		},
		SectorKeywords: map[refdata.Sector][]string{
			refdata.SectorTechnology:  {"robot", "software"},
			refdata.SectorIndustrials: {"factory", "manufacturing"},
		},
		IndustryKeywords: map[refdata.Sector][]string{
			refdata.SectorTechnology:  {"humanoid"},
			refdata.SectorIndustrials: {"assembly line"},
		},
		Competitors: map[string][]string{
			"ACME": {"cyberdyne"},
		},
		Lexicon: refdata.Lexicon{
			Positive: refdata.TierSet{
				Strong:   []string{"surge"},
				Moderate: []string{"gain"},
				Mild:     []string{"steady"},
			},
			Negative: refdata.TierSet{
				Strong:   []string{"crash"},
				Moderate: []string{"drop"},
				Mild:     []string{"dip"},
			},
		},
		BasePrices: map[string]float64{
			"ACME": 200,
		},
		SectorVolatility: map[refdata.Sector]float64{
			refdata.SectorTechnology:  1.2,
			refdata.SectorIndustrials: 1.0,
		},
		BroadMarketKeywords: []string{"market", "economy"},
		BroadMarketTickers:  []string{"ACME"},
		DefaultSectors:      []refdata.Sector{refdata.SectorTechnology},
	})
	require.NoError(t, err)
	return ref
}

func TestAnalyze_ZeroMatchesIsNeutral(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	for _, text := range []string{"", "completely unrelated words", "   "} {
		result := analyzer.Analyze(text)

		assert.Equal(t, 0.5, result.Score, "text %q", text)
		assert.Equal(t, contracts.SentimentNeutral, result.Label)
		assert.Equal(t, 0.5, result.Confidence)
	}
}

func TestAnalyze_StrongPositive(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	// One strong positive word: sum=3, matches=1, raw=clamp(3/2)=1
	result := analyzer.Analyze("shares surge")

	assert.Equal(t, 1.0, result.Score)
	assert.Equal(t, contracts.SentimentVeryPositive, result.Label)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
}

func TestAnalyze_StrongNegative(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	result := analyzer.Analyze("shares crash")

	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, contracts.SentimentVeryNegative, result.Label)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
}

func TestAnalyze_MixedLeansPositive(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	// gain (moderate, +2) and dip (mild, -1): sum=1, matches=2, raw=0.25
	result := analyzer.Analyze("a gain after a dip")

	assert.InDelta(t, 0.625, result.Score, 1e-9)
	assert.Equal(t, contracts.SentimentPositive, result.Label)
	assert.InDelta(t, 0.7, result.Confidence, 1e-9)
}

func TestAnalyze_LabelUsesRawValueNotScore(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	// Balanced strong words: sum=0, matches=2, raw=0. Label must be Neutral
	// even though the rescaled score (0.5) sits above the Positive score
	// region's lower bound.
	result := analyzer.Analyze("surge then crash")

	assert.Equal(t, 0.5, result.Score)
	assert.Equal(t, contracts.SentimentNeutral, result.Label)
}

func TestAnalyze_ConfidenceBounds(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	// Many matches push confidence up; it must stay capped at 0.95
	text := ""
	for i := 0; i < 20; i++ {
		text += "surge "
	}
	result := analyzer.Analyze(text)

	assert.Equal(t, 0.95, result.Confidence)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 1.0)
}

func TestAnalyze_SubstringMatchingIsPreserved(t *testing.T) {
	analyzer := NewSentimentAnalyzer(fixtureRef(t), logger.NewNop())

	// "surges" contains "surge"; partial overlaps are intended behavior
	result := analyzer.Analyze("demand surges")

	assert.Equal(t, contracts.SentimentVeryPositive, result.Label)
}
