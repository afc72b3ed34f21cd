package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

func TestIdentifyConnectedStocks_DirectMention(t *testing.T) {
	extractor := NewRelevanceExtractor(fixtureRef(t), logger.NewNop())

	// Ticker token + both name words + one sector keyword
	got := extractor.IdentifyConnectedStocks("acme robotics builds robots")

	assert.Equal(t, []string{"ACME"}, got)
}

func TestIdentifyConnectedStocks_SectorContextAloneMeetsThreshold(t *testing.T) {
	extractor := NewRelevanceExtractor(fixtureRef(t), logger.NewNop())

	// One sector keyword scores exactly at the inclusion threshold
	got := extractor.IdentifyConnectedStocks("factory output expands")

	assert.Equal(t, []string{"BOLT"}, got)
}

func TestIdentifyConnectedStocks_CompetitorAloneIsBelowThreshold(t *testing.T) {
	extractor := NewRelevanceExtractor(fixtureRef(t), logger.NewNop())

	// A lone competitor mention scores 1, below the threshold, and the text
	// has no broad-market keywords either
	got := extractor.IdentifyConnectedStocks("cyberdyne unveils a new model")

	assert.Empty(t, got)
}

func TestIdentifyConnectedStocks_BroadMarketFallback(t *testing.T) {
	extractor := NewRelevanceExtractor(fixtureRef(t), logger.NewNop())

	got := extractor.IdentifyConnectedStocks("the economy may be slowing")

	assert.Equal(t, []string{"ACME"}, got)
}

func TestIdentifyConnectedStocks_IrrelevantTextYieldsNothing(t *testing.T) {
	extractor := NewRelevanceExtractor(refdata.Default(), logger.NewNop())

	got := extractor.IdentifyConnectedStocks("local bakery wins community award")

	assert.Empty(t, got)
}

func TestIdentifyConnectedStocks_CompanyNameAloneQualifies(t *testing.T) {
	extractor := NewRelevanceExtractor(refdata.Default(), logger.NewNop())

	got := extractor.IdentifyConnectedStocks("apple inc. announced a new board member")

	assert.Equal(t, []string{"AAPL"}, got)
}

func TestIdentifyConnectedStocks_CapAndDeterministicTies(t *testing.T) {
	extractor := NewRelevanceExtractor(refdata.Default(), logger.NewNop())

	// Five technology sector keywords give every technology company an
	// identical score. Seven qualify; the cap keeps six, and the stable
	// sort over the sorted ticker order makes the tie-break reproducible.
	got := extractor.IdentifyConnectedStocks("tech software cloud chip semiconductor")

	assert.Equal(t, []string{"AAPL", "AMD", "CRM", "INTC", "MSFT", "NVDA"}, got)
}

func TestIdentifyConnectedStocks_RanksByScore(t *testing.T) {
	extractor := NewRelevanceExtractor(fixtureRef(t), logger.NewNop())

	// ACME: ticker (10) + name word (5) + sector keyword (2) = 17.
	// BOLT: sector keyword (2) = 2. Higher score first.
	got := extractor.IdentifyConnectedStocks("acme robots roll off the factory line")

	assert.Equal(t, []string{"ACME", "BOLT"}, got)
}

func TestIdentifyAffectedSectors(t *testing.T) {
	extractor := NewRelevanceExtractor(fixtureRef(t), logger.NewNop())

	t.Run("matched sectors", func(t *testing.T) {
		got := extractor.IdentifyAffectedSectors("robots in the factory")
		assert.ElementsMatch(t, []refdata.Sector{refdata.SectorTechnology, refdata.SectorIndustrials}, got)
	})

	t.Run("default fallback", func(t *testing.T) {
		got := extractor.IdentifyAffectedSectors("nothing relevant here")
		assert.Equal(t, []refdata.Sector{refdata.SectorTechnology}, got)
	})
}

func TestIdentifyAffectedSectors_CappedAtFive(t *testing.T) {
	extractor := NewRelevanceExtractor(refdata.Default(), logger.NewNop())

	got := extractor.IdentifyAffectedSectors("tech bank health oil retail media aerospace utility grocery")

	assert.Len(t, got, 5)
}

func TestIdentifyAffectedSectors_BoundaryKeywordAtTextStart(t *testing.T) {
	extractor := NewRelevanceExtractor(refdata.Default(), logger.NewNop())

	// The headline opens with the word the keyword targets; no other
	// sector keyword appears
	got := extractor.IdentifyAffectedSectors("ai spending lifts corporate outlooks")

	assert.Equal(t, []refdata.Sector{refdata.SectorTechnology}, got)
}
