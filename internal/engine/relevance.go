package engine

import (
	"sort"
	"strings"

	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

// Relevance scoring weights. These are tuned behavioral constants carried
// over unchanged; do not re-derive them.
const (
	weightTickerMention   = 10.0
	weightNameWord        = 5.0
	weightSectorKeyword   = 2.0
	weightIndustryKeyword = 1.5
	weightCompetitor      = 1.0

	relevanceThreshold = 2.0
	maxConnectedStocks = 6
	maxAffectedSectors = 5
)

// RelevanceExtractor identifies which companies and sectors a text is about
type RelevanceExtractor struct {
	ref    *refdata.MarketReferenceData
	logger *logger.Logger
}

// NewRelevanceExtractor creates a new relevance extractor
func NewRelevanceExtractor(ref *refdata.MarketReferenceData, log *logger.Logger) *RelevanceExtractor {
	return &RelevanceExtractor{
		ref:    ref,
		logger: log,
	}
}

// IdentifyConnectedStocks scores every known company against the text and
// returns up to six tickers ranked by relevance. Texts with no candidate
// above the threshold fall back to a fixed large-cap set when they read as
// broad market news, and to an empty list otherwise: irrelevant text must
// yield zero stock impacts.
func (e *RelevanceExtractor) IdentifyConnectedStocks(text string) []string {
	type scored struct {
		ticker string
		score  float64
	}

	var candidates []scored
	for _, ticker := range e.ref.Tickers() {
		company, _ := e.ref.Company(ticker)
		score := e.scoreCompany(text, company)
		if score >= relevanceThreshold {
			candidates = append(candidates, scored{ticker: ticker, score: score})
		}
	}

	if len(candidates) == 0 {
		if containsAny(text, e.ref.BroadMarketKeywords()) {
			e.logger.Debug("No specific company matched; using broad market fallback")
			return e.ref.BroadMarketTickers()
		}
		return nil
	}

	// Ticker iteration order is deterministic, so a stable sort keeps
	// equal scores reproducible
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxConnectedStocks {
		candidates = candidates[:maxConnectedStocks]
	}

	tickers := make([]string, len(candidates))
	for i, c := range candidates {
		tickers[i] = c.ticker
	}

	e.logger.WithFields(map[string]interface{}{
		"candidates": len(tickers),
		"top":        tickers[0],
	}).Debug("Identified connected stocks")

	return tickers
}

// scoreCompany accumulates the weighted relevance signals for one company
func (e *RelevanceExtractor) scoreCompany(text string, c refdata.Company) float64 {
	score := 0.0

	// Direct ticker mention, bare token or cashtag
	if tickerMentions(text, strings.ToLower(c.Ticker)) > 0 {
		score += weightTickerMention
	}

	// Distinct company-name words longer than 3 characters
	for _, w := range nameWords(c.Name) {
		if strings.Contains(text, w) {
			score += weightNameWord
		}
	}

	// Sector and industry keyword context
	score += weightSectorKeyword * float64(countPresent(text, e.ref.SectorKeywords(c.Sector)))
	score += weightIndustryKeyword * float64(countPresent(text, e.ref.IndustryKeywords(c.Sector)))

	// Competitor mentions pull a company into the story
	score += weightCompetitor * float64(countPresent(text, e.ref.Competitors(c.Ticker)))

	return score
}

// IdentifyAffectedSectors returns every sector whose keywords appear in the
// text, capped at five. When nothing matches it falls back to a default
// sector trio so downstream sector context is never empty.
func (e *RelevanceExtractor) IdentifyAffectedSectors(text string) []refdata.Sector {
	var matched []refdata.Sector
	for _, s := range e.ref.Sectors() {
		if containsAny(text, e.ref.SectorKeywords(s)) {
			matched = append(matched, s)
		}
	}

	if len(matched) == 0 {
		matched = append(matched, e.ref.DefaultSectors()...)
	}

	if len(matched) > maxAffectedSectors {
		matched = matched[:maxAffectedSectors]
	}

	return matched
}
