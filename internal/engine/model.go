package engine

import (
	"math"
	"strings"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

// Market-cap tier boundaries
const (
	megaCapThreshold  = 1_000_000_000_000 // $1T
	largeCapThreshold = 500_000_000_000   // $500B
)

// Timeframe keyword sets, checked in priority order. First match wins, so
// "breaking" beats "long-term" in the same text.
var (
	immediateKeywords = []string{"immediate", "today", "breaking", "urgent", "now", "just announced"}
	shortTermKeywords = []string{"quarter", "earnings", "week"}
	longTermKeywords  = []string{
		"year", "years", "long-term", "strategic", "future", "roadmap", "vision",
		"regulation", "policy", "transformation",
	}
)

// Factors are the intermediate model inputs kept for narrative generation
type Factors struct {
	Mentions        int     // company mention occurrences, not deduplicated
	SectorMatches   int     // distinct sector keywords present
	SectorRelevance float64 // sector matches scaled to [0,1]
	IndustryMatches int
	NewsRelevance   float64
	TickerMentioned bool
	CompetitorSeen  bool
}

// Prediction is the full per-company model output
type Prediction struct {
	Ticker      string
	ImpactScore float64
	Confidence  float64
	Timeframe   contracts.Timeframe
	PriceTarget contracts.PriceTarget
	Factors     Factors
}

// ImpactModel combines sentiment, mention density, sector relevance,
// market-cap volatility, and news relevance into a per-company impact
// prediction
type ImpactModel struct {
	ref    *refdata.MarketReferenceData
	random RandomSource
	logger *logger.Logger
}

// NewImpactModel creates a new impact model
func NewImpactModel(ref *refdata.MarketReferenceData, random RandomSource, log *logger.Logger) *ImpactModel {
	return &ImpactModel{
		ref:    ref,
		random: random,
		logger: log,
	}
}

// Build runs the prediction pipeline for one company. Each step feeds the
// next; the ordering is part of the behavioral contract.
func (m *ImpactModel) Build(company refdata.Company, text string, sentiment contracts.SentimentResult) Prediction {
	factors := m.collectFactors(company, text)

	// 1. Start from the text-level sentiment
	score := sentiment.Score

	// 2. Mention-count boost, capped at 0.3
	score += math.Min(0.3, float64(factors.Mentions)*0.08)

	// 3. Blend in sector relevance at weight 0.4
	score = score*0.6 + factors.SectorRelevance*0.4

	// 4. Market-cap volatility around the neutral center: mega caps dampen,
	// everything else amplifies
	volatility := 1.15
	if company.MarketCap > megaCapThreshold {
		volatility = 0.85
	}
	score = 0.5 + (score-0.5)*volatility

	// 5. News-relevance multiplier, same pivot
	score = 0.5 + (score-0.5)*factors.NewsRelevance

	// 6. Clamp
	score = clamp01(score)

	confidence := m.confidence(company, sentiment, factors)
	timeframe := m.timeframe(text, score, confidence)
	target := m.priceTarget(company, score, confidence, factors)

	m.logger.WithFields(map[string]interface{}{
		"ticker":     company.Ticker,
		"impact":     score,
		"confidence": confidence,
		"timeframe":  timeframe,
	}).Debug("Built impact prediction")

	return Prediction{
		Ticker:      company.Ticker,
		ImpactScore: score,
		Confidence:  confidence,
		Timeframe:   timeframe,
		PriceTarget: target,
		Factors:     factors,
	}
}

// collectFactors gathers the raw signal counts for one company
func (m *ImpactModel) collectFactors(company refdata.Company, text string) Factors {
	lowerTicker := strings.ToLower(company.Ticker)

	tickerCount := tickerMentions(text, lowerTicker)

	// Mentions count every occurrence of the ticker token plus every
	// occurrence of each searchable name word
	mentions := tickerCount
	for _, w := range nameWords(company.Name) {
		mentions += countOccurrences(text, w)
	}

	sectorMatches := countPresent(text, m.ref.SectorKeywords(company.Sector))
	industryMatches := countPresent(text, m.ref.IndustryKeywords(company.Sector))
	competitorSeen := containsAny(text, m.ref.Competitors(company.Ticker))

	// News relevance multiplier: starts neutral, boosted by direct ticker
	// presence, industry specificity, and competitor context; capped at 2
	newsRelevance := 1.0
	if tickerCount > 0 {
		newsRelevance += 0.3
	}
	newsRelevance += math.Min(0.4, float64(industryMatches)*0.08)
	if competitorSeen {
		newsRelevance += 0.15
	}
	if newsRelevance > 2.0 {
		newsRelevance = 2.0
	}

	return Factors{
		Mentions:        mentions,
		SectorMatches:   sectorMatches,
		SectorRelevance: math.Min(1, float64(sectorMatches)*0.2),
		IndustryMatches: industryMatches,
		NewsRelevance:   newsRelevance,
		TickerMentioned: tickerCount > 0,
		CompetitorSeen:  competitorSeen,
	}
}

// confidence derives the model confidence, including the one intentional
// random term: a historical-accuracy jitter drawn from [0.8, 0.95)
func (m *ImpactModel) confidence(company refdata.Company, sentiment contracts.SentimentResult, f Factors) float64 {
	confidence := 0.5 + math.Abs(sentiment.Score-0.5)*2*0.3
	confidence += math.Min(0.2, float64(f.Mentions)*0.04)
	confidence += f.SectorRelevance * 0.15

	// Larger companies have steadier reactions
	stability := 0.95
	if company.MarketCap > largeCapThreshold {
		stability = 1.1
	}
	confidence *= stability

	confidence *= m.random.NextUniform()

	return clamp(confidence, 0.3, 0.95)
}

// timeframe classifies the horizon; rules are checked in priority order and
// the first match wins
func (m *ImpactModel) timeframe(text string, impactScore, confidence float64) contracts.Timeframe {
	if containsAny(text, immediateKeywords) {
		return contracts.TimeframeImmediate
	}

	extreme := math.Abs(impactScore-0.5) > 0.25 && confidence > 0.8
	if containsAny(text, shortTermKeywords) || extreme {
		return contracts.TimeframeShortTerm
	}

	if containsAny(text, longTermKeywords) {
		return contracts.TimeframeLongTerm
	}

	if confidence > 0.7 {
		return contracts.TimeframeShortTerm
	}
	return contracts.TimeframeMediumTerm
}

// priceTarget projects a price move from the impact score. The raw ±12.5%
// range is successively scaled by cap-tier volatility, news relevance,
// confidence, and the per-sector volatility constant.
func (m *ImpactModel) priceTarget(company refdata.Company, impactScore, confidence float64, f Factors) contracts.PriceTarget {
	base := m.ref.BasePrice(company.Ticker)

	changePercent := (impactScore - 0.5) * 25

	capVolatility := 1.3
	if company.MarketCap > megaCapThreshold {
		capVolatility = 0.7
	}
	changePercent *= capVolatility
	changePercent *= f.NewsRelevance
	changePercent *= 0.5 + confidence*0.5
	changePercent *= m.ref.SectorVolatility(company.Sector)

	changePercent = round2(changePercent)
	predicted := round2(base * (1 + changePercent/100))
	change := round2(predicted - base)

	return contracts.PriceTarget{
		Current:       base,
		Predicted:     predicted,
		Change:        change,
		ChangePercent: changePercent,
	}
}

// round2 rounds a monetary or percent value to 2 decimals
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
