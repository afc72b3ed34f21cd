package engine

import (
	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

// Sentiment tier weights
const (
	tierWeightStrong   = 3
	tierWeightModerate = 2
	tierWeightMild     = 1
)

// SentimentAnalyzer scores text against the tiered sentiment lexicon
type SentimentAnalyzer struct {
	ref    *refdata.MarketReferenceData
	logger *logger.Logger
}

// NewSentimentAnalyzer creates a new sentiment analyzer
func NewSentimentAnalyzer(ref *refdata.MarketReferenceData, log *logger.Logger) *SentimentAnalyzer {
	return &SentimentAnalyzer{
		ref:    ref,
		logger: log,
	}
}

// Analyze scores the lowercased text. The qualitative label is classified
// on the signed raw value in [-1,1] before it is rescaled to the [0,1]
// score; the two must not be conflated.
func (a *SentimentAnalyzer) Analyze(text string) contracts.SentimentResult {
	lex := a.ref.Lexicon()

	posSum, posMatches := tierScore(text, lex.Positive)
	negSum, negMatches := tierScore(text, lex.Negative)

	totalMatches := posMatches + negMatches
	if totalMatches == 0 {
		// Neutral center; the zero guard keeps the division below total
		return contracts.SentimentResult{
			Score:      0.5,
			Label:      contracts.SentimentNeutral,
			Confidence: 0.5,
		}
	}

	sum := float64(posSum - negSum)
	raw := clamp(sum/(float64(totalMatches)*2), -1, 1)

	result := contracts.SentimentResult{
		Score:      (raw + 1) / 2,
		Label:      contracts.SentimentLabelFor(raw),
		Confidence: clamp(float64(totalMatches)*0.1+0.5, 0.3, 0.95),
	}

	a.logger.WithFields(map[string]interface{}{
		"matches": totalMatches,
		"raw":     raw,
		"label":   result.Label,
	}).Debug("Analyzed sentiment")

	return result
}

// tierScore sums weighted keyword occurrences for one polarity and reports
// the total occurrence count
func tierScore(text string, tiers refdata.TierSet) (weighted int, matches int) {
	for _, kw := range tiers.Strong {
		n := countOccurrences(text, kw)
		weighted += n * tierWeightStrong
		matches += n
	}
	for _, kw := range tiers.Moderate {
		n := countOccurrences(text, kw)
		weighted += n * tierWeightModerate
		matches += n
	}
	for _, kw := range tiers.Mild {
		n := countOccurrences(text, kw)
		weighted += n * tierWeightMild
		matches += n
	}
	return weighted, matches
}
