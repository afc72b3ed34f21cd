// Package engine implements the impact inference pipeline: given a financial
// news headline and body it estimates which companies and sectors are
// affected, how strongly, in which direction, over what horizon, and with
// what confidence.
//
// The engine is a deterministic, explainable heuristic scorer, not a trained
// model. It is stateless: every call reads only immutable reference data and
// the request's own text, so a single Engine is safe for concurrent use. The
// one sanctioned source of non-determinism is the confidence jitter behind
// RandomSource.
package engine

import (
	"sort"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

// Engine sequences the pipeline stages into one analysis call
type Engine struct {
	ref       *refdata.MarketReferenceData
	extractor *RelevanceExtractor
	sentiment *SentimentAnalyzer
	model     *ImpactModel
	narrative *Synthesizer
	logger    *logger.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithRandomSource replaces the confidence-jitter source. Tests use this to
// pin the pipeline to a pure function.
func WithRandomSource(r RandomSource) Option {
	return func(e *Engine) {
		e.model.random = r
	}
}

// New creates an engine over the given reference data
func New(ref *refdata.MarketReferenceData, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		ref:       ref,
		extractor: NewRelevanceExtractor(ref, log),
		sentiment: NewSentimentAnalyzer(ref, log),
		model:     NewImpactModel(ref, defaultRandomSource{}, log),
		narrative: NewSynthesizer(ref),
		logger:    log,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// AnalyzeArticleImpact runs the full pipeline over one article. It is total
// over all string inputs, including empty ones: unknown or irrelevant text
// yields an empty stock impact list and neutral sentiment, never an error.
func (e *Engine) AnalyzeArticleImpact(headline, fullText string) *contracts.AnalysisResult {
	text := normalizeText(headline, fullText)

	sentiment := e.sentiment.Analyze(text)
	tickers := e.extractor.IdentifyConnectedStocks(text)

	impacts := make([]contracts.StockImpact, 0, len(tickers))
	for _, ticker := range tickers {
		company, ok := e.ref.Company(ticker)
		if !ok {
			// Extractor only emits registry tickers
			continue
		}

		prediction := e.model.Build(company, text, sentiment)
		target := prediction.PriceTarget

		impacts = append(impacts, contracts.StockImpact{
			Ticker:      company.Ticker,
			CompanyName: company.Name,
			ImpactScore: prediction.ImpactScore,
			ImpactLevel: contracts.ImpactLevelFor(prediction.ImpactScore),
			Confidence:  prediction.Confidence,
			Timeframe:   prediction.Timeframe,
			Reasoning:   e.narrative.Reasoning(company, sentiment, prediction.Factors, text),
			PriceTarget: &target,
		})
	}

	// Most extreme predictions first
	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].Extremity() > impacts[j].Extremity()
	})

	sectors := e.extractor.IdentifyAffectedSectors(text)

	result := &contracts.AnalysisResult{
		StockImpacts:           impacts,
		SectorImpacts:          e.narrative.SectorImpacts(sectors, text, sentiment),
		OverallMarketSentiment: sentiment,
		KeyInsights:            e.narrative.KeyInsights(impacts, text, sentiment),
		RiskFactors:            e.narrative.RiskFactors(impacts, text),
		Opportunities:          e.narrative.Opportunities(impacts, text, sentiment),
		Timeline:               e.narrative.Timeline(),
	}

	e.logger.WithFields(map[string]interface{}{
		"stocks":    len(result.StockImpacts),
		"sectors":   len(result.SectorImpacts),
		"sentiment": sentiment.Label,
	}).Debug("Analysis completed")

	return result
}
