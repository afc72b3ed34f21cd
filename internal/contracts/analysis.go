package contracts

import "math"

// SentimentLabel is the qualitative bucket of a sentiment score
type SentimentLabel string

const (
	SentimentVeryNegative SentimentLabel = "Very Negative"
	SentimentNegative     SentimentLabel = "Negative"
	SentimentNeutral      SentimentLabel = "Neutral"
	SentimentPositive     SentimentLabel = "Positive"
	SentimentVeryPositive SentimentLabel = "Very Positive"
)

// ImpactLevel is the qualitative bucket of a stock impact score
type ImpactLevel string

const (
	ImpactVeryNegative ImpactLevel = "Very Negative"
	ImpactNegative     ImpactLevel = "Negative"
	ImpactNeutral      ImpactLevel = "Neutral"
	ImpactPositive     ImpactLevel = "Positive"
	ImpactVeryPositive ImpactLevel = "Very Positive"
)

// Timeframe is the predicted horizon over which an impact plays out
type Timeframe string

const (
	TimeframeImmediate  Timeframe = "Immediate"
	TimeframeShortTerm  Timeframe = "Short-term"
	TimeframeMediumTerm Timeframe = "Medium-term"
	TimeframeLongTerm   Timeframe = "Long-term"
)

// SentimentResult is the text-level sentiment of an article.
// Score is in [0,1] with 0.5 the neutral center; Confidence is in [0.3, 0.95].
type SentimentResult struct {
	Score      float64        `json:"score"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
}

// PriceTarget is the projected price move derived from an impact score
type PriceTarget struct {
	Current       float64 `json:"current"`
	Predicted     float64 `json:"predicted"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// StockImpact is the per-company output of the impact model
type StockImpact struct {
	Ticker      string       `json:"ticker"`
	CompanyName string       `json:"companyName"`
	ImpactScore float64      `json:"impactScore"`
	ImpactLevel ImpactLevel  `json:"impactLevel"`
	Confidence  float64      `json:"confidence"`
	Timeframe   Timeframe    `json:"timeframe"`
	Reasoning   []string     `json:"reasoning"`
	PriceTarget *PriceTarget `json:"priceTarget,omitempty"`
}

// Extremity measures how far the impact deviates from the neutral center.
// Output lists are ordered by descending extremity.
func (s *StockImpact) Extremity() float64 {
	return math.Abs(s.ImpactScore - 0.5)
}

// SectorImpact is the per-sector aggregate output
type SectorImpact struct {
	Name           string   `json:"name"`
	ImpactScore    float64  `json:"impactScore"`
	AffectedStocks []string `json:"affectedStocks"`
	Reasoning      string   `json:"reasoning"`
}

// Timeline is the fixed three-bucket outlook skeleton. Its contents are
// constant descriptive strings, not derived from input text.
type Timeline struct {
	Immediate []string `json:"immediate"`
	ShortTerm []string `json:"shortTerm"`
	LongTerm  []string `json:"longTerm"`
}

// AnalysisResult is the full contract returned for one analyzed article.
// It has no lifecycle beyond the request that created it.
type AnalysisResult struct {
	StockImpacts           []StockImpact   `json:"stockImpacts"`
	SectorImpacts          []SectorImpact  `json:"sectorImpacts"`
	OverallMarketSentiment SentimentResult `json:"overallMarketSentiment"`
	KeyInsights            []string        `json:"keyInsights"`
	RiskFactors            []string        `json:"riskFactors"`
	Opportunities          []string        `json:"opportunities"`
	Timeline               Timeline        `json:"timeline"`
}

// ImpactLevelFor classifies an impact score into its qualitative bucket
func ImpactLevelFor(score float64) ImpactLevel {
	switch {
	case score > 0.8:
		return ImpactVeryPositive
	case score > 0.6:
		return ImpactPositive
	case score > 0.4:
		return ImpactNeutral
	case score > 0.2:
		return ImpactNegative
	default:
		return ImpactVeryNegative
	}
}

// SentimentLabelFor classifies the signed raw sentiment value in [-1,1].
// The label is computed on the pre-rescale value, not on the [0,1] score.
func SentimentLabelFor(raw float64) SentimentLabel {
	switch {
	case raw > 0.3:
		return SentimentVeryPositive
	case raw > 0.1:
		return SentimentPositive
	case raw > -0.1:
		return SentimentNeutral
	case raw > -0.3:
		return SentimentNegative
	default:
		return SentimentVeryNegative
	}
}
