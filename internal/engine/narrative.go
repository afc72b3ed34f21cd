package engine

import (
	"fmt"
	"strings"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/refdata"
)

// Output list caps
const (
	maxReasoning     = 5
	maxKeyInsights   = 5
	maxRiskFactors   = 4
	maxOpportunities = 4
	maxSectorStocks  = 4
)

// Business-factor keyword groups surfaced in reasoning
var businessFactorGroups = []struct {
	keywords []string
	theme    string
}{
	{[]string{"earnings", "revenue", "profit"}, "Financial performance is a central theme of the coverage"},
	{[]string{"regulation", "policy", "compliance"}, "Regulatory environment developments are in focus"},
	{[]string{"competition", "market share"}, "Competitive dynamics may shift on this news"},
	{[]string{"innovation", "product", "launch"}, "Product development momentum is highlighted"},
}

// Keyword groups for risk and opportunity scanning
var (
	regulatoryRiskKeywords   = []string{"regulation", "regulatory", "policy", "antitrust"}
	macroRiskKeywords        = []string{"inflation", "interest rate", "rate hike"}
	geopoliticalRiskKeywords = []string{"geopolitical", "trade", "tariff", "sanction"}

	innovationKeywords = []string{"innovation", "technology", "breakthrough"}
	earningsKeywords   = []string{"earnings", "revenue"}
	dealKeywords       = []string{"merger", "acquisition", "takeover"}
)

// Synthesizer turns numeric model output into the human-readable artifacts
// of an analysis: reasoning lists, sector summaries, insights, risks,
// opportunities, and the fixed timeline skeleton.
type Synthesizer struct {
	ref *refdata.MarketReferenceData
}

// NewSynthesizer creates a new narrative synthesizer
func NewSynthesizer(ref *refdata.MarketReferenceData) *Synthesizer {
	return &Synthesizer{ref: ref}
}

// Reasoning generates up to five template-based explanations for one
// company's prediction
func (s *Synthesizer) Reasoning(company refdata.Company, sentiment contracts.SentimentResult, f Factors, text string) []string {
	var reasons []string

	if f.SectorMatches > 0 {
		reasons = append(reasons, fmt.Sprintf("Strong %s sector relevance with %d related keyword matches", company.Sector, f.SectorMatches))
	}

	switch {
	case sentiment.Score > 0.7:
		reasons = append(reasons, "Highly positive news sentiment supports upward movement")
	case sentiment.Score > 0.6:
		reasons = append(reasons, "Positive news tone favors the stock")
	case sentiment.Score < 0.3:
		reasons = append(reasons, "Strongly negative sentiment creates downside pressure")
	case sentiment.Score < 0.4:
		reasons = append(reasons, "Negative news tone weighs on the stock")
	}

	if f.Mentions > 2 {
		reasons = append(reasons, fmt.Sprintf("Company prominently featured with %d direct mentions", f.Mentions))
	} else if f.Mentions > 0 {
		reasons = append(reasons, "Company directly referenced in the article")
	}

	switch {
	case company.MarketCap > megaCapThreshold:
		reasons = append(reasons, "Mega-cap scale dampens single-story volatility")
	case company.MarketCap > 100_000_000_000:
		reasons = append(reasons, "Large-cap profile moderates the expected swing")
	default:
		reasons = append(reasons, "Smaller market cap amplifies news-driven moves")
	}

	for _, group := range businessFactorGroups {
		if containsAny(text, group.keywords) {
			reasons = append(reasons, group.theme)
		}
	}

	if len(reasons) > maxReasoning {
		reasons = reasons[:maxReasoning]
	}
	return reasons
}

// SectorImpacts builds the per-sector aggregate summaries
func (s *Synthesizer) SectorImpacts(sectors []refdata.Sector, text string, sentiment contracts.SentimentResult) []contracts.SectorImpact {
	impacts := make([]contracts.SectorImpact, 0, len(sectors))

	for _, sector := range sectors {
		keywords := s.ref.SectorKeywords(sector)
		matches := countPresent(text, keywords)

		// Sentiment carries most of the signal; keyword density sharpens it
		score := clamp01(sentiment.Score*0.7 + clamp(float64(matches)*0.2, 0, 1)*0.3)

		var affected []string
		for _, c := range s.ref.CompaniesInSector(sector) {
			affected = append(affected, c.Ticker)
			if len(affected) == maxSectorStocks {
				break
			}
		}

		impacts = append(impacts, contracts.SectorImpact{
			Name:           string(sector),
			ImpactScore:    score,
			AffectedStocks: affected,
			Reasoning:      s.sectorReasoning(sector, text, keywords, sentiment),
		})
	}

	return impacts
}

// sectorReasoning is one sentence combining the top matched keywords with
// the sentiment label
func (s *Synthesizer) sectorReasoning(sector refdata.Sector, text string, keywords []string, sentiment contracts.SentimentResult) string {
	matched := matchedKeywords(text, keywords, 3)
	label := strings.ToLower(string(sentiment.Label))

	if len(matched) == 0 {
		return fmt.Sprintf("%s outlook reflects the %s tone of broader market coverage", sector, label)
	}
	return fmt.Sprintf("%s coverage of %s carries a %s tone", sector, strings.Join(matched, ", "), label)
}

// KeyInsights produces up to five headline takeaways from the impact list
// and raw text
func (s *Synthesizer) KeyInsights(impacts []contracts.StockImpact, text string, sentiment contracts.SentimentResult) []string {
	var insights []string

	if len(impacts) > 0 {
		top := impacts[0]
		insights = append(insights, fmt.Sprintf("%s shows the strongest expected reaction (%s)", top.CompanyName, strings.ToLower(string(top.ImpactLevel))))
	}

	if sentiment.Score > 0.7 {
		insights = append(insights, "Coverage is strongly positive for the affected names")
	} else if sentiment.Score < 0.3 {
		insights = append(insights, "Coverage is strongly negative for the affected names")
	}

	positive, negative := 0, 0
	for _, impact := range impacts {
		if impact.ImpactScore > 0.6 {
			positive++
		} else if impact.ImpactScore < 0.4 {
			negative++
		}
	}
	if positive > 0 && positive >= negative {
		insights = append(insights, fmt.Sprintf("Expected impacts skew positive across %d of %d companies", positive, len(impacts)))
	} else if negative > 0 {
		insights = append(insights, fmt.Sprintf("Expected impacts skew negative across %d of %d companies", negative, len(impacts)))
	}

	if containsAny(text, earningsKeywords) {
		insights = append(insights, "Earnings-driven stories tend to resolve within one or two sessions")
	}

	// Guarantee at least one statement
	insights = append(insights, "Market reaction will depend on broader conditions and follow-up coverage")

	if len(insights) > maxKeyInsights {
		insights = insights[:maxKeyInsights]
	}
	return insights
}

// RiskFactors produces up to four caveats from the text and impact list
func (s *Synthesizer) RiskFactors(impacts []contracts.StockImpact, text string) []string {
	var risks []string

	if containsAny(text, regulatoryRiskKeywords) {
		risks = append(risks, "Regulatory developments could alter the projected impact")
	}

	if containsAny(text, macroRiskKeywords) {
		risks = append(risks, "Macro rate and inflation pressure may dominate single-stock moves")
	}

	for _, impact := range impacts {
		if impact.Confidence < 0.5 {
			risks = append(risks, "Low-confidence projections for some companies; treat direction as tentative")
			break
		}
	}

	if containsAny(text, geopoliticalRiskKeywords) {
		risks = append(risks, "Geopolitical and trade developments add uncertainty")
	}

	// The fallback guarantees a non-empty list; when all four specific
	// rules fire it is the entry the cap squeezes out
	risks = append(risks, "Market volatility may overwhelm story-specific effects in the short run")

	if len(risks) > maxRiskFactors {
		risks = risks[:maxRiskFactors]
	}
	return risks
}

// Opportunities produces up to four potential upsides
func (s *Synthesizer) Opportunities(impacts []contracts.StockImpact, text string, sentiment contracts.SentimentResult) []string {
	var opportunities []string

	if sentiment.Score > 0.7 {
		opportunities = append(opportunities, "Strongly positive coverage may extend gains across related names")
	}

	if containsAny(text, innovationKeywords) {
		opportunities = append(opportunities, "Innovation-driven stories often support medium-term rerating")
	}

	if containsAny(text, earningsKeywords) {
		opportunities = append(opportunities, "Earnings strength can attract momentum buyers")
	}

	if containsAny(text, dealKeywords) {
		opportunities = append(opportunities, "Deal activity could unlock value across the sector")
	}

	// Same contract as RiskFactors: non-empty always, generic entry
	// yields to specific findings under the cap
	opportunities = append(opportunities, "Volatility around the story may create entry points for patient investors")

	if len(opportunities) > maxOpportunities {
		opportunities = opportunities[:maxOpportunities]
	}
	return opportunities
}

// Timeline returns the fixed three-bucket outlook. The contents are
// constant and never derived from the input.
func (s *Synthesizer) Timeline() contracts.Timeline {
	return contracts.Timeline{
		Immediate: []string{
			"Initial market reaction and elevated volume expected",
			"Algorithmic and momentum traders respond first",
		},
		ShortTerm: []string{
			"Analyst commentary and price target revisions follow",
			"Institutional positioning adjusts over days to weeks",
		},
		LongTerm: []string{
			"Fundamental effects get absorbed into valuation models",
			"Structural trends reassert over the following quarters",
		},
	}
}
