package refdata

import (
	"fmt"
	"sort"
)

// Sector is a broad industry classification used to group companies
// for relevance scoring
type Sector string

const (
	SectorTechnology            Sector = "Technology"
	SectorFinancialServices     Sector = "Financial Services"
	SectorHealthcare            Sector = "Healthcare"
	SectorEnergy                Sector = "Energy"
	SectorConsumerCyclical      Sector = "Consumer Cyclical"
	SectorConsumerDefensive     Sector = "Consumer Defensive"
	SectorCommunicationServices Sector = "Communication Services"
	SectorIndustrials           Sector = "Industrials"
	SectorUtilities             Sector = "Utilities"
)

// Company is one registry entry. Immutable after load.
type Company struct {
	Ticker    string
	Name      string
	Sector    Sector
	MarketCap int64 // USD
}

// Lexicon is the sentiment keyword table at three intensity tiers
type Lexicon struct {
	Positive TierSet
	Negative TierSet
}

// TierSet groups keywords by intensity. Tier weights are strong=3,
// moderate=2, mild=1.
type TierSet struct {
	Strong   []string
	Moderate []string
	Mild     []string
}

// DefaultBasePrice is used when a ticker has no base-price entry
const DefaultBasePrice = 100.0

// Dataset is the raw material for a MarketReferenceData value.
// Exported so tests can build small fixtures.
type Dataset struct {
	Companies        []Company
	SectorKeywords   map[Sector][]string
	IndustryKeywords map[Sector][]string
	Competitors      map[string][]string
	Lexicon          Lexicon
	BasePrices       map[string]float64
	SectorVolatility map[Sector]float64

	// Fallbacks when a text matches nothing specific
	BroadMarketKeywords []string
	BroadMarketTickers  []string
	DefaultSectors      []Sector
}

// MarketReferenceData consolidates every static lookup table the engine
// needs. It is constructed once at process start and passed by reference;
// all accessors are read-only and safe for concurrent use.
type MarketReferenceData struct {
	companies        map[string]Company
	tickers          []string // deterministic iteration order
	sectorKeywords   map[Sector][]string
	sectors          []Sector // deterministic iteration order
	industryKeywords map[Sector][]string
	competitors      map[string][]string
	lexicon          Lexicon
	basePrices       map[string]float64
	sectorVolatility map[Sector]float64

	broadMarketKeywords []string
	broadMarketTickers  []string
	defaultSectors      []Sector
}

// New builds reference data from a dataset
func New(ds Dataset) (*MarketReferenceData, error) {
	if len(ds.Companies) == 0 {
		return nil, fmt.Errorf("dataset has no companies")
	}

	companies := make(map[string]Company, len(ds.Companies))
	tickers := make([]string, 0, len(ds.Companies))
	for _, c := range ds.Companies {
		if c.Ticker == "" {
			return nil, fmt.Errorf("company %q has empty ticker", c.Name)
		}
		if _, dup := companies[c.Ticker]; dup {
			return nil, fmt.Errorf("duplicate ticker %s", c.Ticker)
		}
		companies[c.Ticker] = c
		tickers = append(tickers, c.Ticker)
	}
	sort.Strings(tickers)

	for _, t := range ds.BroadMarketTickers {
		if _, ok := companies[t]; !ok {
			return nil, fmt.Errorf("broad market ticker %s not in registry", t)
		}
	}

	sectors := make([]Sector, 0, len(ds.SectorKeywords))
	for s := range ds.SectorKeywords {
		sectors = append(sectors, s)
	}
	sort.Slice(sectors, func(i, j int) bool { return sectors[i] < sectors[j] })

	return &MarketReferenceData{
		companies:           companies,
		tickers:             tickers,
		sectorKeywords:      ds.SectorKeywords,
		sectors:             sectors,
		industryKeywords:    ds.IndustryKeywords,
		competitors:         ds.Competitors,
		lexicon:             ds.Lexicon,
		basePrices:          ds.BasePrices,
		sectorVolatility:    ds.SectorVolatility,
		broadMarketKeywords: ds.BroadMarketKeywords,
		broadMarketTickers:  ds.BroadMarketTickers,
		defaultSectors:      ds.DefaultSectors,
	}, nil
}

// Default returns the built-in US large-cap dataset
func Default() *MarketReferenceData {
	ref, err := New(builtinDataset())
	if err != nil {
		// The builtin dataset is compiled in; failing to load it is a bug
		panic(fmt.Sprintf("refdata: builtin dataset invalid: %v", err))
	}
	return ref
}

// Company looks up a registry entry by ticker
func (r *MarketReferenceData) Company(ticker string) (Company, bool) {
	c, ok := r.companies[ticker]
	return c, ok
}

// Tickers returns all known tickers in deterministic order
func (r *MarketReferenceData) Tickers() []string {
	return r.tickers
}

// Sectors returns all known sectors in deterministic order
func (r *MarketReferenceData) Sectors() []Sector {
	return r.sectors
}

// CompaniesInSector returns the sector's companies ordered by descending
// market cap
func (r *MarketReferenceData) CompaniesInSector(s Sector) []Company {
	var out []Company
	for _, t := range r.tickers {
		if c := r.companies[t]; c.Sector == s {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MarketCap > out[j].MarketCap })
	return out
}

// SectorKeywords returns the broad keyword set for a sector
func (r *MarketReferenceData) SectorKeywords(s Sector) []string {
	return r.sectorKeywords[s]
}

// IndustryKeywords returns the finer-grained keyword set for a sector
func (r *MarketReferenceData) IndustryKeywords(s Sector) []string {
	return r.industryKeywords[s]
}

// Competitors returns lowercase competitor name fragments for a ticker
func (r *MarketReferenceData) Competitors(ticker string) []string {
	return r.competitors[ticker]
}

// Lexicon returns the sentiment keyword table
func (r *MarketReferenceData) Lexicon() Lexicon {
	return r.lexicon
}

// BasePrice returns the reference price for a ticker. Unknown tickers fall
// back to DefaultBasePrice so the pipeline stays total.
func (r *MarketReferenceData) BasePrice(ticker string) float64 {
	if p, ok := r.basePrices[ticker]; ok {
		return p
	}
	return DefaultBasePrice
}

// SectorVolatility returns the fixed volatility constant for a sector
// (1.0 when unlisted)
func (r *MarketReferenceData) SectorVolatility(s Sector) float64 {
	if v, ok := r.sectorVolatility[s]; ok {
		return v
	}
	return 1.0
}

// BroadMarketKeywords returns the fallback keyword set signalling general
// market news
func (r *MarketReferenceData) BroadMarketKeywords() []string {
	return r.broadMarketKeywords
}

// BroadMarketTickers returns the default large-cap set used when market-wide
// news matches no specific company
func (r *MarketReferenceData) BroadMarketTickers() []string {
	return r.broadMarketTickers
}

// DefaultSectors returns the sector fallback used when no sector keyword
// matches
func (r *MarketReferenceData) DefaultSectors() []Sector {
	return r.defaultSectors
}
