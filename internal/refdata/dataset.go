package refdata

// builtinDataset is the shipped US large-cap universe. Market caps are
// coarse snapshots; the model only distinguishes the >$1T and >$500B /
// >$100B tiers, so drift does not change behavior until a company crosses
// a tier boundary.
func builtinDataset() Dataset {
	const (
		billion  = 1_000_000_000
		trillion = 1_000_000_000_000
	)

	return Dataset{
		Companies: []Company{
			{Ticker: "AAPL", Name: "Apple Inc.", Sector: SectorTechnology, MarketCap: 3_400 * billion},
			{Ticker: "MSFT", Name: "Microsoft Corporation", Sector: SectorTechnology, MarketCap: 3_200 * billion},
			{Ticker: "NVDA", Name: "NVIDIA Corporation", Sector: SectorTechnology, MarketCap: 3_000 * billion},
			{Ticker: "GOOGL", Name: "Alphabet Inc.", Sector: SectorCommunicationServices, MarketCap: 2_100 * billion},
			{Ticker: "AMZN", Name: "Amazon.com Inc.", Sector: SectorConsumerCyclical, MarketCap: 1_900 * billion},
			{Ticker: "META", Name: "Meta Platforms Inc.", Sector: SectorCommunicationServices, MarketCap: 1_300 * billion},
			{Ticker: "TSLA", Name: "Tesla Inc.", Sector: SectorConsumerCyclical, MarketCap: 800 * billion},
			{Ticker: "JPM", Name: "JPMorgan Chase", Sector: SectorFinancialServices, MarketCap: 600 * billion},
			{Ticker: "V", Name: "Visa Inc.", Sector: SectorFinancialServices, MarketCap: 550 * billion},
			{Ticker: "MA", Name: "Mastercard Incorporated", Sector: SectorFinancialServices, MarketCap: 430 * billion},
			{Ticker: "BAC", Name: "Bank of America", Sector: SectorFinancialServices, MarketCap: 300 * billion},
			{Ticker: "GS", Name: "Goldman Sachs Group", Sector: SectorFinancialServices, MarketCap: 150 * billion},
			{Ticker: "UNH", Name: "UnitedHealth Group", Sector: SectorHealthcare, MarketCap: 480 * billion},
			{Ticker: "JNJ", Name: "Johnson & Johnson", Sector: SectorHealthcare, MarketCap: 380 * billion},
			{Ticker: "PFE", Name: "Pfizer Inc.", Sector: SectorHealthcare, MarketCap: 160 * billion},
			{Ticker: "MRNA", Name: "Moderna Inc.", Sector: SectorHealthcare, MarketCap: 40 * billion},
			{Ticker: "XOM", Name: "Exxon Mobil", Sector: SectorEnergy, MarketCap: 480 * billion},
			{Ticker: "CVX", Name: "Chevron Corporation", Sector: SectorEnergy, MarketCap: 280 * billion},
			{Ticker: "WMT", Name: "Walmart Inc.", Sector: SectorConsumerDefensive, MarketCap: 500 * billion},
			{Ticker: "PG", Name: "Procter & Gamble", Sector: SectorConsumerDefensive, MarketCap: 390 * billion},
			{Ticker: "KO", Name: "Coca-Cola Company", Sector: SectorConsumerDefensive, MarketCap: 260 * billion},
			{Ticker: "NFLX", Name: "Netflix Inc.", Sector: SectorCommunicationServices, MarketCap: 300 * billion},
			{Ticker: "DIS", Name: "Walt Disney Company", Sector: SectorCommunicationServices, MarketCap: 200 * billion},
			{Ticker: "AMD", Name: "Advanced Micro Devices", Sector: SectorTechnology, MarketCap: 250 * billion},
			{Ticker: "INTC", Name: "Intel Corporation", Sector: SectorTechnology, MarketCap: 130 * billion},
			{Ticker: "CRM", Name: "Salesforce Inc.", Sector: SectorTechnology, MarketCap: 280 * billion},
			{Ticker: "ORCL", Name: "Oracle Corporation", Sector: SectorTechnology, MarketCap: 350 * billion},
			{Ticker: "BA", Name: "Boeing Company", Sector: SectorIndustrials, MarketCap: 120 * billion},
		},

		SectorKeywords: map[Sector][]string{
			SectorTechnology: {
				"tech", "software", "hardware", "semiconductor", "chip",
				"cloud", "artificial intelligence", " ai ", "computing", "digital",
			},
			SectorFinancialServices: {
				"bank", "banking", "finance", "financial", "lending",
				"credit", "payment", "fintech", "interest rate",
			},
			SectorHealthcare: {
				"health", "pharma", "pharmaceutical", "drug", "medical",
				"biotech", "vaccine", "clinical", "fda",
			},
			SectorEnergy: {
				"oil", "gas", "energy", "crude", "drilling", "refinery",
				"renewable", "solar",
			},
			SectorConsumerCyclical: {
				"retail", "consumer", "e-commerce", "shopping", "automotive",
				"electric vehicle",
			},
			SectorConsumerDefensive: {
				"grocery", "beverage", "household", "staples", "food",
			},
			SectorCommunicationServices: {
				"streaming", "media", "advertising", "social media",
				"entertainment", "content",
			},
			SectorIndustrials: {
				"aerospace", "manufacturing", "defense", "airline", "industrial",
			},
			SectorUtilities: {
				"utility", "electricity", "power grid", "water",
			},
		},

		IndustryKeywords: map[Sector][]string{
			SectorTechnology: {
				"iphone", "ipad", "mac", "windows", "azure", "gpu",
				"data center", "cybersecurity", "saas", "machine learning",
				"large language model", "foundry",
			},
			SectorFinancialServices: {
				"mortgage", "trading desk", "investment banking", "deposits",
				"card network", "wealth management",
			},
			SectorHealthcare: {
				"oncology", "obesity drug", "gene therapy", "medicare",
				"insurer", "trial results",
			},
			SectorEnergy: {
				"opec", "barrel", "lng", "shale", "upstream", "downstream",
			},
			SectorConsumerCyclical: {
				"same-store sales", "holiday shopping", "delivery",
				"marketplace", "battery", "autopilot",
			},
			SectorConsumerDefensive: {
				"supermarket", "soft drink", "detergent", "snack",
			},
			SectorCommunicationServices: {
				"subscriber", "box office", "ad revenue", "creator",
				"theme park", "search engine",
			},
			SectorIndustrials: {
				"jet", "contract award", "backlog", "freight", "737",
			},
			SectorUtilities: {
				"rate case", "megawatt", "transmission",
			},
		},

		Competitors: map[string][]string{
			"AAPL":  {"samsung", "xiaomi", "huawei"},
			"MSFT":  {"google cloud", "aws", "slack"},
			"NVDA":  {"amd", "intel", "tsmc"},
			"GOOGL": {"bing", "openai", "duckduckgo"},
			"AMZN":  {"walmart", "alibaba", "shopify"},
			"META":  {"tiktok", "snapchat", "youtube"},
			"TSLA":  {"rivian", "lucid", "byd", "ford"},
			"JPM":   {"citigroup", "wells fargo"},
			"NFLX":  {"disney+", "hbo", "hulu"},
			"PFE":   {"merck", "novartis", "astrazeneca"},
			"XOM":   {"shell", "bp", "totalenergies"},
			"WMT":   {"target", "costco", "kroger"},
			"BA":    {"airbus", "lockheed"},
			"KO":    {"pepsi"},
			"V":     {"paypal", "stripe"},
		},

		Lexicon: Lexicon{
			Positive: TierSet{
				Strong:   []string{"surge", "soar", "skyrocket", "record", "breakthrough", "blowout", "stellar"},
				Moderate: []string{"gain", "rise", "growth", "beat", "strong", "upgrade", "outperform", "rally"},
				Mild:     []string{"improve", "positive", "steady", "optimistic", "recover", "solid"},
			},
			Negative: TierSet{
				Strong:   []string{"crash", "plunge", "collapse", "bankruptcy", "scandal", "fraud", "meltdown"},
				Moderate: []string{"fall", "drop", "decline", "miss", "weak", "downgrade", "layoffs", "lawsuit"},
				Mild:     []string{"dip", "concern", "caution", "slow", "uncertain", "pressure"},
			},
		},

		BasePrices: map[string]float64{
			"AAPL": 190, "MSFT": 420, "NVDA": 120, "GOOGL": 175,
			"AMZN": 185, "META": 500, "TSLA": 250, "JPM": 210,
			"V": 280, "MA": 460, "BAC": 40, "GS": 480,
			"UNH": 520, "JNJ": 155, "PFE": 28, "MRNA": 110,
			"XOM": 115, "CVX": 155, "WMT": 70, "PG": 165,
			"KO": 62, "NFLX": 650, "DIS": 95, "AMD": 160,
			"INTC": 31, "CRM": 270, "ORCL": 140, "BA": 180,
		},

		SectorVolatility: map[Sector]float64{
			SectorTechnology:            1.2,
			SectorCommunicationServices: 1.1,
			SectorConsumerCyclical:      1.25,
			SectorFinancialServices:     1.0,
			SectorHealthcare:            0.9,
			SectorEnergy:                1.5,
			SectorConsumerDefensive:     0.7,
			SectorIndustrials:           1.0,
			SectorUtilities:             0.6,
		},

		BroadMarketKeywords: []string{
			"market", "economy", "fed", "inflation", "gdp",
			"recession", "bull", "bear",
		},

		BroadMarketTickers: []string{"AAPL", "MSFT", "GOOGL", "AMZN"},

		DefaultSectors: []Sector{
			SectorTechnology,
			SectorFinancialServices,
			SectorHealthcare,
		},
	}
}
