package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

// CompaniesHandler serves the reference-data registry
type CompaniesHandler struct {
	ref    *refdata.MarketReferenceData
	logger *logger.Logger
}

// NewCompaniesHandler creates a new companies handler
func NewCompaniesHandler(ref *refdata.MarketReferenceData, log *logger.Logger) *CompaniesHandler {
	return &CompaniesHandler{
		ref:    ref,
		logger: log,
	}
}

// CompanyResponse is one registry entry
type CompanyResponse struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	MarketCap int64   `json:"marketCap"`
	BasePrice float64 `json:"basePrice"`
}

// List returns every company in the registry
// GET /api/companies
func (h *CompaniesHandler) List(w http.ResponseWriter, r *http.Request) {
	tickers := h.ref.Tickers()

	companies := make([]CompanyResponse, 0, len(tickers))
	for _, ticker := range tickers {
		company, _ := h.ref.Company(ticker)
		companies = append(companies, companyResponse(h.ref, company))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"count":     len(companies),
		"companies": companies,
	})
}

// Get returns one company by ticker
// GET /api/companies/{ticker}
func (h *CompaniesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(mux.Vars(r)["ticker"])

	company, ok := h.ref.Company(ticker)
	if !ok {
		respondError(w, http.StatusNotFound, "Unknown ticker")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"company": companyResponse(h.ref, company),
	})
}

// SectorResponse is one sector with its member tickers
type SectorResponse struct {
	Name       string   `json:"name"`
	Volatility float64  `json:"volatility"`
	Tickers    []string `json:"tickers"`
}

// Sectors returns the sector taxonomy
// GET /api/sectors
func (h *CompaniesHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors := h.ref.Sectors()

	out := make([]SectorResponse, 0, len(sectors))
	for _, sector := range sectors {
		members := h.ref.CompaniesInSector(sector)
		tickers := make([]string, 0, len(members))
		for _, c := range members {
			tickers = append(tickers, c.Ticker)
		}

		out = append(out, SectorResponse{
			Name:       string(sector),
			Volatility: h.ref.SectorVolatility(sector),
			Tickers:    tickers,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"sectors": out,
	})
}

func companyResponse(ref *refdata.MarketReferenceData, company refdata.Company) CompanyResponse {
	return CompanyResponse{
		Ticker:    company.Ticker,
		Name:      company.Name,
		Sector:    string(company.Sector),
		MarketCap: company.MarketCap,
		BasePrice: ref.BasePrice(company.Ticker),
	}
}
