package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/fetcher"
	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/pkg/logger"
)

// Disclaimer accompanies every analysis response
const Disclaimer = "Heuristic estimate for informational purposes only; not investment advice."

// Analyzer runs the impact inference pipeline
type Analyzer interface {
	AnalyzeArticleImpact(headline, fullText string) *contracts.AnalysisResult
}

// ArticleFetcher downloads and extracts an article by URL
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Article, error)
}

// HistoryStore persists completed analyses
type HistoryStore interface {
	Save(ctx context.Context, record *history.Record) error
}

// AnalyzeHandler handles analysis API endpoints
type AnalyzeHandler struct {
	analyzer Analyzer
	fetcher  ArticleFetcher
	store    HistoryStore // nil when history is disabled
	logger   *logger.Logger
}

// NewAnalyzeHandler creates a new analysis handler
func NewAnalyzeHandler(analyzer Analyzer, articleFetcher ArticleFetcher, store HistoryStore, log *logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		fetcher:  articleFetcher,
		store:    store,
		logger:   log,
	}
}

// AnalyzeRequest carries either inline article text or a URL to fetch
type AnalyzeRequest struct {
	Headline string `json:"headline"`
	FullText string `json:"fullText"`
	URL      string `json:"url"`
}

// AnalyzeResponse is the JSON envelope around an analysis result
type AnalyzeResponse struct {
	Success    bool                      `json:"success"`
	Timestamp  time.Time                 `json:"timestamp"`
	Headline   string                    `json:"headline"`
	SourceURL  string                    `json:"sourceUrl,omitempty"`
	Result     *contracts.AnalysisResult `json:"result"`
	Disclaimer string                    `json:"disclaimer"`
}

// Analyze runs the engine over the request's article
// POST /api/analyze
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	headline := strings.TrimSpace(req.Headline)
	fullText := req.FullText
	sourceURL := ""

	if req.URL != "" {
		if headline != "" || strings.TrimSpace(fullText) != "" {
			respondError(w, http.StatusBadRequest, "Provide either inline text or a URL, not both")
			return
		}

		article, err := h.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			h.logger.WithError(err).WithFields(map[string]interface{}{
				"url": req.URL,
			}).Warn("Article fetch failed")
			respondError(w, http.StatusBadGateway, "Failed to fetch article")
			return
		}

		headline = article.Headline
		fullText = article.FullText
		sourceURL = article.URL
	} else if headline == "" && strings.TrimSpace(fullText) == "" {
		respondError(w, http.StatusBadRequest, "headline, fullText, or url is required")
		return
	}

	result := h.analyzer.AnalyzeArticleImpact(headline, fullText)

	if h.store != nil {
		record := &history.Record{
			SourceURL: sourceURL,
			Headline:  headline,
			Result:    result,
		}
		if err := h.store.Save(ctx, record); err != nil {
			// Persistence is best effort for interactive analyses
			h.logger.WithError(err).Warn("Failed to persist analysis")
		}
	}

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Success:    true,
		Timestamp:  time.Now().UTC(),
		Headline:   headline,
		SourceURL:  sourceURL,
		Result:     result,
		Disclaimer: Disclaimer,
	})
}
