package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/newslens/internal/engine"
	"github.com/wonny/newslens/internal/fetcher"
	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/logger"
)

type fakeFetcher struct {
	articles map[string]*fetcher.Article
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (*fetcher.Article, error) {
	article, ok := f.articles[url]
	if !ok {
		return nil, errors.New("unreachable")
	}
	return article, nil
}

type fakeHistoryStore struct {
	saved []history.Record
}

func (s *fakeHistoryStore) Save(ctx context.Context, record *history.Record) error {
	s.saved = append(s.saved, *record)
	return nil
}

func newAnalyzeHandler(store HistoryStore, articles map[string]*fetcher.Article) *AnalyzeHandler {
	analyzer := engine.New(refdata.Default(), logger.NewNop(),
		engine.WithRandomSource(engine.FixedRandomSource{Value: 0.9}))
	return NewAnalyzeHandler(analyzer, &fakeFetcher{articles: articles}, store, logger.NewNop())
}

func postAnalyze(t *testing.T, handler *AnalyzeHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler.Analyze(rec, req)

	return rec
}

func TestAnalyze_InlineText(t *testing.T) {
	store := &fakeHistoryStore{}
	handler := newAnalyzeHandler(store, nil)

	rec := postAnalyze(t, handler, AnalyzeRequest{
		Headline: "Apple Reports Record Quarter",
		FullText: "Apple revenue climbed on iphone demand.",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Equal(t, Disclaimer, resp.Disclaimer)
	assert.Equal(t, "Apple Reports Record Quarter", resp.Headline)

	require.NotNil(t, resp.Result)
	require.Len(t, resp.Result.StockImpacts, 1)
	assert.Equal(t, "AAPL", resp.Result.StockImpacts[0].Ticker)

	// Interactive analyses are persisted too
	require.Len(t, store.saved, 1)
	assert.Equal(t, "Apple Reports Record Quarter", store.saved[0].Headline)
	assert.Empty(t, store.saved[0].SourceURL)
}

func TestAnalyze_ByURL(t *testing.T) {
	store := &fakeHistoryStore{}
	handler := newAnalyzeHandler(store, map[string]*fetcher.Article{
		"https://news.example/fed": {
			URL:      "https://news.example/fed",
			Headline: "Fed signals the economy may enter a recession",
			FullText: "Persistent inflation keeps policymakers wary.",
		},
	})

	rec := postAnalyze(t, handler, AnalyzeRequest{URL: "https://news.example/fed"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "https://news.example/fed", resp.SourceURL)
	require.NotNil(t, resp.Result)
	assert.Len(t, resp.Result.StockImpacts, 4)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "https://news.example/fed", store.saved[0].SourceURL)
}

func TestAnalyze_FetchFailure(t *testing.T) {
	handler := newAnalyzeHandler(nil, nil)

	rec := postAnalyze(t, handler, AnalyzeRequest{URL: "https://down.example/story"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to fetch article")
}

func TestAnalyze_Validation(t *testing.T) {
	handler := newAnalyzeHandler(nil, nil)

	t.Run("empty request", func(t *testing.T) {
		rec := postAnalyze(t, handler, AnalyzeRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("both text and url", func(t *testing.T) {
		rec := postAnalyze(t, handler, AnalyzeRequest{Headline: "x", URL: "https://news.example/a"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not both")
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		handler.Analyze(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAnalyze_NilStore(t *testing.T) {
	handler := newAnalyzeHandler(nil, nil)

	rec := postAnalyze(t, handler, AnalyzeRequest{Headline: "Local bakery wins community award"})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Result.StockImpacts)
}
