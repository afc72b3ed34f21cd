package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/pkg/logger"
)

type fakeHistoryReader struct {
	records   []history.Record
	lastLimit int
}

func (r *fakeHistoryReader) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	r.lastLimit = limit
	if limit < len(r.records) {
		return r.records[:limit], nil
	}
	return r.records, nil
}

func (r *fakeHistoryReader) GetByID(ctx context.Context, id int64) (*history.Record, error) {
	for i := range r.records {
		if r.records[i].ID == id {
			return &r.records[i], nil
		}
	}
	return nil, history.ErrNotFound
}

func newHistoryRouter(store HistoryReader) *mux.Router {
	handler := NewHistoryHandler(store, logger.NewNop())

	router := mux.NewRouter()
	router.HandleFunc("/api/history", handler.Recent).Methods(http.MethodGet)
	router.HandleFunc("/api/history/{id}", handler.Get).Methods(http.MethodGet)
	return router
}

func sampleRecords() []history.Record {
	result := &contracts.AnalysisResult{
		OverallMarketSentiment: contracts.SentimentResult{Score: 0.5, Label: contracts.SentimentNeutral, Confidence: 0.5},
	}
	now := time.Now().UTC()
	return []history.Record{
		{ID: 2, Headline: "Second story", Result: result, AnalyzedAt: now},
		{ID: 1, Headline: "First story", Result: result, AnalyzedAt: now.Add(-time.Hour)},
	}
}

func TestHistory_Recent(t *testing.T) {
	reader := &fakeHistoryReader{records: sampleRecords()}
	router := newHistoryRouter(reader)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool             `json:"success"`
		Count    int              `json:"count"`
		Analyses []history.Record `json:"analyses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Analyses, 2)
	assert.Equal(t, "Second story", resp.Analyses[0].Headline)
	assert.Equal(t, 20, reader.lastLimit)
}

func TestHistory_RecentLimit(t *testing.T) {
	reader := &fakeHistoryReader{records: sampleRecords()}
	router := newHistoryRouter(reader)

	t.Run("explicit limit", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, reader.lastLimit)
	})

	t.Run("limit capped", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=5000", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, maxHistoryPageSize, reader.lastLimit)
	})

	t.Run("invalid limit", func(t *testing.T) {
		for _, raw := range []string{"0", "-3", "abc"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit="+raw, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", raw)
		}
	})
}

func TestHistory_Get(t *testing.T) {
	router := newHistoryRouter(&fakeHistoryReader{records: sampleRecords()})

	t.Run("found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/1", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Analysis history.Record `json:"analysis"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "First story", resp.Analysis.Headline)
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/99", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Analysis not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history/abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHistory_Disabled(t *testing.T) {
	router := newHistoryRouter(nil)

	for _, path := range []string{"/api/history", "/api/history/1"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "not configured", path)
	}
}
