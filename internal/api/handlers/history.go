package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/pkg/logger"
)

// maxHistoryPageSize bounds the limit query parameter
const maxHistoryPageSize = 100

// HistoryReader reads persisted analyses
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]history.Record, error)
	GetByID(ctx context.Context, id int64) (*history.Record, error)
}

// HistoryHandler serves persisted analyses
type HistoryHandler struct {
	store  HistoryReader // nil when history is disabled
	logger *logger.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(store HistoryReader, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{
		store:  store,
		logger: log,
	}
}

// Recent returns the latest analyses
// GET /api/history?limit=20
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Analysis history is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	if limit > maxHistoryPageSize {
		limit = maxHistoryPageSize
	}

	records, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to read analysis history")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	if records == nil {
		records = []history.Record{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"count":    len(records),
		"analyses": records,
	})
}

// Get returns one analysis by ID
// GET /api/history/{id}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Analysis history is not configured")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "id must be an integer")
		return
	}

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Analysis not found")
			return
		}
		h.logger.WithError(err).Error("Failed to read analysis")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve analysis")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": record,
	})
}
