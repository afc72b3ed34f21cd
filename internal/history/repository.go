package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/newslens/internal/contracts"
)

// Record is one persisted analysis
type Record struct {
	ID         int64                     `json:"id"`
	SourceURL  string                    `json:"sourceUrl,omitempty"`
	Headline   string                    `json:"headline"`
	Result     *contracts.AnalysisResult `json:"result"`
	AnalyzedAt time.Time                 `json:"analyzedAt"`
}

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("analysis record not found")

// Repository persists analysis results
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new history repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Pool returns the underlying database pool
func (r *Repository) Pool() *pgxpool.Pool {
	return r.db
}

// EnsureSchema creates the analyses table when it does not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS analyses (
			id          BIGSERIAL PRIMARY KEY,
			source_url  TEXT NOT NULL DEFAULT '',
			headline    TEXT NOT NULL,
			result      JSONB NOT NULL,
			analyzed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_analyzed_at ON analyses (analyzed_at DESC);
		CREATE INDEX IF NOT EXISTS idx_analyses_source_url ON analyses (source_url);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create analyses schema: %w", err)
	}
	return nil
}

// Save stores one analysis and fills in the generated ID and timestamp
func (r *Repository) Save(ctx context.Context, record *Record) error {
	resultJSON, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	query := `
		INSERT INTO analyses (source_url, headline, result)
		VALUES ($1, $2, $3)
		RETURNING id, analyzed_at
	`

	err = r.db.QueryRow(ctx, query, record.SourceURL, record.Headline, resultJSON).
		Scan(&record.ID, &record.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	return nil
}

// Recent returns the latest analyses, newest first
func (r *Repository) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, source_url, headline, result, analyzed_at
		FROM analyses
		ORDER BY analyzed_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetByID returns one analysis by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Record, error) {
	query := `
		SELECT id, source_url, headline, result, analyzed_at
		FROM analyses
		WHERE id = $1
	`

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query analysis: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	record, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// HasURL reports whether a source URL has already been analyzed. The
// watcher uses this to skip articles it has seen.
func (r *Repository) HasURL(ctx context.Context, sourceURL string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM analyses WHERE source_url = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, sourceURL).Scan(&exists); err != nil {
		return false, fmt.Errorf("check analysis existence: %w", err)
	}
	return exists, nil
}

// DeleteOlderThan removes analyses persisted before the cutoff and returns
// the number deleted
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM analyses WHERE analyzed_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old analyses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanRecord(rows pgx.Rows) (Record, error) {
	var record Record
	var resultJSON []byte

	if err := rows.Scan(&record.ID, &record.SourceURL, &record.Headline, &resultJSON, &record.AnalyzedAt); err != nil {
		return Record{}, fmt.Errorf("scan analysis: %w", err)
	}

	record.Result = &contracts.AnalysisResult{}
	if err := json.Unmarshal(resultJSON, record.Result); err != nil {
		return Record{}, fmt.Errorf("unmarshal result: %w", err)
	}

	return record, nil
}
