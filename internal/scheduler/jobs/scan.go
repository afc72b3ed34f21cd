// Package jobs holds the scheduled work units: scanning configured news
// sources for fresh articles and pruning old analysis history.
package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/newslens/internal/contracts"
	"github.com/wonny/newslens/internal/fetcher"
	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/pkg/config"
	"github.com/wonny/newslens/pkg/logger"
)

// ArticleSource discovers and fetches articles
type ArticleSource interface {
	DiscoverLinks(ctx context.Context, sourceURL string, limit int) ([]string, error)
	Fetch(ctx context.Context, url string) (*fetcher.Article, error)
}

// Analyzer runs the impact inference pipeline
type Analyzer interface {
	AnalyzeArticleImpact(headline, fullText string) *contracts.AnalysisResult
}

// Store persists analyses and remembers which URLs were already seen
type Store interface {
	Save(ctx context.Context, record *history.Record) error
	HasURL(ctx context.Context, sourceURL string) (bool, error)
}

// Broadcaster pushes completed analyses to live subscribers
type Broadcaster interface {
	Publish(eventType string, data interface{})
}

// AnalysisEvent is the payload broadcast for each analyzed article
type AnalysisEvent struct {
	URL      string                    `json:"url"`
	Headline string                    `json:"headline"`
	Result   *contracts.AnalysisResult `json:"result"`
}

// ScanJob walks the configured source index pages, fetches articles that
// have not been analyzed yet, runs them through the engine, and fans the
// results out to storage and live subscribers. Store and Broadcaster are
// optional; a nil Store disables the already-seen check.
type ScanJob struct {
	source      ArticleSource
	analyzer    Analyzer
	store       Store
	broadcaster Broadcaster
	schedule    string
	sources     []string
	maxPerScan  int
	logger      *logger.Logger
}

// NewScanJob creates a new source scan job
func NewScanJob(source ArticleSource, analyzer Analyzer, store Store, broadcaster Broadcaster, cfg *config.Config, log *logger.Logger) *ScanJob {
	return &ScanJob{
		source:      source,
		analyzer:    analyzer,
		store:       store,
		broadcaster: broadcaster,
		schedule:    cfg.Watcher.Schedule,
		sources:     cfg.Watcher.Sources,
		maxPerScan:  cfg.Watcher.MaxPerScan,
		logger:      log,
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return "source_scan"
}

// Schedule returns the configured cron expression
func (j *ScanJob) Schedule() string {
	return j.schedule
}

// Run scans every configured source once
func (j *ScanJob) Run(ctx context.Context) error {
	j.logger.WithField("sources", len(j.sources)).Info("Starting source scan")

	analyzed := 0
	failedSources := 0

	for _, sourceURL := range j.sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		count, err := j.scanSource(ctx, sourceURL)
		if err != nil {
			failedSources++
			j.logger.WithError(err).WithFields(map[string]interface{}{
				"source": sourceURL,
			}).Warn("Source scan failed")
			continue
		}
		analyzed += count
	}

	if failedSources == len(j.sources) && len(j.sources) > 0 {
		return fmt.Errorf("all %d sources failed", failedSources)
	}

	j.logger.WithFields(map[string]interface{}{
		"analyzed":       analyzed,
		"failed_sources": failedSources,
	}).Info("Source scan completed")

	return nil
}

// scanSource processes one source index page
func (j *ScanJob) scanSource(ctx context.Context, sourceURL string) (int, error) {
	links, err := j.source.DiscoverLinks(ctx, sourceURL, j.maxPerScan)
	if err != nil {
		return 0, fmt.Errorf("discover links: %w", err)
	}

	analyzed := 0
	for _, link := range links {
		if err := ctx.Err(); err != nil {
			return analyzed, err
		}

		if j.store != nil {
			seen, err := j.store.HasURL(ctx, link)
			if err != nil {
				j.logger.WithError(err).Warn("Seen-URL check failed")
			} else if seen {
				continue
			}
		}

		if err := j.processArticle(ctx, link); err != nil {
			j.logger.WithError(err).WithFields(map[string]interface{}{
				"url": link,
			}).Warn("Article processing failed")
			continue
		}
		analyzed++
	}

	return analyzed, nil
}

// processArticle fetches, analyzes, persists, and broadcasts one article
func (j *ScanJob) processArticle(ctx context.Context, link string) error {
	article, err := j.source.Fetch(ctx, link)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	result := j.analyzer.AnalyzeArticleImpact(article.Headline, article.FullText)

	if j.store != nil {
		record := &history.Record{
			SourceURL: article.URL,
			Headline:  article.Headline,
			Result:    result,
		}
		if err := j.store.Save(ctx, record); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	if j.broadcaster != nil {
		j.broadcaster.Publish("analysis", AnalysisEvent{
			URL:      article.URL,
			Headline: article.Headline,
			Result:   result,
		})
	}

	j.logger.WithFields(map[string]interface{}{
		"url":     article.URL,
		"stocks":  len(result.StockImpacts),
		"sectors": len(result.SectorImpacts),
	}).Info("Article analyzed")

	return nil
}
