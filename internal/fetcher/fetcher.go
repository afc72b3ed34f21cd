package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/wonny/newslens/pkg/config"
	"github.com/wonny/newslens/pkg/httputil"
	"github.com/wonny/newslens/pkg/logger"
	"github.com/wonny/newslens/pkg/redis"
)

// Article is a fetched and extracted news article
type Article struct {
	URL       string    `json:"url"`
	Headline  string    `json:"headline"`
	FullText  string    `json:"fullText"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Fetcher downloads article pages and extracts their headline and body.
// Fetched articles are cached by URL so repeated analyses of the same link
// do not re-download the page.
type Fetcher struct {
	httpClient *httputil.Client
	cache      *redis.Cache
	limiter    *rate.Limiter
	cacheTTL   time.Duration
	logger     *logger.Logger
}

// New creates a new article fetcher
func New(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Fetcher {
	return &Fetcher{
		httpClient: httpClient,
		cache:      cache,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Fetcher.RequestsPerSecond), 1),
		cacheTTL:   cfg.Fetcher.CacheTTL,
		logger:     log,
	}
}

// Fetch downloads one article page and extracts its content
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	cacheKey := redis.ArticleKey(rawURL)

	var cached Article
	hit, err := f.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		f.logger.WithError(err).Warn("Article cache read failed")
	}
	if hit {
		f.logger.WithField("url", rawURL).Debug("Article cache hit")
		return &cached, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := f.httpClient.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse HTML failed: %w", err)
	}

	article := &Article{
		URL:       rawURL,
		Headline:  extractHeadline(doc),
		FullText:  extractBody(doc),
		FetchedAt: time.Now().UTC(),
	}

	if article.Headline == "" && article.FullText == "" {
		return nil, fmt.Errorf("no extractable content at %s", rawURL)
	}

	if err := f.cache.Set(ctx, cacheKey, article, f.cacheTTL); err != nil {
		f.logger.WithError(err).Warn("Article cache write failed")
	}

	f.logger.WithFields(map[string]interface{}{
		"url":      rawURL,
		"headline": article.Headline,
		"chars":    len(article.FullText),
	}).Debug("Fetched article")

	return article, nil
}

// extractHeadline picks the best available title, preferring the social
// share title over the document title over the first h1
func extractHeadline(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if title := strings.TrimSpace(og); title != "" {
			return title
		}
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractBody joins paragraph text, preferring paragraphs inside an
// <article> element when one exists
func extractBody(doc *goquery.Document) string {
	paragraphs := doc.Find("article p")
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}

	var parts []string
	paragraphs.Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return strings.Join(parts, "\n")
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
