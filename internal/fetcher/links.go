package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DiscoverLinks scans a source index page and returns the absolute article
// URLs found on it, deduplicated in document order. Only same-host links
// are returned; navigation anchors and fragments are dropped.
func (f *Fetcher) DiscoverLinks(ctx context.Context, sourceURL string, limit int) ([]string, error) {
	if err := validateURL(sourceURL); err != nil {
		return nil, err
	}

	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := f.httpClient.Get(ctx, sourceURL)
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

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		resolved, ok := resolveArticleLink(base, href)
		if !ok {
			return true
		}
		if _, dup := seen[resolved]; dup {
			return true
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
		return limit <= 0 || len(links) < limit
	})

	f.logger.WithFields(map[string]interface{}{
		"source": sourceURL,
		"links":  len(links),
	}).Debug("Discovered article links")

	return links, nil
}

// resolveArticleLink turns an anchor href into an absolute same-host URL,
// or reports that the link is not a candidate article
func resolveArticleLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	if resolved.Host != base.Host {
		return "", false
	}

	resolved.Fragment = ""

	// The index page itself is not an article
	if resolved.String() == base.String() {
		return "", false
	}

	return resolved.String(), true
}
