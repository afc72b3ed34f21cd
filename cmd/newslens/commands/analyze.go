package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/newslens/internal/engine"
	"github.com/wonny/newslens/internal/fetcher"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/pkg/config"
	"github.com/wonny/newslens/pkg/httputil"
	"github.com/wonny/newslens/pkg/logger"
	"github.com/wonny/newslens/pkg/redis"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [headline]",
	Short: "Analyze one article and print the result as JSON",
	Long: `Runs the impact inference engine over a single article and prints
the structured result to stdout.

The article comes either from the command line (headline as the
argument, body via --text) or from a URL (--url), which is fetched
and extracted first.

Example:
  go run ./cmd/newslens analyze "Apple beats earnings expectations"
  go run ./cmd/newslens analyze "Fed holds rates" --text "Markets rallied on the decision."
  go run ./cmd/newslens analyze --url https://news.example.com/story`,
	RunE: runAnalyze,
}

var (
	analyzeText string
	analyzeURL  string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "article body text")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "article URL to fetch and analyze")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The one-shot command logs to stderr only when asked; stdout is
	// reserved for the JSON result.
	if !verbose {
		cfg.LogLevel = "error"
	}
	log := logger.New(cfg)

	headline := strings.TrimSpace(strings.Join(args, " "))
	fullText := analyzeText
	sourceURL := ""

	if analyzeURL != "" {
		if headline != "" || strings.TrimSpace(fullText) != "" {
			return fmt.Errorf("provide either inline text or --url, not both")
		}

		redisClient, err := redis.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer redisClient.Close()

		httpClient := httputil.New(cfg, log)
		articleCache := redis.NewCache(redisClient, "newslens")
		articleFetcher := fetcher.New(cfg, httpClient, articleCache, log)

		article, err := articleFetcher.Fetch(cmd.Context(), analyzeURL)
		if err != nil {
			return fmt.Errorf("fetch article: %w", err)
		}

		headline = article.Headline
		fullText = article.FullText
		sourceURL = article.URL
	} else if headline == "" && strings.TrimSpace(fullText) == "" {
		return fmt.Errorf("a headline argument, --text, or --url is required")
	}

	analyzer := engine.New(refdata.Default(), log)
	result := analyzer.AnalyzeArticleImpact(headline, fullText)

	out := map[string]interface{}{
		"headline": headline,
		"result":   result,
	}
	if sourceURL != "" {
		out["sourceUrl"] = sourceURL
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
