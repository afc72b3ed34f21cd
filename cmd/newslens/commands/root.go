package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newslens",
	Short: "NewsLens - financial news impact inference engine",
	Long: `NewsLens Unified CLI

Maps financial news articles to structured market impact estimates:
per-stock impact scores, sector effects, overall sentiment, and a
qualitative narrative.

Usage:
  go run ./cmd/newslens [command]

Examples:
  go run ./cmd/newslens api
  go run ./cmd/newslens analyze "Apple beats earnings expectations"
  go run ./cmd/newslens analyze --url https://news.example.com/story
  go run ./cmd/newslens watch`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
