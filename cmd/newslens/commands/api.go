package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/newslens/internal/api"
	"github.com/wonny/newslens/internal/api/handlers"
	"github.com/wonny/newslens/internal/engine"
	"github.com/wonny/newslens/internal/fetcher"
	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/internal/realtime"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/internal/scheduler"
	"github.com/wonny/newslens/internal/scheduler/jobs"
	"github.com/wonny/newslens/pkg/config"
	"github.com/wonny/newslens/pkg/database"
	"github.com/wonny/newslens/pkg/httputil"
	"github.com/wonny/newslens/pkg/logger"
	"github.com/wonny/newslens/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                  - Health check
  POST /api/analyze             - Analyze an article (inline text or URL)
  GET  /api/companies           - Company registry
  GET  /api/companies/{ticker}  - Single company
  GET  /api/sectors             - Sector taxonomy
  GET  /api/history             - Recent analyses (requires DATABASE_URL)
  GET  /api/history/{id}        - Single analysis
  GET  /ws                      - WebSocket stream of watcher analyses

Example:
  go run ./cmd/newslens api
  go run ./cmd/newslens api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsLens API Server ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// Analysis history is optional; without DATABASE_URL the history
	// endpoints respond 503 and analyses are not persisted.
	var historyRepo *history.Repository
	if cfg.HistoryEnabled() {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		historyRepo = history.NewRepository(db.Pool)
		if err := historyRepo.EnsureSchema(cmd.Context()); err != nil {
			return fmt.Errorf("ensure history schema: %w", err)
		}

		log.Info("Connected to database")
	} else {
		log.Info("DATABASE_URL not set, analysis history disabled")
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	httpClient := httputil.New(cfg, log)
	if redisClient.Enabled() {
		// Shared limiter keeps a fleet of instances polite toward sources
		httpClient.WithRateLimiter(redis.NewRateLimiter(redisClient, "newslens"), redis.SourceRateLimit)
	}
	articleCache := redis.NewCache(redisClient, "newslens")
	articleFetcher := fetcher.New(cfg, httpClient, articleCache, log)

	ref := refdata.Default()
	analyzer := engine.New(ref, log)

	hub := realtime.NewHub(log)
	go hub.Run()
	defer hub.Stop()

	// The history store interfaces are satisfied by a nil *Repository
	// only through explicit nil checks, so pass nil interfaces directly.
	var analyzeStore handlers.HistoryStore
	var historyReader handlers.HistoryReader
	if historyRepo != nil {
		analyzeStore = historyRepo
		historyReader = historyRepo
	}

	router := api.NewRouter(api.RouterDeps{
		Analyze:   handlers.NewAnalyzeHandler(analyzer, articleFetcher, analyzeStore, log),
		Companies: handlers.NewCompaniesHandler(ref, log),
		History:   handlers.NewHistoryHandler(historyReader, log),
		WebSocket: hub.ServeWS,
	}, log)

	// With the watcher enabled the server also runs the scan schedule,
	// feeding /ws subscribers and the history store.
	if cfg.Watcher.Enabled {
		var store jobs.Store
		if historyRepo != nil {
			store = historyRepo
		}

		sched := scheduler.New(log)
		if err := sched.AddJob(jobs.NewScanJob(articleFetcher, analyzer, store, hub, cfg, log)); err != nil {
			return fmt.Errorf("register scan job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
