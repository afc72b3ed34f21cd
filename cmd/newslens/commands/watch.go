package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/newslens/internal/engine"
	"github.com/wonny/newslens/internal/fetcher"
	"github.com/wonny/newslens/internal/history"
	"github.com/wonny/newslens/internal/refdata"
	"github.com/wonny/newslens/internal/scheduler"
	"github.com/wonny/newslens/internal/scheduler/jobs"
	"github.com/wonny/newslens/pkg/config"
	"github.com/wonny/newslens/pkg/database"
	"github.com/wonny/newslens/pkg/httputil"
	"github.com/wonny/newslens/pkg/logger"
	"github.com/wonny/newslens/pkg/redis"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the scheduled source watcher",
	Long: `Starts the scheduler and scans the configured news sources on the
WATCHER_SCHEDULE cron expression. Newly discovered articles are
fetched, analyzed, and persisted when DATABASE_URL is set.

Registered jobs:
- source_scan: on WATCHER_SCHEDULE (default every 15 minutes)
- history_maintenance: daily at 03:00 (only with DATABASE_URL)

Requires WATCHER_ENABLED=true and WATCHER_SOURCES.

Example:
  go run ./cmd/newslens watch
  go run ./cmd/newslens watch --once`,
	RunE: runWatch,
}

var (
	watchOnce      bool
	watchRetention time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "run a single scan immediately and exit")
	watchCmd.Flags().DurationVar(&watchRetention, "retention", 30*24*time.Hour, "how long to keep persisted analyses")
}

func runWatch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== NewsLens Source Watcher ===")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !cfg.Watcher.Enabled {
		return fmt.Errorf("watcher is disabled, set WATCHER_ENABLED=true and WATCHER_SOURCES")
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"sources":  len(cfg.Watcher.Sources),
		"schedule": cfg.Watcher.Schedule,
	}).Info("Initializing source watcher")

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
		log.Warn("DATABASE_URL not set, analyses will not be persisted")
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	httpClient := httputil.New(cfg, log)
	if redisClient.Enabled() {
		httpClient.WithRateLimiter(redis.NewRateLimiter(redisClient, "newslens"), redis.SourceRateLimit)
	}
	articleCache := redis.NewCache(redisClient, "newslens")
	articleFetcher := fetcher.New(cfg, httpClient, articleCache, log)

	analyzer := engine.New(refdata.Default(), log)

	var store jobs.Store
	if historyRepo != nil {
		store = historyRepo
	}

	scanJob := jobs.NewScanJob(articleFetcher, analyzer, store, nil, cfg, log)

	if watchOnce {
		if err := scanJob.Run(cmd.Context()); err != nil {
			return fmt.Errorf("scan sources: %w", err)
		}
		log.Info("Scan complete")
		return nil
	}

	sched := scheduler.New(log)
	if err := sched.AddJob(scanJob); err != nil {
		return fmt.Errorf("register scan job: %w", err)
	}
	if historyRepo != nil {
		if err := sched.AddJob(jobs.NewMaintenanceJob(historyRepo, watchRetention, log)); err != nil {
			return fmt.Errorf("register maintenance job: %w", err)
		}
	}

	sched.Start()

	fmt.Println("\nRegistered jobs:")
	for _, name := range sched.JobNames() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Stopping watcher...")
	sched.Stop()
	log.Info("Watcher stopped")

	return nil
}
