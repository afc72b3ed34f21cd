package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/newslens/pkg/logger"
)

// Pruner deletes old analysis rows
type Pruner interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MaintenanceJob prunes analysis history past the retention window
type MaintenanceJob struct {
	pruner    Pruner
	retention time.Duration
	logger    *logger.Logger
}

// NewMaintenanceJob creates a new history maintenance job
func NewMaintenanceJob(pruner Pruner, retention time.Duration, log *logger.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		pruner:    pruner,
		retention: retention,
		logger:    log,
	}
}

// Name returns the job name
func (j *MaintenanceJob) Name() string {
	return "history_maintenance"
}

// Schedule runs nightly at 03:00
func (j *MaintenanceJob) Schedule() string {
	return "0 0 3 * * *"
}

// Run deletes analyses older than the retention window
func (j *MaintenanceJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.retention)

	deleted, err := j.pruner.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff,
	}).Info("History maintenance completed")

	return nil
}
