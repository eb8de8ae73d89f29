package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// LocationPruningJob bounds driver location history out of band. Runs every
// minute: deletes per-driver history beyond the retention count and
// deactivates current records of drivers silent past the staleness window.
type LocationPruningJob struct {
	handler       commands.PruneLocationHistoryCommandHandler
	cron          *cron.Cron
	logger        *slog.Logger
	keepPerDriver int
	staleAfter    time.Duration
}

// NewLocationPruningJob creates a pruning job with the given retention
// settings.
func NewLocationPruningJob(
	handler commands.PruneLocationHistoryCommandHandler,
	logger *slog.Logger,
	keepPerDriver int,
	staleAfter time.Duration,
) *LocationPruningJob {
	return &LocationPruningJob{
		handler:       handler,
		cron:          cron.New(),
		logger:        logger.With("component", "location_pruning_job"),
		keepPerDriver: keepPerDriver,
		staleAfter:    staleAfter,
	}
}

// Start begins the pruning job to run every minute.
func (j *LocationPruningJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewPruneLocationHistoryCommand(j.keepPerDriver, j.staleAfter)
		if err != nil {
			j.logger.ErrorContext(ctx, "Invalid pruning settings", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Location pruning job failed", "error", err)
			return
		}

		metrics.LocationRecordsPrunedTotal.Add(float64(result.PrunedRecords))
		if result.PrunedRecords > 0 || result.DeactivatedRecords > 0 {
			j.logger.InfoContext(ctx, "Location history pruned",
				"pruned", result.PrunedRecords,
				"deactivated", result.DeactivatedRecords)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Location pruning job started (running every minute)")
	return nil
}

// Stop stops the pruning job.
func (j *LocationPruningJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Location pruning job stopped")
}
