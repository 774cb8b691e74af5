package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// InventorySyncJob reconciles the inventory ledger with the legacy product
// quantity column on a fixed schedule. Legacy catalog CRUD writes the
// product column directly, the job makes the ledger converge to it and
// creates missing ledger rows.
type InventorySyncJob struct {
	handler  commands.SyncInventoryCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewInventorySyncJob creates a job that runs the whole-catalog sync on
// the given cron schedule.
func NewInventorySyncJob(
	handler commands.SyncInventoryCommandHandler,
	schedule string,
	logger *slog.Logger,
) *InventorySyncJob {
	return &InventorySyncJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "inventory_sync_job"),
	}
}

// Start begins the periodic inventory sync.
func (j *InventorySyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSyncAllInventoryCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Inventory sync job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Inventory sync job started", "schedule", j.schedule)
	return nil
}

// Stop stops the inventory sync job.
func (j *InventorySyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Inventory sync job stopped")
}
