// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance operations.
//
// # Available Jobs
//
// 1. InventorySyncJob - Periodically reconciles the inventory ledger with
// the legacy product quantity column across the whole catalog, creating
// missing ledger rows
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(syncInventoryHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sync schedule is configured through INVENTORY_SYNC_SCHEDULE using the
// standard five-field cron format, for example "*/5 * * * *" for every five
// minutes.
//
// # Error Handling
//
// The sync job processes each product in its own transaction and logs
// failures without aborting the remaining products.
package jobs
