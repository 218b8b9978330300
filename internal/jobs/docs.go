// Package jobs provides scheduled background tasks for the synchronization
// engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. CacheRefreshJob - Runs every 30 seconds and asks the store to reconcile
// its cached order set with the remote authority. The fetch is non-forced:
// the store's staleness rule decides whether the wire is actually hit, so
// the job only produces traffic when the cached snapshot has outlived its
// TTL (typically because the push channel is down).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(refreshOrdersHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Refresh failures are logged at warn level and otherwise ignored: the store
// keeps serving the last reconciled snapshot, and the next tick retries.
package jobs
