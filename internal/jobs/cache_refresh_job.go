package jobs

import (
	"context"
	"log/slog"

	"ordersync/internal/core/application/syncstore"
	"ordersync/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// refreshSchedule fires often enough that the cache never sits stale for
// long after the TTL expires, while the store's own staleness rule keeps
// fresh snapshots from producing redundant fetches.
const refreshSchedule = "*/30 * * * * *"

// CacheRefreshJob periodically reconciles the cached order set with the
// remote authority. The fetch is non-forced, so while push notifications
// keep the cache fresh this job is a no-op; it only matters as a fallback
// when the push channel is down.
type CacheRefreshJob struct {
	handler commands.RefreshOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewCacheRefreshJob creates the periodic cache refresh job.
func NewCacheRefreshJob(handler commands.RefreshOrdersCommandHandler, logger *slog.Logger) *CacheRefreshJob {
	return &CacheRefreshJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "cache_refresh_job"),
	}
}

// Start schedules the refresh.
func (j *CacheRefreshJob) Start() error {
	_, err := j.cron.AddFunc(refreshSchedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cache refresh job started", "schedule", refreshSchedule)
	return nil
}

// Stop stops the refresh job.
func (j *CacheRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Cache refresh job stopped")
}

func (j *CacheRefreshJob) runOnce() {
	ctx := context.Background()
	cmd := commands.NewRefreshOrdersCommand(syncstore.ScopeAll, false)

	if err := j.handler.Handle(ctx, cmd); err != nil {
		// Transient fetch failures are expected while offline; the store
		// keeps serving the cached snapshot either way.
		j.logger.WarnContext(ctx, "Cache refresh failed", "error", err)
	}
}
