// The worker consumes background jobs from the queue. Today that is backup
// pruning; it runs alongside the API when the queue backend is redis, or is
// unnecessary with the in-memory queue inside a single process.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edudesk/edudesk/internal/bootstrap"
	"github.com/edudesk/edudesk/internal/pkg/logger"
	"github.com/edudesk/edudesk/internal/queue"
)

func main() {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := bootstrap.BuildDependencies(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build dependencies")
		os.Exit(1)
	}
	defer deps.Store.Close()

	jobs, err := deps.Jobs.Consume(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start consuming jobs")
		os.Exit(1)
	}

	logger.Info().Str("backend", cfg.Queue.Backend).Msg("worker started")
	for job := range jobs {
		handle(ctx, deps, job)
	}
	logger.Info().Msg("worker stopped")
}

func handle(ctx context.Context, deps *bootstrap.Dependencies, job queue.Job) {
	switch job.Type {
	case queue.JobBackupPrune:
		removed, err := deps.BackupService.Prune(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("backup prune failed")
			return
		}
		if removed > 0 {
			logger.Info().Int("removed", removed).Msg("old backups pruned")
		}
	default:
		logger.Warn().Str("type", job.Type).Msg("skipping unknown job type")
	}
}
