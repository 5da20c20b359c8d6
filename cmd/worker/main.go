package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"clinton-lexicon/internal/handler/http/respond"
	pgRepo "clinton-lexicon/internal/infra/adapter/persistence/postgres"
	"clinton-lexicon/internal/infra/db"
	"clinton-lexicon/internal/infra/dictionary"
	workerPkg "clinton-lexicon/internal/infra/worker"
	"clinton-lexicon/internal/observability/logging"
	"clinton-lexicon/internal/observability/metrics"
	"clinton-lexicon/internal/repository"
	definitionUC "clinton-lexicon/internal/usecase/definition"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("job_timeout", workerConfig.JobTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	updater, entryRepo := setupUpdater(logger, database)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := healthServer.Start(groupCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		return runMetricsServer(groupCtx, logger)
	})

	group.Go(func() error {
		return runScheduler(groupCtx, logger, updater, entryRepo, workerConfig, workerMetrics, healthServer)
	})

	if err := group.Wait(); err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

// initDatabase opens the database and waits until the API's migrations have
// created the schema. The worker never migrates itself.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM entries LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

// setupUpdater wires the definition update service with its repository and
// dictionary provider.
func setupUpdater(logger *slog.Logger, database *sql.DB) (*definitionUC.Service, repository.EntryRepository) {
	entryRepo := pgRepo.NewEntryRepo(database)

	provider, err := dictionary.NewProvider(dictionary.LoadProviderConfig(), nil)
	if err != nil {
		logger.Error("failed to configure dictionary provider", slog.Any("error", err))
		os.Exit(1)
	}

	cfg := definitionUC.LoadConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid definition updater configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("definition updater configured",
		slog.String("provider", provider.Name()),
		slog.Int("max_requests", cfg.MaxRequests),
		slog.Duration("request_delay", cfg.RequestDelay),
		slog.Int("not_found_retry_days", cfg.NotFoundRetryDays),
		slog.Int("error_retry_days", cfg.ErrorRetryDays))

	return definitionUC.NewService(entryRepo, provider, cfg), entryRepo
}

// runScheduler runs the cron scheduler until the context is cancelled.
func runScheduler(
	ctx context.Context,
	logger *slog.Logger,
	updater *definitionUC.Service,
	entryRepo repository.EntryRepository,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runUpdateJob(logger, updater, entryRepo, cfg, workerMetrics)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()

	healthServer.SetReady(false)
	// Let an in-flight job finish before exiting.
	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}

// runUpdateJob executes a single definition update run with timeout,
// metrics, and error handling.
func runUpdateJob(
	logger *slog.Logger,
	updater *definitionUC.Service,
	entryRepo repository.EntryRepository,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
) {
	start := time.Now()
	logger.Info("definition update started")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.JobTimeout)
	defer cancel()

	result, err := updater.UpdateAll(ctx)
	workerMetrics.RecordJobDuration(time.Since(start).Seconds())

	if err != nil {
		if errors.Is(err, definitionUC.ErrRunInProgress) {
			logger.Warn("definition update skipped, another run is in progress")
			workerMetrics.RecordJobRun("skipped")
			return
		}
		logger.Error("definition update failed", slog.Any("error", respond.SanitizeError(err)))
		workerMetrics.RecordJobRun("failure")
		return
	}

	workerMetrics.RecordJobRun("success")
	workerMetrics.RecordEntriesProcessed(result.Processed)
	workerMetrics.RecordLastSuccess()
	refreshEntryGauges(ctx, logger, entryRepo)

	logger.Info("definition update completed",
		slog.Int("processed", result.Processed),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("not_found", result.NotFound),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", result.Duration))
}

// refreshEntryGauges updates the entry business gauges after a run.
func refreshEntryGauges(ctx context.Context, logger *slog.Logger, repo repository.EntryRepository) {
	total, err := repo.CountEntries(ctx)
	if err != nil {
		logger.Warn("failed to count entries for gauges", slog.Any("error", err))
		return
	}
	missing, err := repo.CountMissingDefinition(ctx)
	if err != nil {
		logger.Warn("failed to count undefined entries for gauges", slog.Any("error", err))
		return
	}
	metrics.UpdateEntriesTotal(total)
	metrics.UpdateEntriesMissingDefinition(missing)
}
