package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"clinton-lexicon/internal/common/pagination"
	pgRepo "clinton-lexicon/internal/infra/adapter/persistence/postgres"
	"clinton-lexicon/internal/infra/db"
	"clinton-lexicon/internal/infra/dictionary"
	"clinton-lexicon/internal/observability/logging"
	"clinton-lexicon/internal/observability/metrics"
	"clinton-lexicon/internal/observability/tracing"
	"clinton-lexicon/internal/repository"
	"clinton-lexicon/pkg/config"

	definitionUC "clinton-lexicon/internal/usecase/definition"
	entryUC "clinton-lexicon/internal/usecase/entry"

	hhttp "clinton-lexicon/internal/handler/http"
	hauth "clinton-lexicon/internal/handler/http/auth"
	hentry "clinton-lexicon/internal/handler/http/entry"
	hjob "clinton-lexicon/internal/handler/http/job"
	"clinton-lexicon/internal/handler/http/requestid"
	authservice "clinton-lexicon/internal/service/auth"
)

func main() {
	logger := initLogger()
	validateStartupConfig(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	handler, entryRepo := setupServer(logger, database, version)

	runServer(logger, handler, entryRepo, version)
}

// initLogger initializes the process-wide structured logger.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateStartupConfig refuses to start with missing or weak credentials.
func validateStartupConfig(logger *slog.Logger) {
	if err := hauth.ValidateAdminCredentials(); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := hauth.ValidateJWTSecret(); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	hauth.ValidateViewerCredentials(logger)
}

// initDatabase opens the database connection and runs migrations.
// Set DB_AUTO_MIGRATE=false when migrations are applied out of band.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if !config.GetEnvBool("DB_AUTO_MIGRATE", true) {
		logger.Info("auto-migration disabled, skipping")
		return database
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer wires services and handlers and returns the root HTTP handler.
func setupServer(logger *slog.Logger, database *sql.DB, version string) (http.Handler, repository.EntryRepository) {
	entryRepo := pgRepo.NewEntryRepo(database)
	entrySvc := entryUC.Service{Repo: entryRepo}

	provider, err := dictionary.NewProvider(dictionary.LoadProviderConfig(), nil)
	if err != nil {
		logger.Error("failed to configure dictionary provider", slog.Any("error", err))
		os.Exit(1)
	}

	updaterCfg := definitionUC.LoadConfigFromEnv()
	if err := updaterCfg.Validate(); err != nil {
		logger.Error("invalid definition updater configuration", slog.Any("error", err))
		os.Exit(1)
	}
	updaterSvc := definitionUC.NewService(entryRepo, provider, updaterCfg)
	logger.Info("definition updater configured",
		slog.String("provider", provider.Name()),
		slog.Int("max_requests", updaterCfg.MaxRequests),
		slog.Duration("request_delay", updaterCfg.RequestDelay))

	authProvider := hauth.NewBasicAuthProvider(hauth.MinPasswordLength())
	authService := authservice.NewAuthService(authProvider)

	// Token issuance is the brute-force target, so it gets its own limit.
	authRateLimiter := hhttp.NewRateLimiter(5, 1*time.Minute)

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()
	mux.Handle("POST /auth/token", authRateLimiter.Limit(hauth.TokenHandler(authService)))

	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Version: version})
	mux.Handle("GET /ready", hhttp.ReadinessHandler(database))
	mux.Handle("GET /live", hhttp.LivenessHandler())
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hentry.Register(mux, entrySvc, paginationCfg, logger)
	hjob.Register(mux, hjob.TriggerHandler{Svc: updaterSvc, Logger: logger}, hauth.Authz)

	return applyMiddleware(logger, mux), entryRepo
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Body Limit → Metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	chain := handler

	// Innermost to outermost.
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// refreshEntryGauges keeps the entry business gauges current.
func refreshEntryGauges(ctx context.Context, logger *slog.Logger, repo repository.EntryRepository) {
	refresh := func() {
		opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		total, err := repo.CountEntries(opCtx)
		if err != nil {
			logger.Warn("failed to count entries for gauges", slog.Any("error", err))
			return
		}
		missing, err := repo.CountMissingDefinition(opCtx)
		if err != nil {
			logger.Warn("failed to count undefined entries for gauges", slog.Any("error", err))
			return
		}
		metrics.UpdateEntriesTotal(total)
		metrics.UpdateEntriesMissingDefinition(missing)
	}

	refresh()
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, entryRepo repository.EntryRepository, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go refreshEntryGauges(ctx, logger, entryRepo)

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", ":8080"),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
