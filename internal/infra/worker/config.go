// Package worker provides the scheduling, health, and metrics infrastructure
// for the definition updater batch process.
package worker

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"clinton-lexicon/internal/pkg/config"
)

// WorkerConfig controls the cron schedule, timezone, and operational
// parameters for the worker service.
//
// Configuration sources, in increasing precedence:
//   - Default values (DefaultConfig)
//   - Optional YAML file (WORKER_CONFIG_FILE)
//   - Environment variables
//
// All fields have defaults and validation rules so the worker can start
// safely even with invalid or missing configuration.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the definition update job.
	// Format: "minute hour day month weekday".
	// Default: "30 5 * * 1" (Mondays at 5:30).
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	// Default: "America/New_York".
	Timezone string

	// JobTimeout is the maximum duration for a single update run. A run
	// that exceeds it is cancelled; already-recorded lookup outcomes are
	// kept. Default: 10 minutes.
	JobTimeout time.Duration

	// HealthPort is the port for the worker health check HTTP server.
	// Range: 1024-65535. Default: 9091.
	HealthPort int
}

// fileConfig is the YAML shape of an optional worker configuration file.
// File values replace defaults; environment variables still win.
type fileConfig struct {
	Worker struct {
		Schedule   string `yaml:"schedule"`
		Timezone   string `yaml:"timezone"`
		JobTimeout string `yaml:"job_timeout"`
		HealthPort int    `yaml:"health_port"`
	} `yaml:"worker"`
}

// DefaultConfig returns a WorkerConfig with production-ready defaults:
// a weekly update run early Monday morning, a 10-minute timeout to stop
// stuck runs, and the conventional exporter port for health checks.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "30 5 * * 1",
		Timezone:     "America/New_York",
		JobTimeout:   10 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks every field and returns an aggregated error when any
// value is out of range.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.JobTimeout); err != nil {
		errs = append(errs, fmt.Errorf("job timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration with validation and
// automatic fallback to defaults on failure.
//
// The load is fail-open: an invalid value keeps the default, logs a
// warning, and increments the fallback metrics. The returned config is
// always valid and the error is always nil.
//
// Environment variables:
//   - WORKER_CONFIG_FILE: Optional YAML file path read before env vars
//   - CRON_SCHEDULE: Cron expression (default "30 5 * * 1")
//   - WORKER_TIMEZONE: IANA timezone name (default "America/New_York")
//   - JOB_TIMEOUT: Duration string, 1m-2h (default "10m")
//   - WORKER_HEALTH_PORT: Integer 1024-65535 (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	if path := os.Getenv("WORKER_CONFIG_FILE"); path != "" {
		if err := applyConfigFile(&cfg, path); err != nil {
			fallbackApplied = true
			metrics.RecordValidationError("config_file")
			metrics.RecordFallback("config_file", "default")
			logger.Warn("Configuration fallback applied",
				slog.String("field", "ConfigFile"),
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}

	loadField := func(field string, result config.ConfigLoadResult) config.ConfigLoadResult {
		if result.FallbackApplied {
			fallbackApplied = true
			metrics.RecordValidationError(field)
			metrics.RecordFallback(field, "default")
			for _, warning := range result.Warnings {
				logger.Warn("Configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
		return result
	}

	result := loadField("cron_schedule",
		config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule))
	cfg.CronSchedule = result.Value.(string)

	result = loadField("timezone",
		config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone))
	cfg.Timezone = result.Value.(string)

	result = loadField("job_timeout",
		config.LoadEnvDuration("JOB_TIMEOUT", cfg.JobTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, 1*time.Minute, 2*time.Hour)
		}))
	cfg.JobTimeout = result.Value.(time.Duration)

	result = loadField("health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		}))
	cfg.HealthPort = result.Value.(int)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}

// applyConfigFile merges a YAML configuration file over cfg. The merged
// result must validate as a whole, otherwise cfg is left unchanged.
func applyConfigFile(cfg *WorkerConfig, path string) error {
	// #nosec G304 -- path comes from operator-controlled environment, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	merged := *cfg
	if fc.Worker.Schedule != "" {
		merged.CronSchedule = fc.Worker.Schedule
	}
	if fc.Worker.Timezone != "" {
		merged.Timezone = fc.Worker.Timezone
	}
	if fc.Worker.JobTimeout != "" {
		timeout, err := time.ParseDuration(fc.Worker.JobTimeout)
		if err != nil {
			return fmt.Errorf("invalid job_timeout: %w", err)
		}
		merged.JobTimeout = timeout
	}
	if fc.Worker.HealthPort != 0 {
		merged.HealthPort = fc.Worker.HealthPort
	}

	if err := merged.Validate(); err != nil {
		return fmt.Errorf("config file rejected: %w", err)
	}

	*cfg = merged
	return nil
}
