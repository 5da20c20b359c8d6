// Package definition implements the definition update job: it finds word
// entries without a definition, looks each one up against a dictionary
// provider, and records the outcome so future runs respect retry windows.
package definition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"clinton-lexicon/internal/domain/entity"
	"clinton-lexicon/internal/infra/dictionary"
	"clinton-lexicon/internal/observability/metrics"
	"clinton-lexicon/internal/observability/tracing"
	"clinton-lexicon/internal/repository"
)

// Lookuper is the dictionary lookup dependency of the updater.
// Implementations return dictionary.ErrDefinitionNotFound when the word
// has no entry, and any other error for transport or server failures.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (string, error)
	Name() string
}

// Service runs definition updates over the entry repository.
type Service struct {
	EntryRepo repository.EntryRepository
	Provider  Lookuper

	cfg     Config
	limiter *rate.Limiter
	running atomic.Bool

	// now is swappable in tests to pin the retry-window cutoffs.
	now func() time.Time
}

// NewService creates a definition update service.
// The rate limiter enforces cfg.RequestDelay between provider calls.
func NewService(entryRepo repository.EntryRepository, provider Lookuper, cfg Config) *Service {
	limit := rate.Inf
	if cfg.RequestDelay > 0 {
		limit = rate.Every(cfg.RequestDelay)
	}
	return &Service{
		EntryRepo: entryRepo,
		Provider:  provider,
		cfg:       cfg,
		limiter:   rate.NewLimiter(limit, 1),
		now:       time.Now,
	}
}

// UpdateResult summarizes a single definition update run.
type UpdateResult struct {
	// Processed is the number of entries a provider call was attempted for.
	Processed int `json:"processed"`
	// Succeeded is the number of entries whose definition was stored.
	Succeeded int `json:"succeeded"`
	// NotFound is the number of entries the provider had no definition for.
	NotFound int `json:"not_found"`
	// Failed counts provider errors and persistence failures.
	Failed int `json:"failed"`
	// Errors holds one message per failed entry.
	Errors []string `json:"errors,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// UpdateAll runs one definition update pass.
//
// It selects word entries without a definition that are outside their retry
// windows, then attempts one provider lookup per entry, never exceeding the
// configured request cap and waiting the configured delay between calls.
// Outcomes are persisted per entry: a fetched definition marks the entry
// successful, a provider miss marks it not_found, anything else marks it
// error with the message. Per-entry failures are recorded and the run
// continues; only candidate query failures, context cancellation, and a run
// already in flight abort it.
func (s *Service) UpdateAll(ctx context.Context) (*UpdateResult, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	ctx, span := tracing.GetTracer().Start(ctx, "definition.update")
	defer span.End()
	span.SetAttributes(attribute.String("dictionary.provider", s.Provider.Name()))

	logger := slog.Default()
	start := s.now()
	result := &UpdateResult{StartedAt: start}

	candidates, err := s.EntryRepo.ListLookupCandidates(ctx, repository.LookupCandidateFilter{
		NotFoundBefore: start.AddDate(0, 0, -s.cfg.NotFoundRetryDays),
		ErrorBefore:    start.AddDate(0, 0, -s.cfg.ErrorRetryDays),
		Limit:          s.cfg.MaxRequests,
	})
	if err != nil {
		err = fmt.Errorf("list lookup candidates: %w", err)
		span.RecordError(err)
		return nil, err
	}

	logger.Info("definition update started",
		slog.Int("candidates", len(candidates)),
		slog.Int("max_requests", s.cfg.MaxRequests),
		slog.String("provider", s.Provider.Name()),
	)

	for _, entry := range candidates {
		// The repository already limits the candidate set, this guards
		// against repositories that ignore the filter limit.
		if result.Processed >= s.cfg.MaxRequests {
			break
		}

		// Likewise the filter only selects word entries without a
		// definition; anything else must not spend a request slot.
		if !entry.NeedsDefinition() {
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("wait for request slot: %w", err)
		}

		result.Processed++
		if err := s.processEntry(ctx, entry, result); err != nil {
			result.Duration = time.Since(start)
			return result, err
		}
	}

	result.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("definition.processed", result.Processed),
		attribute.Int("definition.succeeded", result.Succeeded),
		attribute.Int("definition.not_found", result.NotFound),
		attribute.Int("definition.failed", result.Failed),
	)
	logger.Info("definition update completed",
		slog.Int("processed", result.Processed),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("not_found", result.NotFound),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", result.Duration),
	)

	return result, nil
}

// processEntry performs one provider lookup and persists its outcome.
// Returns an error only for context cancellation; every other failure is
// recorded on the result and the run continues.
func (s *Service) processEntry(ctx context.Context, entry *entity.Entry, result *UpdateResult) error {
	logger := slog.Default()
	attemptedAt := s.now()

	lookupStart := time.Now()
	def, err := s.Provider.Lookup(ctx, entry.Text)
	metrics.RecordLookupDuration(s.Provider.Name(), time.Since(lookupStart))

	switch {
	case err == nil:
		metrics.RecordLookup(s.Provider.Name(), metrics.OutcomeSuccess)
		if err := s.EntryRepo.SetDefinition(ctx, entry.ID, def, attemptedAt); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%s): store definition: %v", entry.ID, entry.Text, err))
			logger.Warn("failed to store definition",
				slog.Int64("entry_id", entry.ID),
				slog.String("text", entry.Text),
				slog.Any("error", err))
			return nil
		}
		result.Succeeded++
		logger.Debug("definition stored",
			slog.Int64("entry_id", entry.ID),
			slog.String("text", entry.Text))

	case errors.Is(err, dictionary.ErrDefinitionNotFound):
		metrics.RecordLookup(s.Provider.Name(), metrics.OutcomeNotFound)
		result.NotFound++
		if err := s.EntryRepo.MarkLookup(ctx, entry.ID, entity.LookupNotFound, "", attemptedAt); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%s): mark not_found: %v", entry.ID, entry.Text, err))
		}
		logger.Info("no definition found",
			slog.Int64("entry_id", entry.ID),
			slog.String("text", entry.Text))

	default:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		metrics.RecordLookup(s.Provider.Name(), metrics.OutcomeError)
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%s): %v", entry.ID, entry.Text, err))
		if err := s.EntryRepo.MarkLookup(ctx, entry.ID, entity.LookupError, err.Error(), attemptedAt); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("entry %d (%s): mark error: %v", entry.ID, entry.Text, err))
		}
		logger.Warn("definition lookup failed",
			slog.Int64("entry_id", entry.ID),
			slog.String("text", entry.Text),
			slog.Any("error", err))
	}

	return nil
}
