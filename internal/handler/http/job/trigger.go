// Package job provides the HTTP trigger for the definition update job.
package job

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"clinton-lexicon/internal/handler/http/requestid"
	"clinton-lexicon/internal/handler/http/respond"
	"clinton-lexicon/internal/usecase/definition"
)

// Updater runs one definition update pass.
type Updater interface {
	UpdateAll(ctx context.Context) (*definition.UpdateResult, error)
}

// TriggerHandler starts a definition update run on demand.
// Returns the run summary, or 409 if a run is already in flight in this
// process.
type TriggerHandler struct {
	Svc    Updater
	Logger *slog.Logger
}

func (h TriggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("request_id", requestid.FromContext(r.Context())))

	logger.Info("definition update triggered via API")

	// The run outlives the request if the client disconnects; it writes
	// per-entry state and is safe to let finish.
	result, err := h.Svc.UpdateAll(context.WithoutCancel(r.Context()))
	if err != nil {
		if errors.Is(err, definition.ErrRunInProgress) {
			respond.JSON(w, http.StatusConflict, map[string]string{
				"error": "a definition update is already running",
			})
			return
		}
		logger.Error("definition update failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// Register registers the job trigger route. The auth middleware guards it
// at the router level.
func Register(mux *http.ServeMux, handler TriggerHandler, wrap func(http.Handler) http.Handler) {
	var h http.Handler = handler
	if wrap != nil {
		h = wrap(h)
	}
	mux.Handle("POST /jobs/definitions", h)
}
