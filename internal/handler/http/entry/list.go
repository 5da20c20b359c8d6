package entry

import (
	"log/slog"
	"net/http"

	"clinton-lexicon/internal/common/pagination"
	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// ListHandler serves the paginated admin entry list.
type ListHandler struct {
	Svc           entryUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Svc.ListPaginated(r.Context(), params)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("failed to list entries", slog.Any("error", err))
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(result.Data), result.Pagination))
}
