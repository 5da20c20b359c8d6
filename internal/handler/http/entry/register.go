package entry

import (
	"log/slog"
	"net/http"

	"clinton-lexicon/internal/common/pagination"
	"clinton-lexicon/internal/handler/http/auth"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// Register registers all entry-related HTTP handlers with the given mux.
// Admin routes go through the auth middleware; the browse routes are the
// public surface and stay open.
func Register(mux *http.ServeMux, svc entryUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET    /entries", auth.Authz(ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	}))
	mux.Handle("GET    /entries/search", auth.Authz(SearchHandler{svc}))
	mux.Handle("GET    /entries/", auth.Authz(GetHandler{svc}))

	mux.Handle("POST   /entries", auth.Authz(CreateHandler{svc}))
	mux.Handle("PUT    /entries/", auth.Authz(UpdateHandler{svc}))
	mux.Handle("DELETE /entries/", auth.Authz(DeleteHandler{svc}))

	mux.Handle("GET /browse", LettersHandler{svc})
	mux.Handle("GET /browse/", BrowseLetterHandler{svc})
}
