package entry

import (
	"net/http"

	"clinton-lexicon/internal/handler/http/pathutil"
	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// GetHandler serves a single entry by ID.
type GetHandler struct{ Svc entryUC.Service }

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/entries/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	e, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(e))
}
