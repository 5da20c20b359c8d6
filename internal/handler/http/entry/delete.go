package entry

import (
	"net/http"

	"clinton-lexicon/internal/handler/http/pathutil"
	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// DeleteHandler removes an entry by ID.
type DeleteHandler struct{ Svc entryUC.Service }

func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/entries/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
