package entry

import (
	"errors"
	"net/http"
	"strings"

	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// SearchHandler serves keyword search over entry text and definitions.
type SearchHandler struct{ Svc entryUC.Service }

func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	kw := strings.TrimSpace(r.URL.Query().Get("q"))
	if kw == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("query parameter q is required"))
		return
	}

	entries, err := h.Svc.Search(r.Context(), kw)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(entries))
}
