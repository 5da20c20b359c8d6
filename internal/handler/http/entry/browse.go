package entry

import (
	"net/http"
	"strings"

	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// letterDTO is one bucket of the public alphabet index.
type letterDTO struct {
	Letter string `json:"letter"`
	Count  int64  `json:"count"`
}

// LettersHandler serves the public alphabet index: every first letter with
// at least one word entry, with counts.
type LettersHandler struct{ Svc entryUC.Service }

func (h LettersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	letters, err := h.Svc.Letters(r.Context())
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]letterDTO, 0, len(letters))
	for _, l := range letters {
		out = append(out, letterDTO{Letter: l.Letter, Count: l.Count})
	}
	respond.JSON(w, http.StatusOK, map[string]any{"letters": out})
}

// BrowseLetterHandler serves the public word list for one letter.
type BrowseLetterHandler struct{ Svc entryUC.Service }

func (h BrowseLetterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	letter := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/browse/"), "/")

	entries, err := h.Svc.ListByLetter(r.Context(), letter)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]any{
		"letter":  strings.ToLower(letter),
		"entries": toPublicDTOs(entries),
	})
}
