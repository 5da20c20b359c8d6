package entry

import (
	"encoding/json"
	"net/http"

	"clinton-lexicon/internal/domain/entity"
	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// CreateHandler creates a new entry.
type CreateHandler struct{ Svc entryUC.Service }

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type       string `json:"type"`
		Text       string `json:"text"`
		Definition string `json:"definition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	e, err := h.Svc.Create(r.Context(), entryUC.CreateInput{
		Type:       entity.EntryType(req.Type),
		Text:       req.Text,
		Definition: req.Definition,
	})
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusCreated, toDTO(e))
}
