package entry

import (
	"encoding/json"
	"net/http"

	"clinton-lexicon/internal/domain/entity"
	"clinton-lexicon/internal/handler/http/pathutil"
	"clinton-lexicon/internal/handler/http/respond"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// UpdateHandler updates an existing entry. Absent fields are left unchanged.
type UpdateHandler struct{ Svc entryUC.Service }

func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractID(r.URL.Path, "/entries/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Type       *string `json:"type"`
		Text       *string `json:"text"`
		Definition *string `json:"definition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	in := entryUC.UpdateInput{
		ID:         id,
		Text:       req.Text,
		Definition: req.Definition,
	}
	if req.Type != nil {
		typ := entity.EntryType(*req.Type)
		in.Type = &typ
	}

	e, err := h.Svc.Update(r.Context(), in)
	if err != nil {
		respond.SafeError(w, statusForError(err), err)
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(e))
}
