// Package entry provides HTTP handlers for entry endpoints: the admin CRUD
// and search API plus the public alphabet browse pages.
package entry

import (
	"errors"
	"net/http"
	"time"

	"clinton-lexicon/internal/domain/entity"
	entryUC "clinton-lexicon/internal/usecase/entry"
)

// DTO represents the JSON structure for entry data transfer.
type DTO struct {
	ID           int64      `json:"id" example:"1"`
	Type         string     `json:"type" example:"word"`
	Text         string     `json:"text" example:"triangulation"`
	Definition   string     `json:"definition,omitempty"`
	LookupStatus string     `json:"lookup_status,omitempty"`
	LookupError  string     `json:"lookup_error,omitempty"`
	LastLookupAt *time.Time `json:"last_lookup_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toDTO(e *entity.Entry) DTO {
	return DTO{
		ID:           e.ID,
		Type:         string(e.Type),
		Text:         e.Text,
		Definition:   e.Definition,
		LookupStatus: string(e.LookupStatus),
		LookupError:  e.LookupError,
		LastLookupAt: e.LastLookupAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toDTOs(entries []*entity.Entry) []DTO {
	out := make([]DTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toDTO(e))
	}
	return out
}

// publicDTO is the trimmed shape served on the browse pages: no lookup
// bookkeeping, just the entry itself.
type publicDTO struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	Text       string `json:"text"`
	Definition string `json:"definition,omitempty"`
}

func toPublicDTOs(entries []*entity.Entry) []publicDTO {
	out := make([]publicDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, publicDTO{
			ID:         e.ID,
			Type:       string(e.Type),
			Text:       e.Text,
			Definition: e.Definition,
		})
	}
	return out
}

// statusForError maps use case errors to HTTP status codes.
func statusForError(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.Is(err, entryUC.ErrInvalidEntryID), errors.Is(err, entryUC.ErrInvalidLetter), errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, entryUC.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, entryUC.ErrDuplicateEntry):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
