package repository

import (
	"context"
	"errors"
	"time"

	"clinton-lexicon/internal/domain/entity"
)

// ErrDuplicate is returned by Create and Update when a storage uniqueness
// constraint rejects the entry's type and text.
var ErrDuplicate = errors.New("duplicate entry")

// LetterCount is one bucket of the public alphabet index: a first letter
// and the number of word entries starting with it.
type LetterCount struct {
	Letter string
	Count  int64
}

// LookupCandidateFilter selects entries eligible for a definition-update run.
// An entry qualifies when it has no definition and either has never been
// attempted, or was last marked not_found before NotFoundBefore, or was
// last marked error before ErrorBefore.
type LookupCandidateFilter struct {
	NotFoundBefore time.Time
	ErrorBefore    time.Time
	Limit          int
}

type EntryRepository interface {
	List(ctx context.Context) ([]*entity.Entry, error)
	// ListPaginated retrieves entries ordered by text, using LIMIT/OFFSET.
	ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Entry, error)
	// CountEntries returns the total number of entries, used for pagination metadata.
	CountEntries(ctx context.Context) (int64, error)
	// CountMissingDefinition returns the number of word entries still
	// without a definition, used for the business gauges.
	CountMissingDefinition(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Entry, error)
	// Search finds entries whose text or definition matches the keyword (case-insensitive).
	Search(ctx context.Context, keyword string) ([]*entity.Entry, error)
	// Letters returns the alphabet index for word entries.
	Letters(ctx context.Context) ([]LetterCount, error)
	// ListByLetter returns word entries whose text starts with the given letter.
	ListByLetter(ctx context.Context, letter string) ([]*entity.Entry, error)
	Create(ctx context.Context, e *entity.Entry) error
	Update(ctx context.Context, e *entity.Entry) error
	Delete(ctx context.Context, id int64) error
	// ExistsByText checks for a duplicate entry with the same type and text
	// (case-insensitive). A non-zero excludeID ignores that entry, so an
	// update never collides with the entry being updated.
	ExistsByText(ctx context.Context, typ entity.EntryType, text string, excludeID int64) (bool, error)

	// ListLookupCandidates returns word entries eligible for a definition
	// lookup under the given retry-window filter, oldest attempts first.
	ListLookupCandidates(ctx context.Context, f LookupCandidateFilter) ([]*entity.Entry, error)
	// SetDefinition stores a fetched definition and marks the lookup successful.
	SetDefinition(ctx context.Context, id int64, definition string, at time.Time) error
	// MarkLookup records a not_found or error outcome with its timestamp.
	// The message is only stored for error outcomes.
	MarkLookup(ctx context.Context, id int64, status entity.LookupStatus, message string, at time.Time) error
}
