package entry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"clinton-lexicon/internal/common/pagination"
	"clinton-lexicon/internal/domain/entity"
	"clinton-lexicon/internal/repository"
)

// CreateInput represents the input parameters for creating a new entry.
type CreateInput struct {
	Type       entity.EntryType
	Text       string
	Definition string
}

// UpdateInput represents the input parameters for updating an existing entry.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID         int64
	Type       *entity.EntryType
	Text       *string
	Definition *string
}

// Service provides entry management use cases.
// It handles business logic for entry operations and delegates persistence
// to the repository.
type Service struct {
	Repo repository.EntryRepository
}

// PaginatedResult represents the result of a paginated entry query.
type PaginatedResult struct {
	Data       []*entity.Entry
	Pagination pagination.Metadata
}

// List retrieves all entries from the repository.
func (s *Service) List(ctx context.Context) ([]*entity.Entry, error) {
	entries, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// ListPaginated retrieves entries with pagination support.
// It calculates the offset, retrieves the data and total count, and returns
// a PaginatedResult with both data and metadata.
func (s *Service) ListPaginated(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	offset := pagination.CalculateOffset(params.Page, params.Limit)

	total, err := s.Repo.CountEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	entries, err := s.Repo.ListPaginated(ctx, offset, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("list entries paginated: %w", err)
	}

	return &PaginatedResult{
		Data: entries,
		Pagination: pagination.Metadata{
			Total:      total,
			Page:       params.Page,
			Limit:      params.Limit,
			TotalPages: pagination.CalculateTotalPages(total, params.Limit),
		},
	}, nil
}

// Get retrieves a single entry by its ID.
// Returns ErrInvalidEntryID if the ID is not positive.
// Returns ErrEntryNotFound if the entry does not exist.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Entry, error) {
	if id <= 0 {
		return nil, ErrInvalidEntryID
	}

	e, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

// Search finds entries whose text or definition matches the given keyword.
func (s *Service) Search(ctx context.Context, kw string) ([]*entity.Entry, error) {
	entries, err := s.Repo.Search(ctx, kw)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	return entries, nil
}

// Letters returns the public alphabet index: each first letter of word
// entries together with the number of entries under it.
func (s *Service) Letters(ctx context.Context) ([]repository.LetterCount, error) {
	letters, err := s.Repo.Letters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}
	return letters, nil
}

// ListByLetter returns word entries whose text starts with the given letter.
// Returns ErrInvalidLetter unless the letter is a single character in a-z
// (case-insensitive).
func (s *Service) ListByLetter(ctx context.Context, letter string) ([]*entity.Entry, error) {
	if utf8.RuneCountInString(strings.TrimSpace(letter)) != 1 {
		return nil, ErrInvalidLetter
	}
	letter = entity.FirstLetter(letter)
	if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
		return nil, ErrInvalidLetter
	}

	entries, err := s.Repo.ListByLetter(ctx, letter)
	if err != nil {
		return nil, fmt.Errorf("list entries by letter: %w", err)
	}
	return entries, nil
}

// Create creates a new entry with the provided input.
// Text is trimmed before storage. Returns a ValidationError for invalid
// fields and ErrDuplicateEntry if an entry with the same type and text
// already exists.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Entry, error) {
	in.Text = strings.TrimSpace(in.Text)

	if err := entity.ValidateEntryType(in.Type); err != nil {
		return nil, err
	}
	if err := entity.ValidateEntryText(in.Text); err != nil {
		return nil, err
	}

	exists, err := s.Repo.ExistsByText(ctx, in.Type, in.Text, 0)
	if err != nil {
		return nil, fmt.Errorf("check duplicate entry: %w", err)
	}
	if exists {
		return nil, ErrDuplicateEntry
	}

	now := time.Now()
	e := &entity.Entry{
		Type:       in.Type,
		Text:       in.Text,
		Definition: in.Definition,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		// A concurrent create can slip past the check above; the unique
		// index is the authority.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return e, nil
}

// Update modifies an existing entry with the provided input.
// Only non-nil fields in the input will be updated. Changing the text
// resets lookup bookkeeping so the updater will treat the entry as new.
// Returns ErrInvalidEntryID if the ID is not positive.
// Returns ErrEntryNotFound if the entry does not exist.
// Returns ErrDuplicateEntry if the new type and text collide with another entry.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Entry, error) {
	if in.ID <= 0 {
		return nil, ErrInvalidEntryID
	}

	e, err := s.Repo.Get(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}

	identityChanged := false
	if in.Type != nil && *in.Type != e.Type {
		if err := entity.ValidateEntryType(*in.Type); err != nil {
			return nil, err
		}
		e.Type = *in.Type
		identityChanged = true
	}
	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if err := entity.ValidateEntryText(text); err != nil {
			return nil, err
		}
		if text != e.Text {
			e.Text = text
			identityChanged = true
			// A different word needs a fresh lookup.
			e.LookupStatus = entity.LookupPending
			e.LookupError = ""
			e.LastLookupAt = nil
			if in.Definition == nil {
				e.Definition = ""
			}
		}
	}
	if in.Definition != nil {
		e.Definition = *in.Definition
	}

	if identityChanged {
		// Excluding the entry's own ID lets a case-only rename through.
		exists, err := s.Repo.ExistsByText(ctx, e.Type, e.Text, e.ID)
		if err != nil {
			return nil, fmt.Errorf("check duplicate entry: %w", err)
		}
		if exists {
			return nil, ErrDuplicateEntry
		}
	}

	e.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEntry
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}
	return e, nil
}

// Delete removes an entry by its ID.
// Returns ErrInvalidEntryID if the ID is not positive.
// Returns ErrEntryNotFound if the entry does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidEntryID
	}

	e, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}
	if e == nil {
		return ErrEntryNotFound
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
