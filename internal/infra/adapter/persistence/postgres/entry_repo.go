// Package postgres implements the repository interfaces against PostgreSQL
// using raw SQL over database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"clinton-lexicon/internal/domain/entity"
	"clinton-lexicon/internal/repository"
)

const entryColumns = "id, type, text, definition, lookup_status, lookup_error, last_lookup_at, created_at, updated_at"

type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) repository.EntryRepository {
	return &EntryRepo{db: db}
}

func scanEntry(scan func(dest ...any) error) (*entity.Entry, error) {
	var e entity.Entry
	var lastLookup sql.NullTime
	if err := scan(&e.ID, &e.Type, &e.Text, &e.Definition,
		&e.LookupStatus, &e.LookupError, &lastLookup,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if lastLookup.Valid {
		t := lastLookup.Time
		e.LastLookupAt = &t
	}
	return &e, nil
}

func (repo *EntryRepo) queryEntries(ctx context.Context, op, query string, args ...any) ([]*entity.Entry, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.Entry, 0, 100)
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (repo *EntryRepo) List(ctx context.Context) ([]*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
ORDER BY lower(text)`
	return repo.queryEntries(ctx, "List", query)
}

func (repo *EntryRepo) ListPaginated(ctx context.Context, offset, limit int) ([]*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
ORDER BY lower(text)
LIMIT $1 OFFSET $2`
	return repo.queryEntries(ctx, "ListPaginated", query, limit, offset)
}

func (repo *EntryRepo) CountEntries(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM entries`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountEntries: %w", err)
	}
	return count, nil
}

func (repo *EntryRepo) CountMissingDefinition(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM entries WHERE type = 'word' AND definition = ''`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("CountMissingDefinition: %w", err)
	}
	return count, nil
}

func (repo *EntryRepo) Get(ctx context.Context, id int64) (*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
WHERE id = $1
LIMIT 1`
	e, err := scanEntry(repo.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return e, nil
}

func (repo *EntryRepo) Search(ctx context.Context, keyword string) ([]*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
WHERE text       ILIKE $1
    OR definition ILIKE $1
ORDER BY lower(text)`
	param := "%" + keyword + "%"
	return repo.queryEntries(ctx, "Search", query, param)
}

func (repo *EntryRepo) Letters(ctx context.Context) ([]repository.LetterCount, error) {
	const query = `
SELECT lower(left(text, 1)) AS letter, COUNT(*) AS count
FROM entries
WHERE type = 'word'
GROUP BY letter
ORDER BY letter`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Letters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	letters := make([]repository.LetterCount, 0, 26)
	for rows.Next() {
		var lc repository.LetterCount
		if err := rows.Scan(&lc.Letter, &lc.Count); err != nil {
			return nil, fmt.Errorf("Letters: Scan: %w", err)
		}
		letters = append(letters, lc)
	}
	return letters, rows.Err()
}

func (repo *EntryRepo) ListByLetter(ctx context.Context, letter string) ([]*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
WHERE type = 'word'
    AND lower(text) LIKE $1
ORDER BY lower(text)`
	param := strings.ToLower(letter) + "%"
	return repo.queryEntries(ctx, "ListByLetter", query, param)
}

func (repo *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	const query = `
INSERT INTO entries (type, text, definition, lookup_status, lookup_error, last_lookup_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query,
		e.Type, e.Text, e.Definition, e.LookupStatus, e.LookupError,
		nullTime(e.LastLookupAt), e.CreatedAt).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("Create: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *EntryRepo) Update(ctx context.Context, e *entity.Entry) error {
	const query = `
UPDATE entries
SET type = $1, text = $2, definition = $3, lookup_status = $4,
    lookup_error = $5, last_lookup_at = $6, updated_at = now()
WHERE id = $7`
	res, err := repo.db.ExecContext(ctx, query,
		e.Type, e.Text, e.Definition, e.LookupStatus, e.LookupError,
		nullTime(e.LastLookupAt), e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("Update: %w", repository.ErrDuplicate)
		}
		return fmt.Errorf("Update: %w", err)
	}
	return requireRowAffected("Update", res)
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (repo *EntryRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM entries WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return requireRowAffected("Delete", res)
}

func (repo *EntryRepo) ExistsByText(ctx context.Context, typ entity.EntryType, text string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM entries WHERE type = $1 AND lower(text) = lower($2) AND id <> $3)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, typ, text, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByText: %w", err)
	}
	return exists, nil
}

func (repo *EntryRepo) ListLookupCandidates(ctx context.Context, f repository.LookupCandidateFilter) ([]*entity.Entry, error) {
	const query = `
SELECT ` + entryColumns + `
FROM entries
WHERE type = 'word'
    AND definition = ''
    AND (
        lookup_status = ''
        OR (lookup_status = 'not_found' AND last_lookup_at < $1)
        OR (lookup_status = 'error'     AND last_lookup_at < $2)
    )
ORDER BY last_lookup_at ASC NULLS FIRST, id ASC
LIMIT $3`
	return repo.queryEntries(ctx, "ListLookupCandidates", query,
		f.NotFoundBefore, f.ErrorBefore, f.Limit)
}

func (repo *EntryRepo) SetDefinition(ctx context.Context, id int64, definition string, at time.Time) error {
	const query = `
UPDATE entries
SET definition = $1, lookup_status = 'success', lookup_error = '',
    last_lookup_at = $2, updated_at = now()
WHERE id = $3`
	res, err := repo.db.ExecContext(ctx, query, definition, at, id)
	if err != nil {
		return fmt.Errorf("SetDefinition: %w", err)
	}
	return requireRowAffected("SetDefinition", res)
}

func (repo *EntryRepo) MarkLookup(ctx context.Context, id int64, status entity.LookupStatus, message string, at time.Time) error {
	if status != entity.LookupNotFound && status != entity.LookupError {
		return fmt.Errorf("MarkLookup: invalid status %q", status)
	}
	if status == entity.LookupNotFound {
		message = ""
	}
	const query = `
UPDATE entries
SET lookup_status = $1, lookup_error = $2, last_lookup_at = $3, updated_at = now()
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, status, message, at, id)
	if err != nil {
		return fmt.Errorf("MarkLookup: %w", err)
	}
	return requireRowAffected("MarkLookup", res)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRowAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: no rows affected", op)
	}
	return nil
}
