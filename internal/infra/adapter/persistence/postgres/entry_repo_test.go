package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"clinton-lexicon/internal/domain/entity"
	pg "clinton-lexicon/internal/infra/adapter/persistence/postgres"
	"clinton-lexicon/internal/repository"
)

func entryRow(e *entity.Entry) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "type", "text", "definition", "lookup_status",
		"lookup_error", "last_lookup_at", "created_at", "updated_at",
	})
	return rows.AddRow(
		e.ID, e.Type, e.Text, e.Definition, e.LookupStatus,
		e.LookupError, e.LastLookupAt, e.CreatedAt, e.UpdatedAt,
	)
}

func TestEntryRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	want := &entity.Entry{
		ID: 1, Type: entity.TypeWord, Text: "bigly",
		Definition: "in a big manner", LookupStatus: entity.LookupSuccess,
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(1)).
		WillReturnRows(entryRow(want))

	repo := pg.NewEntryRepo(db)
	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEntryRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "type", "text", "definition", "lookup_status",
			"lookup_error", "last_lookup_at", "created_at", "updated_at",
		}))

	repo := pg.NewEntryRepo(db)
	got, err := repo.Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("expected nil entry for missing row, got %+v", got)
	}
}

func TestEntryRepo_Create_AssignsID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	e := &entity.Entry{Type: entity.TypeWord, Text: "covfefe", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO entries")).
		WithArgs(e.Type, e.Text, e.Definition, e.LookupStatus, e.LookupError,
			sqlmock.AnyArg(), e.CreatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	repo := pg.NewEntryRepo(db)
	if err := repo.Create(context.Background(), e); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if e.ID != 7 {
		t.Fatalf("ID not assigned, got %d", e.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEntryRepo_Create_UniqueViolation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO entries")).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_entries_type_text_unique"})

	repo := pg.NewEntryRepo(db)
	now := time.Now()
	err := repo.Create(context.Background(), &entity.Entry{
		Type: entity.TypeWord, Text: "covfefe", CreatedAt: now, UpdatedAt: now,
	})
	if !errors.Is(err, repository.ErrDuplicate) {
		t.Fatalf("err=%v, want repository.ErrDuplicate", err)
	}
}

func TestEntryRepo_ExistsByText_ExcludesID(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT EXISTS(SELECT 1 FROM entries WHERE type = $1 AND lower(text) = lower($2) AND id <> $3)")).
		WithArgs(entity.TypeWord, "covfefe", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	repo := pg.NewEntryRepo(db)
	exists, err := repo.ExistsByText(context.Background(), entity.TypeWord, "covfefe", 7)
	if err != nil {
		t.Fatalf("ExistsByText err=%v", err)
	}
	if exists {
		t.Fatal("exists=true, want false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEntryRepo_Delete_NoRows(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := pg.NewEntryRepo(db)
	if err := repo.Delete(context.Background(), 42); err == nil {
		t.Fatal("expected error for delete with no rows affected")
	}
}

func TestEntryRepo_CountMissingDefinition(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM entries WHERE type = 'word' AND definition = ''")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	repo := pg.NewEntryRepo(db)
	got, err := repo.CountMissingDefinition(context.Background())
	if err != nil {
		t.Fatalf("CountMissingDefinition err=%v", err)
	}
	if got != 4 {
		t.Fatalf("count=%d, want 4", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEntryRepo_Letters(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT lower(left(text, 1))")).
		WillReturnRows(sqlmock.NewRows([]string{"letter", "count"}).
			AddRow("b", int64(3)).
			AddRow("c", int64(1)))

	repo := pg.NewEntryRepo(db)
	got, err := repo.Letters(context.Background())
	if err != nil {
		t.Fatalf("Letters err=%v", err)
	}
	want := []repository.LetterCount{{Letter: "b", Count: 3}, {Letter: "c", Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEntryRepo_ListByLetter_LowercasesPrefix(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	e := &entity.Entry{ID: 1, Type: entity.TypeWord, Text: "bigly", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE type = 'word'")).
		WithArgs("b%").
		WillReturnRows(entryRow(e))

	repo := pg.NewEntryRepo(db)
	got, err := repo.ListByLetter(context.Background(), "B")
	if err != nil {
		t.Fatalf("ListByLetter err=%v", err)
	}
	if len(got) != 1 || got[0].Text != "bigly" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEntryRepo_ListLookupCandidates(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	notFoundBefore := now.AddDate(0, 0, -90)
	errorBefore := now.AddDate(0, 0, -7)
	e := &entity.Entry{ID: 3, Type: entity.TypeWord, Text: "yuge", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery(regexp.QuoteMeta("definition = ''")).
		WithArgs(notFoundBefore, errorBefore, 10).
		WillReturnRows(entryRow(e))

	repo := pg.NewEntryRepo(db)
	got, err := repo.ListLookupCandidates(context.Background(), repository.LookupCandidateFilter{
		NotFoundBefore: notFoundBefore,
		ErrorBefore:    errorBefore,
		Limit:          10,
	})
	if err != nil {
		t.Fatalf("ListLookupCandidates err=%v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("unexpected candidates: %+v", got)
	}
}

func TestEntryRepo_SetDefinition(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("lookup_status = 'success'")).
		WithArgs("very large", at, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewEntryRepo(db)
	if err := repo.SetDefinition(context.Background(), 5, "very large", at); err != nil {
		t.Fatalf("SetDefinition err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestEntryRepo_MarkLookup(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("not_found discards message", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer func() { _ = db.Close() }()

		mock.ExpectExec(regexp.QuoteMeta("SET lookup_status")).
			WithArgs(entity.LookupNotFound, "", at, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := pg.NewEntryRepo(db)
		err := repo.MarkLookup(context.Background(), 5, entity.LookupNotFound, "ignored", at)
		if err != nil {
			t.Fatalf("MarkLookup err=%v", err)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("error keeps message", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer func() { _ = db.Close() }()

		mock.ExpectExec(regexp.QuoteMeta("SET lookup_status")).
			WithArgs(entity.LookupError, "boom", at, int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := pg.NewEntryRepo(db)
		err := repo.MarkLookup(context.Background(), 5, entity.LookupError, "boom", at)
		if err != nil {
			t.Fatalf("MarkLookup err=%v", err)
		}
	})

	t.Run("rejects success status", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer func() { _ = db.Close() }()

		repo := pg.NewEntryRepo(db)
		err := repo.MarkLookup(context.Background(), 5, entity.LookupSuccess, "", at)
		if err == nil {
			t.Fatal("expected error for success status via MarkLookup")
		}
	})
}
