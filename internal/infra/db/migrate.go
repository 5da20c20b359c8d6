package db

import "database/sql"

// MigrateUp creates the lexicon schema. Statements are idempotent so the
// API and worker can both run them at startup.
func MigrateUp(database *sql.DB) error {
	if _, err := database.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    id             SERIAL PRIMARY KEY,
    type           VARCHAR(20) NOT NULL,
    text           TEXT NOT NULL,
    definition     TEXT NOT NULL DEFAULT '',
    lookup_status  VARCHAR(20) NOT NULL DEFAULT '',
    lookup_error   TEXT NOT NULL DEFAULT '',
    last_lookup_at TIMESTAMPTZ,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// Case-insensitive uniqueness per type, matching the service's
		// duplicate check; the violation maps to repository.ErrDuplicate.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_type_text_unique ON entries(type, lower(text))`,
		// Alphabet browse orders and filters by lower(text)
		`CREATE INDEX IF NOT EXISTS idx_entries_text_lower ON entries(lower(text) text_pattern_ops)`,
		// Type filter for word-only queries (browse, updater candidates)
		`CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(type)`,
		// Updater candidate scan: word entries without a definition
		`CREATE INDEX IF NOT EXISTS idx_entries_lookup ON entries(lookup_status, last_lookup_at)
		     WHERE type = 'word' AND definition = ''`,
	}
	for _, idx := range indexes {
		if _, err := database.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE keyword search; ignore failures when the
	// extension is unavailable or the role lacks privileges.
	_, _ = database.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)
	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_entries_text_gin ON entries USING gin(text gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_definition_gin ON entries USING gin(definition gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		_, _ = database.Exec(idx)
	}

	_, _ = database.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_entry_type'
    ) THEN
        ALTER TABLE entries ADD CONSTRAINT chk_entry_type
        CHECK (type IN ('word', 'phrase', 'quote', 'hypothetical'));
    END IF;
END $$;
`)
	_, _ = database.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_lookup_status'
    ) THEN
        ALTER TABLE entries ADD CONSTRAINT chk_lookup_status
        CHECK (lookup_status IN ('', 'success', 'not_found', 'error'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown drops the lexicon schema. Use with caution: this deletes all
// entry data.
func MigrateDown(database *sql.DB) error {
	_, err := database.Exec(`DROP TABLE IF EXISTS entries CASCADE`)
	return err
}
