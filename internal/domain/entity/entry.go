// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Entry, along with
// their validation rules and domain-specific errors.
package entity

import "time"

// EntryType classifies a lexicon entry.
type EntryType string

// Valid entry types.
const (
	TypeWord         EntryType = "word"
	TypePhrase       EntryType = "phrase"
	TypeQuote        EntryType = "quote"
	TypeHypothetical EntryType = "hypothetical"
)

// LookupStatus records the outcome of the most recent definition lookup
// attempt for an entry. An empty status means the entry has never been
// attempted (pending).
type LookupStatus string

// Lookup outcomes written by the definition updater.
const (
	LookupPending  LookupStatus = ""
	LookupSuccess  LookupStatus = "success"
	LookupNotFound LookupStatus = "not_found"
	LookupError    LookupStatus = "error"
)

// Entry represents a single lexicon record.
// Entries are created via the admin API and enriched by the definition
// updater, which fills Definition and maintains the lookup bookkeeping
// fields for word entries.
type Entry struct {
	ID           int64
	Type         EntryType
	Text         string
	Definition   string
	LookupStatus LookupStatus
	LookupError  string
	LastLookupAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NeedsDefinition reports whether the entry is a candidate for the
// definition updater: a word entry with no definition yet.
func (e *Entry) NeedsDefinition() bool {
	return e.Type == TypeWord && e.Definition == ""
}

// Validate validates the Entry entity fields.
func (e *Entry) Validate() error {
	if err := ValidateEntryType(e.Type); err != nil {
		return err
	}
	return ValidateEntryText(e.Text)
}
