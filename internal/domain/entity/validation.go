package entity

import (
	"fmt"
	"strings"
	"unicode"
)

// maxTextLength bounds entry text to keep list pages and lookup requests sane.
const maxTextLength = 500

// validEntryTypes is the closed set of entry classifications.
var validEntryTypes = map[EntryType]bool{
	TypeWord:         true,
	TypePhrase:       true,
	TypeQuote:        true,
	TypeHypothetical: true,
}

// ValidateEntryType checks that the type is one of the known entry types.
// Returns a ValidationError for anything outside the closed set.
func ValidateEntryType(t EntryType) error {
	if t == "" {
		return &ValidationError{Field: "type", Message: "is required"}
	}
	if !validEntryTypes[t] {
		return &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("must be one of word, phrase, quote, hypothetical (got %q)", t),
		}
	}
	return nil
}

// ValidateEntryText checks that entry text is present, printable, and bounded.
func ValidateEntryText(text string) error {
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Field: "text", Message: "is required"}
	}
	if len(text) > maxTextLength {
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("must not exceed %d characters", maxTextLength),
		}
	}
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' {
			return &ValidationError{Field: "text", Message: "must not contain control characters"}
		}
	}
	return nil
}

// FirstLetter returns the lower-cased first letter of entry text for the
// alphabet index, or empty if the text does not start with a letter.
func FirstLetter(text string) string {
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsLetter(r) {
			return strings.ToLower(string(r))
		}
		return ""
	}
	return ""
}
