package metrics

import "time"

// Lookup outcome labels for RecordLookup.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RecordLookup records one dictionary API lookup with its outcome.
func RecordLookup(provider, outcome string) {
	LookupsTotal.WithLabelValues(provider, outcome).Inc()
}

// RecordLookupDuration records the time taken by a dictionary API call.
func RecordLookupDuration(provider string, duration time.Duration) {
	LookupDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// UpdateEntriesTotal updates the gauge of total lexicon entries.
func UpdateEntriesTotal(count int64) {
	EntriesTotal.Set(float64(count))
}

// UpdateEntriesMissingDefinition updates the gauge of word entries that
// still lack a definition.
func UpdateEntriesMissingDefinition(count int64) {
	EntriesMissingDefinition.Set(float64(count))
}
