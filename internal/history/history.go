package history

import (
	"strings"

	"docfind/internal/domain"
)

const (
	// MaxEntries caps the recent-search list.
	MaxEntries = 10
	// MaxSuggestions caps the autocomplete dropdown.
	MaxSuggestions = 5
	// MinQueryLen is the minimum typed length before suggestions appear.
	MinQueryLen = 2
)

// Recorder maintains the bounded recent-search list: most recent first, no
// duplicate strings, at most MaxEntries entries, persisted through the store.
type Recorder struct {
	store   domain.HistoryStore
	entries []string
}

// NewRecorder loads the persisted history. The stored list may have been
// written by an older build or edited by hand, so it is normalized on the way
// in: blanks and duplicates drop, keeping the first occurrence, and the list
// truncates to MaxEntries. A store read failure starts the recorder empty
// rather than failing the application.
func NewRecorder(store domain.HistoryStore) *Recorder {
	r := &Recorder{store: store}
	if entries, err := store.History(); err == nil {
		r.entries = normalize(entries)
	}
	return r
}

func normalize(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// Entries returns the history, most recent first.
func (r *Recorder) Entries() []string {
	out := make([]string, len(r.entries))
	copy(out, r.entries)
	return out
}

// Contains reports whether the exact query is already recorded.
func (r *Recorder) Contains(query string) bool {
	for _, e := range r.entries {
		if e == query {
			return true
		}
	}
	return false
}

// Record prepends a submitted query, removing any prior occurrence of the
// identical string and truncating to MaxEntries, then persists the list.
// Blank queries are ignored.
func (r *Recorder) Record(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	updated := make([]string, 0, len(r.entries)+1)
	updated = append(updated, query)
	for _, e := range r.entries {
		if e != query {
			updated = append(updated, e)
		}
	}
	if len(updated) > MaxEntries {
		updated = updated[:MaxEntries]
	}
	r.entries = updated
	return r.store.SaveHistory(updated)
}

// Suggest computes live autocomplete suggestions for the current input from
// the union of history entries and the built-in list, in that order. Matching
// is a case-insensitive substring test; the exact current input is excluded
// and the result is capped at MaxSuggestions. Fewer than MinQueryLen typed
// characters yields nothing.
func (r *Recorder) Suggest(input string, builtin []string) []string {
	if len([]rune(input)) < MinQueryLen {
		return nil
	}
	needle := strings.ToLower(input)
	seen := make(map[string]struct{})
	var out []string
	for _, candidate := range append(r.Entries(), builtin...) {
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		if candidate == input {
			continue
		}
		if !strings.Contains(strings.ToLower(candidate), needle) {
			continue
		}
		out = append(out, candidate)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}
