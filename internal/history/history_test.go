package history

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryHistory struct {
	entries []string
	fail    bool
}

func (m *memoryHistory) History() ([]string, error) {
	if m.fail {
		return nil, errors.New("store unavailable")
	}
	return m.entries, nil
}

func (m *memoryHistory) SaveHistory(entries []string) error {
	if m.fail {
		return errors.New("store unavailable")
	}
	m.entries = entries
	return nil
}

func TestRecord_PrependsMostRecent(t *testing.T) {
	store := &memoryHistory{}
	r := NewRecorder(store)

	require.NoError(t, r.Record("x"))
	require.NoError(t, r.Record("y"))
	assert.Equal(t, []string{"y", "x"}, r.Entries())
	assert.Equal(t, []string{"y", "x"}, store.entries)
}

func TestRecord_DeduplicatesResubmission(t *testing.T) {
	store := &memoryHistory{entries: []string{"x", "y"}}
	r := NewRecorder(store)

	require.NoError(t, r.Record("x"))
	assert.Equal(t, []string{"x", "y"}, r.Entries())

	require.NoError(t, r.Record("y"))
	assert.Equal(t, []string{"y", "x"}, r.Entries())
}

func TestRecord_CapsAtMaxEntries(t *testing.T) {
	store := &memoryHistory{}
	r := NewRecorder(store)
	for _, q := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		require.NoError(t, r.Record(q))
	}
	entries := r.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "k", entries[0])
	assert.NotContains(t, entries, "a")
}

func TestRecord_IgnoresBlankQuery(t *testing.T) {
	store := &memoryHistory{entries: []string{"x"}}
	r := NewRecorder(store)

	require.NoError(t, r.Record("   "))
	assert.Equal(t, []string{"x"}, r.Entries())
}

func TestRecord_TrimsWhitespace(t *testing.T) {
	r := NewRecorder(&memoryHistory{})
	require.NoError(t, r.Record("  plans  "))
	assert.Equal(t, []string{"plans"}, r.Entries())
}

func TestNewRecorder_SurvivesStoreFailure(t *testing.T) {
	r := NewRecorder(&memoryHistory{fail: true})
	assert.Empty(t, r.Entries())
}

func TestNewRecorder_NormalizesStoredList(t *testing.T) {
	store := &memoryHistory{entries: []string{
		"a", "b", "a", "  ", "c", " b ", "d", "e", "f", "g", "h", "i", "j", "k",
	}}
	r := NewRecorder(store)

	entries := r.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, entries)
}

func TestSuggest_MinimumInputLength(t *testing.T) {
	r := NewRecorder(&memoryHistory{entries: []string{"contracts"}})
	assert.Nil(t, r.Suggest("c", nil))
	assert.NotEmpty(t, r.Suggest("co", nil))
}

func TestSuggest_CaseInsensitiveSubstring(t *testing.T) {
	r := NewRecorder(&memoryHistory{entries: []string{"Daily Reports", "budgets"}})
	got := r.Suggest("REPORT", []string{"progress reports"})
	assert.Equal(t, []string{"Daily Reports", "progress reports"}, got)
}

func TestSuggest_ExcludesExactInput(t *testing.T) {
	r := NewRecorder(&memoryHistory{entries: []string{"contracts", "contracts 2024"}})
	got := r.Suggest("contracts", nil)
	assert.Equal(t, []string{"contracts 2024"}, got)
}

func TestSuggest_HistoryBeforeBuiltinAndCapped(t *testing.T) {
	r := NewRecorder(&memoryHistory{entries: []string{"plan a", "plan b", "plan c"}})
	builtin := []string{"plan d", "plan e", "plan f", "plan g"}
	got := r.Suggest("plan", builtin)
	require.Len(t, got, MaxSuggestions)
	assert.Equal(t, []string{"plan a", "plan b", "plan c", "plan d", "plan e"}, got)
}

func TestSuggest_DeduplicatesHistoryAndBuiltin(t *testing.T) {
	r := NewRecorder(&memoryHistory{entries: []string{"budgets"}})
	got := r.Suggest("budg", []string{"budgets"})
	assert.Equal(t, []string{"budgets"}, got)
}
