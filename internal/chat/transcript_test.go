package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfind/internal/domain"
)

func TestNewTranscript_OpensWithGreeting(t *testing.T) {
	tr := NewTranscript("Hello!")
	turns := tr.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, domain.RoleAssistant, turns[0].Role)
	assert.Equal(t, "Hello!", turns[0].Content)
	assert.True(t, tr.Fresh())
	assert.Empty(t, tr.History())
}

func TestSubmit_AppendsUserTurn(t *testing.T) {
	tr := NewTranscript("hi")
	turn, ok := tr.Submit("  what is in the contract?  ")
	require.True(t, ok)
	assert.Equal(t, domain.RoleUser, turn.Role)
	assert.Equal(t, "what is in the contract?", turn.Content)
	assert.True(t, tr.InFlight())
	assert.False(t, tr.Fresh())
	assert.Equal(t, 2, tr.Len())
}

func TestSubmit_RejectedWhileInFlight(t *testing.T) {
	tr := NewTranscript("")
	_, ok := tr.Submit("first")
	require.True(t, ok)

	before := tr.Len()
	_, ok = tr.Submit("second")
	assert.False(t, ok)
	assert.Equal(t, before, tr.Len(), "transcript unchanged until prior response arrives")

	tr.Resolve(domain.ChatResponse{Answer: "done"})
	_, ok = tr.Submit("second")
	assert.True(t, ok)
}

func TestSubmit_RejectsBlank(t *testing.T) {
	tr := NewTranscript("")
	_, ok := tr.Submit("   ")
	assert.False(t, ok)
	assert.False(t, tr.InFlight())
}

func TestResolve_AppendsAnswerWithSources(t *testing.T) {
	tr := NewTranscript("")
	_, ok := tr.Submit("q")
	require.True(t, ok)

	turn := tr.Resolve(domain.ChatResponse{
		Answer:  "Revision B changed the layout.",
		Sources: []domain.ResultRow{{DocumentID: "d1"}},
	})
	assert.Equal(t, domain.RoleAssistant, turn.Role)
	assert.Len(t, turn.Sources, 1)
	assert.False(t, tr.InFlight())
}

func TestResolve_EmptyAnswerFallsBack(t *testing.T) {
	tr := NewTranscript("")
	tr.Submit("q")
	turn := tr.Resolve(domain.ChatResponse{})
	assert.Equal(t, FallbackAnswer, turn.Content)
}

func TestFail_AppendsErrorTurn(t *testing.T) {
	tr := NewTranscript("")
	tr.Submit("q")
	turn := tr.Fail(errors.New("connection refused"))
	assert.Equal(t, domain.RoleAssistant, turn.Role)
	assert.Equal(t, ErrorAnswer, turn.Content)
	assert.False(t, tr.InFlight(), "failure must re-enable submission")
	assert.Equal(t, 2, tr.Len())
}

func TestHistory_ExcludesGreeting(t *testing.T) {
	tr := NewTranscript("welcome")
	tr.Submit("q1")
	tr.Resolve(domain.ChatResponse{Answer: "a1"})

	hist := tr.History()
	require.Len(t, hist, 2)
	assert.Equal(t, "q1", hist[0].Content)
	assert.Equal(t, "a1", hist[1].Content)
}

func TestToggleSources_PerTurn(t *testing.T) {
	tr := NewTranscript("")
	tr.Submit("q")
	turn := tr.Resolve(domain.ChatResponse{Answer: "a", Sources: []domain.ResultRow{{}}})

	assert.False(t, tr.SourcesVisible(turn.ID), "sources hidden by default")
	tr.ToggleSources(turn.ID)
	assert.True(t, tr.SourcesVisible(turn.ID))
	assert.False(t, tr.SourcesVisible("other"))
	tr.ToggleSources(turn.ID)
	assert.False(t, tr.SourcesVisible(turn.ID))
}

func TestTurnIDsAreUnique(t *testing.T) {
	tr := NewTranscript("g")
	u, _ := tr.Submit("q")
	a := tr.Resolve(domain.ChatResponse{Answer: "x"})
	assert.NotEqual(t, u.ID, a.ID)
	assert.NotEqual(t, tr.Turns()[0].ID, u.ID)
}

func TestRenderMarkup_StripsMarkers(t *testing.T) {
	out := RenderMarkup("see **section 4** and *note* plus _caveat_\n## Summary\nplain")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "##")
	assert.Contains(t, out, "section 4")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "plain")
}

func TestRenderMarkup_PlainTextUntouched(t *testing.T) {
	assert.Equal(t, "just words", RenderMarkup("just words"))
}

func TestRenderMarkup_LoneAsterisksStayLiteral(t *testing.T) {
	assert.Equal(t, "2 * 3 * 4 = 24", RenderMarkup("2 * 3 * 4 = 24"))
	assert.Equal(t, "area is w * h", RenderMarkup("area is w * h"))
	assert.NotContains(t, RenderMarkup("*emphasis* works"), "*")
	assert.NotContains(t, RenderMarkup("single char *x* too"), "*")
}
