// Package chat holds the conversational transcript state: an append-only
// sequence of user and assistant turns for the lifetime of the session, with
// at most one backend request outstanding at a time.
package chat

import (
	"strconv"
	"strings"
	"time"

	"docfind/internal/domain"
)

// Fixed assistant messages for degraded responses. A failed round-trip adds
// one of these instead of leaving the transcript inconsistent.
const (
	FallbackAnswer = "Sorry, I could not process your question."
	ErrorAnswer    = "I could not reach the backend. Please check that the service is running and try again."
)

// Transcript is the chat session state. Turns only ever grow; the transcript
// resets with the process, not between questions.
type Transcript struct {
	turns          []domain.ChatTurn
	greetingTurns  int
	inFlight       bool
	visibleSources map[string]bool
	nextID         int
	now            func() time.Time
}

// NewTranscript creates a transcript, opening with the given assistant
// greeting when non-empty.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{
		visibleSources: make(map[string]bool),
		nextID:         1,
		now:            time.Now,
	}
	if greeting != "" {
		t.append(domain.RoleAssistant, greeting, nil)
		t.greetingTurns = len(t.turns)
	}
	return t
}

func (t *Transcript) append(role domain.Role, content string, sources []domain.ResultRow) domain.ChatTurn {
	turn := domain.ChatTurn{
		ID:        strconv.Itoa(t.nextID),
		Role:      role,
		Content:   content,
		Sources:   sources,
		Timestamp: t.now(),
	}
	t.nextID++
	t.turns = append(t.turns, turn)
	return turn
}

// Turns returns the transcript in order.
func (t *Transcript) Turns() []domain.ChatTurn {
	out := make([]domain.ChatTurn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns including the greeting.
func (t *Transcript) Len() int { return len(t.turns) }

// InFlight reports whether a request is outstanding; submission is disabled
// while it is.
func (t *Transcript) InFlight() bool { return t.inFlight }

// Fresh reports whether the user has not asked anything yet, which is when
// starter prompts are offered.
func (t *Transcript) Fresh() bool { return len(t.turns) == t.greetingTurns }

// Submit appends a user turn and marks a request outstanding. It returns
// false, leaving the transcript unchanged, when the question is blank or a
// prior request has not resolved yet.
func (t *Transcript) Submit(question string) (domain.ChatTurn, bool) {
	question = strings.TrimSpace(question)
	if question == "" || t.inFlight {
		return domain.ChatTurn{}, false
	}
	turn := t.append(domain.RoleUser, question, nil)
	t.inFlight = true
	return turn, true
}

// Resolve appends the assistant turn for the outstanding request, carrying
// the answer and its source citations. An empty answer degrades to the fixed
// fallback text.
func (t *Transcript) Resolve(resp domain.ChatResponse) domain.ChatTurn {
	answer := resp.Answer
	if answer == "" {
		answer = FallbackAnswer
	}
	t.inFlight = false
	return t.append(domain.RoleAssistant, answer, resp.Sources)
}

// Fail appends the fixed error turn for the outstanding request and
// re-enables submission.
func (t *Transcript) Fail(err error) domain.ChatTurn {
	t.inFlight = false
	return t.append(domain.RoleAssistant, ErrorAnswer, nil)
}

// History returns the turns to send as conversational context: everything
// after the greeting, up to and including the latest user turn.
func (t *Transcript) History() []domain.ChatTurn {
	out := make([]domain.ChatTurn, len(t.turns)-t.greetingTurns)
	copy(out, t.turns[t.greetingTurns:])
	return out
}

// ToggleSources flips the source-citation visibility for one turn.
func (t *Transcript) ToggleSources(turnID string) {
	t.visibleSources[turnID] = !t.visibleSources[turnID]
}

// SourcesVisible reports whether a turn's citations are expanded; they are
// hidden by default.
func (t *Transcript) SourcesVisible(turnID string) bool {
	return t.visibleSources[turnID]
}
