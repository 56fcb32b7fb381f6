package domain

import "time"

// ResultRow is one retrieved document surrogate as returned by the backend.
// Rows are immutable once received; display identity is document id plus
// position, since an id may repeat within a result set.
type ResultRow struct {
	DocumentID   string
	Title        string
	Number       string
	Category     string
	DocType      string
	Revision     string
	Filename     string
	FileType     string
	DateModified *time.Time
	Snippet      string
	Score        float64
	ProjectID    string
}

// RelevancePercent maps the backend score to a 0-100 display percentage.
// Scores are higher-is-better throughout this client.
func (r ResultRow) RelevancePercent() float64 {
	p := r.Score * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Role identifies the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is a single entry in the chat transcript. Sources is empty for
// user turns.
type ChatTurn struct {
	ID        string
	Role      Role
	Content   string
	Sources   []ResultRow
	Timestamp time.Time
}

// User is the profile record returned by the auth endpoints.
type User struct {
	ID        string
	Email     string
	FullName  string
	CreatedAt time.Time
}

// SearchRequest is a search query for the backend.
type SearchRequest struct {
	Query     string
	ProjectID string
	TopK      int
	Probes    int
}

// ChatRequest asks the backend a question with optional prior turns.
type ChatRequest struct {
	Question       string
	MaxContextDocs int
	History        []ChatTurn
}

// ChatResponse carries the backend answer and the documents it drew on.
type ChatResponse struct {
	Question    string
	Answer      string
	Sources     []ResultRow
	ContextUsed string
}

// UploadResult is the structured confirmation for a successful upload.
type UploadResult struct {
	DocumentID    string
	ChunksCreated int
	TextLength    int
	Filename      string
}

// AuthResult bundles the credential and profile returned by login/register.
type AuthResult struct {
	Token string
	User  User
}
