package domain

import (
	"context"
	"io"
)

// SearchAPI issues search queries against the backend.
type SearchAPI interface {
	Search(ctx context.Context, req SearchRequest) ([]ResultRow, error)
}

// ChatAPI round-trips a question through the backend RAG pipeline.
type ChatAPI interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// UploadAPI posts a document plus optional metadata for ingestion.
type UploadAPI interface {
	Upload(ctx context.Context, filename string, file io.Reader, metadata string) (UploadResult, error)
}

// AuthAPI covers registration, login and token validation.
type AuthAPI interface {
	Register(ctx context.Context, email, password, fullName string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	CurrentUser(ctx context.Context) (User, error)
}

// TokenStore persists the auth token across sessions.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
	ClearToken() error
}

// HistoryStore persists the recent-search list across sessions.
type HistoryStore interface {
	History() ([]string, error)
	SaveHistory(entries []string) error
}
