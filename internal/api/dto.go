package api

import (
	"time"

	"docfind/internal/domain"
)

type searchRequestDTO struct {
	Query     string  `json:"query"`
	ProjectID *string `json:"project_id,omitempty"`
	TopK      *int    `json:"top_k,omitempty"`
	Probes    *int    `json:"probes,omitempty"`
}

type resultRowDTO struct {
	DocumentID   string  `json:"document_id"`
	Title        string  `json:"title"`
	Number       string  `json:"number"`
	Category     string  `json:"category"`
	DocType      string  `json:"doc_type"`
	Revision     string  `json:"revision"`
	Filename     string  `json:"filename"`
	FileType     string  `json:"file_type"`
	DateModified *string `json:"date_modified"`
	Snippet      *string `json:"snippet"`
	Score        float64 `json:"score"`
	ProjectID    string  `json:"project_id"`
}

// dateLayouts are tried in order when parsing backend timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t
		}
	}
	// An unparseable date degrades to "no date" and sorts oldest.
	return nil
}

func (r resultRowDTO) toDomain() domain.ResultRow {
	row := domain.ResultRow{
		DocumentID:   r.DocumentID,
		Title:        r.Title,
		Number:       r.Number,
		Category:     r.Category,
		DocType:      r.DocType,
		Revision:     r.Revision,
		Filename:     r.Filename,
		FileType:     r.FileType,
		DateModified: parseDate(r.DateModified),
		Score:        r.Score,
		ProjectID:    r.ProjectID,
	}
	if r.Snippet != nil {
		row.Snippet = *r.Snippet
	}
	return row
}

type chatMessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequestDTO struct {
	Question       string           `json:"question"`
	MaxContextDocs *int             `json:"max_context_docs,omitempty"`
	History        []chatMessageDTO `json:"history,omitempty"`
}

type chatResponseDTO struct {
	Question    string         `json:"question"`
	Answer      string         `json:"answer"`
	Sources     []resultRowDTO `json:"sources"`
	ContextUsed string         `json:"context_used"`
}

func (r chatResponseDTO) toDomain() domain.ChatResponse {
	out := domain.ChatResponse{
		Question:    r.Question,
		Answer:      r.Answer,
		ContextUsed: r.ContextUsed,
	}
	for _, s := range r.Sources {
		out.Sources = append(out.Sources, s.toDomain())
	}
	return out
}

type uploadResponseDTO struct {
	Message string `json:"message"`
	Data    struct {
		DocumentID    string `json:"document_id"`
		ChunksCreated int    `json:"chunks_created"`
		TextLength    int    `json:"text_length"`
		Filename      string `json:"filename"`
	} `json:"data"`
}

type userDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

func (u userDTO) toDomain() domain.User {
	user := domain.User{ID: u.ID, Email: u.Email, FullName: u.FullName}
	if t := parseDate(&u.CreatedAt); t != nil {
		user.CreatedAt = *t
	}
	return user
}

type authResponseDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        userDTO `json:"user"`
}

func (a authResponseDTO) toDomain() domain.AuthResult {
	return domain.AuthResult{Token: a.AccessToken, User: a.User.toDomain()}
}
