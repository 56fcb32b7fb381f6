// Package api is the typed HTTP client for the document backend. It owns
// request encoding, bearer-token attachment and error payload decoding;
// nothing here interprets results beyond converting wire shapes to domain
// types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"docfind/internal/domain"
)

// Client talks to the document backend over HTTP. The token store is read on
// every request so login/logout take effect immediately.
type Client struct {
	baseURL string
	tokens  domain.TokenStore
	client  *http.Client
}

// Config configures the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  domain.TokenStore
}

// NewClient creates a backend client. Timeout defaults to 60s; searches on a
// cold backend can take several seconds.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  cfg.Tokens,
		client:  &http.Client{Timeout: timeout},
	}
}

// Search posts a query and returns the scored rows.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) ([]domain.ResultRow, error) {
	body := searchRequestDTO{
		Query: req.Query,
	}
	if req.ProjectID != "" {
		body.ProjectID = &req.ProjectID
	}
	if req.TopK > 0 {
		body.TopK = &req.TopK
	}
	if req.Probes > 0 {
		body.Probes = &req.Probes
	}
	var rows []resultRowDTO
	if err := c.postJSON(ctx, "/search", body, &rows); err != nil {
		return nil, err
	}
	out := make([]domain.ResultRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// Chat sends a question plus optional prior turns to the RAG endpoint.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	body := chatRequestDTO{Question: req.Question}
	if req.MaxContextDocs > 0 {
		body.MaxContextDocs = &req.MaxContextDocs
	}
	for _, turn := range req.History {
		body.History = append(body.History, chatMessageDTO{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	var resp chatResponseDTO
	if err := c.postJSON(ctx, "/chat", body, &resp); err != nil {
		return domain.ChatResponse{}, err
	}
	return resp.toDomain(), nil
}

// Upload posts a file and optional metadata (a JSON string) as multipart
// form data and returns the backend's structured confirmation.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader, metadata string) (domain.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return domain.UploadResult{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return domain.UploadResult{}, err
	}
	if metadata != "" {
		if err := mw.WriteField("metadata", metadata); err != nil {
			return domain.UploadResult{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return domain.UploadResult{}, err
	}

	var resp uploadResponseDTO
	if err := c.do(ctx, http.MethodPost, "/upload", mw.FormDataContentType(), &buf, &resp); err != nil {
		return domain.UploadResult{}, err
	}
	return domain.UploadResult{
		DocumentID:    resp.Data.DocumentID,
		ChunksCreated: resp.Data.ChunksCreated,
		TextLength:    resp.Data.TextLength,
		Filename:      resp.Data.Filename,
	}, nil
}

// Register creates an account and returns the issued token and profile.
func (c *Client) Register(ctx context.Context, email, password, fullName string) (domain.AuthResult, error) {
	body := map[string]string{"email": email, "password": password, "full_name": fullName}
	var resp authResponseDTO
	if err := c.postJSON(ctx, "/auth/register", body, &resp); err != nil {
		return domain.AuthResult{}, err
	}
	return resp.toDomain(), nil
}

// Login exchanges credentials for a token and profile.
func (c *Client) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponseDTO
	if err := c.postJSON(ctx, "/auth/login", body, &resp); err != nil {
		return domain.AuthResult{}, err
	}
	return resp.toDomain(), nil
}

// CurrentUser resolves the profile for the stored token.
func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var resp userDTO
	if err := c.do(ctx, http.MethodGet, "/auth/me", "", nil, &resp); err != nil {
		return domain.User{}, err
	}
	return resp.toDomain(), nil
}

// DocumentFileURL is the direct link for viewing a document. The file itself
// is opened externally, never parsed by this client.
func (c *Client) DocumentFileURL(documentID string) string {
	return fmt.Sprintf("%s/document/%s/file", c.baseURL, url.PathEscape(documentID))
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(data), out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token, err := c.tokens.Token(); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out != nil {
		dec := json.NewDecoder(resp.Body)
		return dec.Decode(out)
	}
	return nil
}
