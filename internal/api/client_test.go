package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfind/internal/domain"
)

type staticTokens struct{ token string }

func (s *staticTokens) Token() (string, error)  { return s.token, nil }
func (s *staticTokens) SetToken(t string) error { s.token = t; return nil }
func (s *staticTokens) ClearToken() error       { s.token = ""; return nil }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, Tokens: &staticTokens{token: token}})
}

func TestSearch_RequestAndDecode(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`[
			{"document_id":"d1","title":"Plan L2","category":"Planos","doc_type":"drawing",
			 "date_modified":"2024-03-10T12:00:00Z","snippet":"north wing","score":0.8,"project_id":"p1"},
			{"document_id":"d2","title":"Undated","date_modified":null,"snippet":null,"score":0.4}
		]`))
	}, "tok-1")

	rows, err := client.Search(context.Background(), domain.SearchRequest{
		Query: "plans", ProjectID: "p1", TopK: 25,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "plans", gotBody["query"])
	assert.Equal(t, "p1", gotBody["project_id"])
	assert.Equal(t, float64(25), gotBody["top_k"])
	_, hasProbes := gotBody["probes"]
	assert.False(t, hasProbes)

	require.Len(t, rows, 2)
	assert.Equal(t, "Plan L2", rows[0].Title)
	assert.Equal(t, "north wing", rows[0].Snippet)
	require.NotNil(t, rows[0].DateModified)
	assert.Equal(t, 2024, rows[0].DateModified.Year())
	assert.Nil(t, rows[1].DateModified)
	assert.Empty(t, rows[1].Snippet)
}

func TestSearch_NoTokenNoHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}, "")
	_, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.NoError(t, err)
}

func TestSearch_ServerErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"query too long"}`))
	}, "")

	_, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Equal(t, "query too long", err.Error())

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.False(t, IsAuthError(err))
}

func TestSearch_UndecodableErrorFallsBack(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>boom</html>"))
	}, "")

	_, err := client.Search(context.Background(), domain.SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Internal Server Error")
}

func TestChat_HistoryAndSources(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "what changed?", body["question"])
		assert.Equal(t, float64(15), body["max_context_docs"])
		hist, ok := body["history"].([]any)
		require.True(t, ok)
		require.Len(t, hist, 1)
		_, _ = w.Write([]byte(`{
			"question":"what changed?","answer":"Revision B.",
			"sources":[{"document_id":"d1","title":"Plan L2","score":0.9}],
			"context_used":"3 chunks"}`))
	}, "tok")

	resp, err := client.Chat(context.Background(), domain.ChatRequest{
		Question:       "what changed?",
		MaxContextDocs: 15,
		History:        []domain.ChatTurn{{Role: domain.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Revision B.", resp.Answer)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "d1", resp.Sources[0].DocumentID)
}

func TestUpload_MultipartFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "spec.pdf", header.Filename)
		assert.Equal(t, `{"type":"spec"}`, r.FormValue("metadata"))

		_, _ = w.Write([]byte(`{"message":"ok","data":{
			"document_id":"doc-9","chunks_created":12,"text_length":3400,"filename":"spec.pdf"}}`))
	}, "tok")

	result, err := client.Upload(context.Background(), "spec.pdf",
		strings.NewReader("%PDF-1.4 fake"), `{"type":"spec"}`)
	require.NoError(t, err)
	assert.Equal(t, "doc-9", result.DocumentID)
	assert.Equal(t, 12, result.ChunksCreated)
	assert.Equal(t, 3400, result.TextLength)
	assert.Equal(t, "spec.pdf", result.Filename)
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"access_token":"jwt-x","token_type":"bearer",
			"user":{"id":"u1","email":"a@b.c","full_name":"Ada","created_at":"2024-01-01T00:00:00Z"}}`))
	}, "")

	result, err := client.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-x", result.Token)
	assert.Equal(t, "Ada", result.User.FullName)
	assert.Equal(t, 2024, result.User.CreatedAt.Year())
}

func TestCurrentUser_ExpiredTokenIsAuthError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	}, "stale")

	_, err := client.CurrentUser(context.Background())
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestDocumentFileURL(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://backend:8000/"})
	assert.Equal(t, "http://backend:8000/document/doc%2F1/file", client.DocumentFileURL("doc/1"))
}

func TestClient_ContextCancellation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}, "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := client.Search(ctx, domain.SearchRequest{Query: "q"})
	assert.Error(t, err)
}
