package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docfind/internal/config"
	"docfind/internal/domain"
	"docfind/internal/history"
	"docfind/internal/session"
)

type stubBackend struct{}

func (stubBackend) Search(context.Context, domain.SearchRequest) ([]domain.ResultRow, error) {
	return nil, nil
}

func (stubBackend) Chat(context.Context, domain.ChatRequest) (domain.ChatResponse, error) {
	return domain.ChatResponse{}, nil
}

func (stubBackend) Upload(context.Context, string, io.Reader, string) (domain.UploadResult, error) {
	return domain.UploadResult{}, nil
}

func (stubBackend) DocumentFileURL(documentID string) string {
	return "http://backend/document/" + documentID + "/file"
}

// stubAuthAPI optionally blocks CurrentUser on gate, to hold a verification
// round-trip open while the test exercises the model.
type stubAuthAPI struct {
	user        domain.User
	loginResult domain.AuthResult
	gate        chan struct{}
}

func (a *stubAuthAPI) Login(context.Context, string, string) (domain.AuthResult, error) {
	return a.loginResult, nil
}

func (a *stubAuthAPI) Register(context.Context, string, string, string) (domain.AuthResult, error) {
	return a.loginResult, nil
}

func (a *stubAuthAPI) CurrentUser(context.Context) (domain.User, error) {
	if a.gate != nil {
		<-a.gate
	}
	return a.user, nil
}

type memTokens struct{ token string }

func (s *memTokens) Token() (string, error)  { return s.token, nil }
func (s *memTokens) SetToken(t string) error { s.token = t; return nil }
func (s *memTokens) ClearToken() error       { s.token = ""; return nil }

type memHistory struct{ entries []string }

func (s *memHistory) History() ([]string, error)   { return s.entries, nil }
func (s *memHistory) SaveHistory(e []string) error { s.entries = e; return nil }

func newTestModel(t *testing.T, api *stubAuthAPI, tokens *memTokens) Model {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	sess := session.NewManager(api, tokens, nil)
	recorder := history.NewRecorder(&memHistory{})
	return New(cfg, stubBackend{}, sess, recorder, nil)
}

// The bootstrap command only performs the verification round-trip; rendering
// stays safe while it is outstanding, and the session transitions when its
// message reaches Update.
func TestBootstrap_RendersWhileVerificationOutstanding(t *testing.T) {
	gate := make(chan struct{})
	api := &stubAuthAPI{user: domain.User{Email: "a@b.c"}, gate: gate}
	m := newTestModel(t, api, &memTokens{token: "stored"})

	m.Init()
	require.Equal(t, session.Verifying, m.session.Status())
	m.ready = true

	done := make(chan tea.Msg, 1)
	go func() { done <- m.bootstrapCmd()() }()
	for i := 0; i < 50; i++ {
		assert.Contains(t, m.View(), "checking stored session")
	}
	close(gate)
	msg := <-done

	require.Equal(t, session.Verifying, m.session.Status(),
		"the command must not transition the session itself")

	updated, _ := m.Update(msg)
	mm := updated.(Model)
	assert.Equal(t, session.Authenticated, mm.session.Status())
	assert.Equal(t, screenSearch, mm.screen)
}

func TestBootstrap_NoStoredTokenLandsOnLanding(t *testing.T) {
	m := newTestModel(t, &stubAuthAPI{}, &memTokens{})

	m.Init()
	m.ready = true
	assert.Equal(t, session.Unauthenticated, m.session.Status())
	assert.Equal(t, screenLanding, m.screen)
	assert.Contains(t, m.View(), "sign in")
}

// Login commands carry the auth result back as a message; the session becomes
// authenticated only once Update applies it.
func TestLogin_SessionTransitionsInUpdate(t *testing.T) {
	api := &stubAuthAPI{loginResult: domain.AuthResult{
		Token: "jwt-1",
		User:  domain.User{Email: "a@b.c"},
	}}
	tokens := &memTokens{}
	m := newTestModel(t, api, tokens)
	m.ready = true
	m.screen = screenLogin

	msg := m.loginCmd("a@b.c", "secret12")()
	assert.Equal(t, "jwt-1", tokens.token)
	require.Equal(t, session.Unauthenticated, m.session.Status(),
		"the command must not transition the session itself")

	updated, _ := m.Update(msg)
	mm := updated.(Model)
	assert.Equal(t, session.Authenticated, mm.session.Status())
	assert.Equal(t, "a@b.c", mm.session.User().Email)
	assert.Equal(t, screenSearch, mm.screen)
}
