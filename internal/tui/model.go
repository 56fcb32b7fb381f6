// Package tui is the Bubble Tea front end: a landing/login gate in front of
// the search, chat and upload screens. All network round-trips run as
// asynchronous commands so the event loop never blocks; their results come
// back as messages.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"docfind/internal/chat"
	"docfind/internal/config"
	"docfind/internal/domain"
	"docfind/internal/history"
	"docfind/internal/results"
	"docfind/internal/session"
	"docfind/internal/upload"
)

// Backend is the TUI-facing subset of the API client.
type Backend interface {
	domain.SearchAPI
	domain.ChatAPI
	domain.UploadAPI

	// DocumentFileURL is the direct viewing link for a document; the file is
	// opened outside this client, never parsed here.
	DocumentFileURL(documentID string) string
}

type screen int

const (
	screenLanding screen = iota
	screenLogin
	screenRegister
	screenSearch
	screenChat
	screenUpload
)

// Messages produced by asynchronous commands. Commands only perform I/O and
// report the outcome here; all model and session state changes happen in
// Update, on the event loop.
type (
	bootstrapDoneMsg struct {
		user domain.User
		err  error
	}
	searchDoneMsg struct {
		rows []domain.ResultRow
		err  error
	}
	chatDoneMsg struct {
		resp domain.ChatResponse
		err  error
	}
	uploadDoneMsg struct {
		result domain.UploadResult
		err    error
	}
	authDoneMsg struct {
		result domain.AuthResult
		err    error
	}
)

// Model is the Bubble Tea model for the whole application.
type Model struct {
	cfg      *config.AppConfig
	backend  Backend
	session  *session.Manager
	recorder *history.Recorder
	logger   *zap.Logger

	screen screen
	width  int
	height int
	ready  bool
	spin   spinner.Model

	// Search screen.
	queryInput   textinput.Model
	projectInput textinput.Model
	presenter    *results.Presenter
	resultsView  viewport.Model
	suggestions  []string
	suggestIdx   int
	searchFocus  searchFocus
	searching    bool
	searchErr    string
	hasSearched  bool
	filterIdx    int
	sortIdx      int

	// Chat screen.
	transcript  *chat.Transcript
	chatInput   textinput.Model
	chatView    viewport.Model
	chatFocus   chatFocus
	turnCursor  int
	maxDocsIdx  int
	starterIdx  int

	// Upload screen.
	pathInput  textinput.Model
	metaInput  textinput.Model
	metaFocus  bool
	uploading  bool
	upResult   *domain.UploadResult
	upErr      string

	// Auth screens.
	emailInput   textinput.Model
	nameInput    textinput.Model
	passInput    textinput.Model
	confirmInput textinput.Model
	authFocus    int
	authErr      string
	authBusy     bool
}

type searchFocus int

const (
	focusQuery searchFocus = iota
	focusProject
	focusResults
)

type chatFocus int

const (
	focusChatInput chatFocus = iota
	focusTranscript
)

// New assembles the application model.
func New(cfg *config.AppConfig, backend Backend, sess *session.Manager, recorder *history.Recorder, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	query := textinput.New()
	query.Prompt = "> "
	query.Placeholder = "Search documents"
	query.Focus()
	query.CharLimit = 0

	project := textinput.New()
	project.Prompt = "# "
	project.Placeholder = "Project ID (optional)"

	chatIn := textinput.New()
	chatIn.Prompt = "> "
	chatIn.Placeholder = "Ask about the documents"
	chatIn.CharLimit = 0

	path := textinput.New()
	path.Prompt = "file: "
	path.Placeholder = "/path/to/document.pdf"

	meta := textinput.New()
	meta.Prompt = "meta: "
	meta.Placeholder = `{"project": "A"} (optional JSON)`

	email := textinput.New()
	email.Prompt = "email: "
	name := textinput.New()
	name.Prompt = "name:  "
	pass := textinput.New()
	pass.Prompt = "password: "
	pass.EchoMode = textinput.EchoPassword
	confirm := textinput.New()
	confirm.Prompt = "confirm:  "
	confirm.EchoMode = textinput.EchoPassword

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	rules := make([]results.CategoryRule, 0, len(cfg.Categories))
	for _, c := range cfg.Categories {
		rules = append(rules, results.CategoryRule{Name: c.Name, Keywords: c.Keywords})
	}
	pipeline := results.NewPipeline(rules, cfg.Search.PageSize)

	return Model{
		cfg:          cfg,
		backend:      backend,
		session:      sess,
		recorder:     recorder,
		logger:       logger,
		screen:       screenLanding,
		spin:         sp,
		queryInput:   query,
		projectInput: project,
		presenter:    results.NewPresenter(pipeline),
		resultsView:  viewport.New(0, 0),
		suggestIdx:   -1,
		transcript:   chat.NewTranscript(cfg.Chat.Greeting),
		chatInput:    chatIn,
		chatView:     viewport.New(0, 0),
		maxDocsIdx:   defaultDocChoice(cfg),
		starterIdx:   -1,
		pathInput:    path,
		metaInput:    meta,
		emailInput:   email,
		nameInput:    name,
		passInput:    pass,
		confirmInput: confirm,
	}
}

func defaultDocChoice(cfg *config.AppConfig) int {
	for i, n := range cfg.Chat.DocChoices {
		if n == cfg.Chat.MaxContextDocs {
			return i
		}
	}
	return 0
}

// Init kicks off the cursor blink and, when a token is stored, its
// verification round-trip.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spin.Tick}
	if m.session.BeginBootstrap() {
		cmds = append(cmds, m.bootstrapCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) bootstrapCmd() tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		user, err := sess.Verify(context.Background())
		return bootstrapDoneMsg{user: user, err: err}
	}
}

func (m Model) searchCmd(query, projectID string) tea.Cmd {
	backend, cfg := m.backend, m.cfg
	return func() tea.Msg {
		rows, err := backend.Search(context.Background(), domain.SearchRequest{
			Query:     query,
			ProjectID: projectID,
			TopK:      cfg.Search.TopK,
			Probes:    cfg.Search.Probes,
		})
		return searchDoneMsg{rows: rows, err: err}
	}
}

func (m Model) chatCmd(question string, maxDocs int, hist []domain.ChatTurn) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		resp, err := backend.Chat(context.Background(), domain.ChatRequest{
			Question:       question,
			MaxContextDocs: maxDocs,
			History:        hist,
		})
		return chatDoneMsg{resp: resp, err: err}
	}
}

func (m Model) uploadCmd(form upload.Form) tea.Cmd {
	backend := m.backend
	return func() tea.Msg {
		result, err := upload.Submit(context.Background(), backend, form)
		return uploadDoneMsg{result: result, err: err}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		result, err := sess.Login(context.Background(), email, password)
		return authDoneMsg{result: result, err: err}
	}
}

func (m Model) registerCmd(email, password, fullName string) tea.Cmd {
	sess := m.session
	return func() tea.Msg {
		result, err := sess.Register(context.Background(), email, password, fullName)
		return authDoneMsg{result: result, err: err}
	}
}

// Update dispatches events to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		m.layoutViewports()
		m.refreshResultsView()
		m.refreshChatView()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case bootstrapDoneMsg:
		m.session.FinishBootstrap(msg.user, msg.err)
		if m.session.Status() == session.Authenticated {
			m.screen = screenSearch
		} else {
			m.screen = screenLanding
		}
		return m, nil

	case searchDoneMsg:
		m.searching = false
		if msg.err != nil {
			m.searchErr = msg.err.Error()
			m.logger.Warn("search failed", zap.Error(msg.err))
			return m, nil
		}
		m.searchErr = ""
		m.hasSearched = true
		m.presenter.SetRows(msg.rows)
		m.refreshResultsView()
		return m, nil

	case chatDoneMsg:
		if msg.err != nil {
			m.transcript.Fail(msg.err)
			m.logger.Warn("chat failed", zap.Error(msg.err))
		} else {
			m.transcript.Resolve(msg.resp)
		}
		m.refreshChatView()
		m.chatView.GotoBottom()
		return m, nil

	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			m.upErr = msg.err.Error()
			m.logger.Warn("upload failed", zap.Error(msg.err))
			return m, nil
		}
		result := msg.result
		m.upResult = &result
		m.upErr = ""
		m.pathInput.SetValue("")
		m.metaInput.SetValue("")
		return m, nil

	case authDoneMsg:
		m.authBusy = false
		if msg.err != nil {
			m.authErr = msg.err.Error()
			return m, nil
		}
		m.session.Accept(msg.result)
		m.authErr = ""
		m.clearAuthInputs()
		m.screen = screenSearch
		m.focusSearch()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global navigation between gated screens.
	if m.session.Status() == session.Authenticated {
		switch msg.String() {
		case "ctrl+f":
			m.screen = screenSearch
			m.focusSearch()
			return m, nil
		case "ctrl+g":
			m.screen = screenChat
			m.focusChat()
			return m, nil
		case "ctrl+u":
			m.screen = screenUpload
			m.focusUpload()
			return m, nil
		case "ctrl+l":
			m.session.Logout()
			m.screen = screenLanding
			return m, nil
		}
	}

	switch m.screen {
	case screenLanding:
		return m.updateLanding(msg)
	case screenLogin, screenRegister:
		return m.updateAuth(msg)
	case screenSearch:
		return m.updateSearch(msg)
	case screenChat:
		return m.updateChat(msg)
	case screenUpload:
		return m.updateUpload(msg)
	}
	return m, nil
}

// updateFocusedInput forwards non-key messages (and unhandled keys) to the
// input that currently has focus.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenSearch:
		switch m.searchFocus {
		case focusQuery:
			m.queryInput, cmd = m.queryInput.Update(msg)
		case focusProject:
			m.projectInput, cmd = m.projectInput.Update(msg)
		}
	case screenChat:
		if m.chatFocus == focusChatInput {
			m.chatInput, cmd = m.chatInput.Update(msg)
		}
	case screenUpload:
		if m.metaFocus {
			m.metaInput, cmd = m.metaInput.Update(msg)
		} else {
			m.pathInput, cmd = m.pathInput.Update(msg)
		}
	case screenLogin, screenRegister:
		m = m.updateAuthInput(msg, &cmd)
	}
	return m, cmd
}

func (m *Model) layoutViewports() {
	_, frameH := boxStyle.GetFrameSize()
	reserved := 7 + frameH // header, tabs, input box, status, spacers
	vh := m.height - reserved
	if vh < 3 {
		vh = 3
	}
	vw := m.width
	if vw < 20 {
		vw = 20
	}
	m.resultsView.Width = vw
	m.resultsView.Height = vh
	m.chatView.Width = vw
	m.chatView.Height = vh
}

func (m *Model) focusSearch() {
	m.searchFocus = focusQuery
	m.queryInput.Focus()
	m.projectInput.Blur()
	m.chatInput.Blur()
}

func (m *Model) focusChat() {
	m.chatFocus = focusChatInput
	m.chatInput.Focus()
	m.queryInput.Blur()
	m.projectInput.Blur()
	m.refreshChatView()
	m.chatView.GotoBottom()
}

func (m *Model) focusUpload() {
	m.metaFocus = false
	m.pathInput.Focus()
	m.metaInput.Blur()
	m.queryInput.Blur()
	m.chatInput.Blur()
}

// View renders the active screen.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	switch m.screen {
	case screenLanding:
		return m.viewLanding()
	case screenLogin:
		return m.viewLogin()
	case screenRegister:
		return m.viewRegister()
	case screenSearch:
		return m.viewSearch()
	case screenChat:
		return m.viewChat()
	case screenUpload:
		return m.viewUpload()
	}
	return ""
}

func (m Model) tabs() string {
	labels := []struct {
		name string
		s    screen
	}{
		{"Search (^F)", screenSearch},
		{"Chat (^G)", screenChat},
		{"Upload (^U)", screenUpload},
	}
	var rendered []string
	for _, l := range labels {
		if l.s == m.screen {
			rendered = append(rendered, activeTabStyle.Render(l.name))
		} else {
			rendered = append(rendered, tabStyle.Render(l.name))
		}
	}
	user := ""
	if m.session.Status() == session.Authenticated {
		user = subtleStyle.Render("  " + m.session.User().Email + " (^L logout)")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + user
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "no date"
	}
	return t.Format("2006-01-02")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
