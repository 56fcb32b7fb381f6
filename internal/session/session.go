// Package session tracks the authentication state: whether a usable token is
// present and who the current user is. In-memory state transitions happen
// only on the UI event loop; the network and token-store round-trips behind
// them (Verify, Login, Register) are safe to run from command goroutines, and
// their outcomes are applied separately (FinishBootstrap, Accept).
package session

import (
	"context"

	"go.uber.org/zap"

	"docfind/internal/domain"
)

// Status is the authentication state of the client.
type Status int

const (
	Unauthenticated Status = iota
	Verifying
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Verifying:
		return "verifying"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Manager owns the session state.
type Manager struct {
	api    domain.AuthAPI
	tokens domain.TokenStore
	logger *zap.Logger

	status Status
	user   domain.User
}

// NewManager creates an unauthenticated session manager.
func NewManager(api domain.AuthAPI, tokens domain.TokenStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{api: api, tokens: tokens, logger: logger}
}

// Status returns the current authentication state.
func (m *Manager) Status() Status { return m.status }

// User returns the resolved profile; meaningful only when authenticated.
func (m *Manager) User() domain.User { return m.user }

// BeginBootstrap checks for a stored token at startup. When one exists the
// session moves to Verifying and the caller should run Verify; otherwise it
// settles Unauthenticated immediately.
func (m *Manager) BeginBootstrap() bool {
	token, err := m.tokens.Token()
	if err != nil || token == "" {
		m.status = Unauthenticated
		return false
	}
	m.status = Verifying
	return true
}

// Verify resolves the stored token into a profile. A rejected token is
// removed from storage here, but the in-memory state is never written, so
// Verify may run concurrently with Status and User reads; the caller applies
// the outcome with FinishBootstrap.
func (m *Manager) Verify(ctx context.Context) (domain.User, error) {
	user, err := m.api.CurrentUser(ctx)
	if err != nil {
		m.logger.Info("stored token rejected, clearing", zap.Error(err))
		_ = m.tokens.ClearToken()
		return domain.User{}, err
	}
	return user, nil
}

// FinishBootstrap applies the Verify outcome. Any failure (expired or invalid
// token, unreachable backend) leaves the session unauthenticated without
// surfacing an error; the user simply sees the login screen.
func (m *Manager) FinishBootstrap(user domain.User, err error) {
	if err != nil {
		m.status = Unauthenticated
		m.user = domain.User{}
		return
	}
	m.user = user
	m.status = Authenticated
	m.logger.Info("session restored", zap.String("user", user.Email))
}

// Login exchanges credentials for a token and stores it. The in-memory state
// is unchanged; the caller applies a successful result with Accept.
func (m *Manager) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	result, err := m.api.Login(ctx, email, password)
	if err != nil {
		return domain.AuthResult{}, err
	}
	if err := m.tokens.SetToken(result.Token); err != nil {
		return domain.AuthResult{}, err
	}
	return result, nil
}

// Register creates an account and stores the issued token. As with Login, the
// caller applies the result with Accept.
func (m *Manager) Register(ctx context.Context, email, password, fullName string) (domain.AuthResult, error) {
	result, err := m.api.Register(ctx, email, password, fullName)
	if err != nil {
		return domain.AuthResult{}, err
	}
	if err := m.tokens.SetToken(result.Token); err != nil {
		return domain.AuthResult{}, err
	}
	return result, nil
}

// Accept marks the session authenticated for a Login or Register result.
func (m *Manager) Accept(result domain.AuthResult) {
	m.user = result.User
	m.status = Authenticated
	m.logger.Info("logged in", zap.String("user", result.User.Email))
}

// Logout clears the stored token and profile synchronously; gated screens
// become unreachable as soon as this returns.
func (m *Manager) Logout() {
	_ = m.tokens.ClearToken()
	m.user = domain.User{}
	m.status = Unauthenticated
	m.logger.Info("logged out")
}
