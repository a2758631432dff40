package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/talemy/client-go/internal/api"
	"github.com/talemy/client-go/internal/model"
)

var (
	// ErrNoSession means there is nothing to resume: no stored token,
	// or the stored token already expired
	ErrNoSession = errors.New("no session to resume")

	// ErrInvalidCredentials is a rejected login (HTTP 401)
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRateLimited is a throttled login (HTTP 429)
	ErrRateLimited = errors.New("too many login attempts")
)

// Session is one authenticated session: the bearer token plus the user
// it belongs to.
type Session struct {
	Token string
	User  model.User
}

// Manager owns the session lifecycle: login, resume from the stored
// token, logout. Subscribers are notified on every session change so
// session-scoped resources (the realtime channel, the cache) can be
// created and torn down with it.
type Manager struct {
	api    *api.Client
	store  *TokenStore
	logger *zap.Logger

	mu       sync.RWMutex
	session  *Session
	onChange []func(*Session)
}

func NewManager(apiClient *api.Client, store *TokenStore, logger *zap.Logger) *Manager {
	return &Manager{
		api:    apiClient,
		store:  store,
		logger: logger,
	}
}

// OnChange registers a callback invoked after every session change.
// A nil session means the session ended.
func (m *Manager) OnChange(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// Session returns the current session, or nil when anonymous
func (m *Manager) Session() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	copied := *m.session
	return &copied
}

// Login authenticates with credentials and persists the new token
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case api.IsStatus(err, 401):
			return nil, ErrInvalidCredentials
		case api.IsStatus(err, 429):
			return nil, ErrRateLimited
		}
		return nil, err
	}

	return m.install(resp.Token, resp.User)
}

// Register creates an account and opens a session for it
func (m *Manager) Register(ctx context.Context, params api.RegisterParams) (*Session, error) {
	resp, err := m.api.Register(ctx, params)
	if err != nil {
		return nil, err
	}

	return m.install(resp.Token, resp.User)
}

// Resume restores the session from the stored token. An expired token
// is discarded locally, without a network call; a token the server no
// longer accepts ends the session.
func (m *Manager) Resume(ctx context.Context) (*Session, error) {
	token, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoSession
	}

	if tokenExpired(token) {
		m.logger.Info("Stored token expired, discarding")
		if err := m.store.Clear(); err != nil {
			m.logger.Warn("Failed to clear stored token", zap.Error(err))
		}
		return nil, ErrNoSession
	}

	m.api.SetToken(token)
	user, err := m.api.Me(ctx)
	if err != nil {
		m.Logout()
		return nil, fmt.Errorf("resume session: %w", err)
	}

	return m.install(token, *user)
}

// Logout ends the session and clears the stored token
func (m *Manager) Logout() {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()

	m.api.SetToken("")
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("Failed to clear stored token", zap.Error(err))
	}

	m.logger.Info("Session ended")
	m.notify(nil)
}

func (m *Manager) install(token string, user model.User) (*Session, error) {
	m.api.SetToken(token)
	if err := m.store.Save(token); err != nil {
		m.logger.Warn("Failed to persist token", zap.Error(err))
	}

	session := &Session{Token: token, User: user}

	m.mu.Lock()
	m.session = session
	m.mu.Unlock()

	m.logger.Info("Session established",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))

	m.notify(session)

	copied := *session
	return &copied, nil
}

func (m *Manager) notify(session *Session) {
	m.mu.RLock()
	callbacks := make([]func(*Session), len(m.onChange))
	copy(callbacks, m.onChange)
	m.mu.RUnlock()

	for _, fn := range callbacks {
		fn(session)
	}
}

// tokenExpired inspects the JWT expiry claim without verifying the
// signature - the client has no key, the server stays the authority.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Not a JWT the client can read: let the server decide
		return false
	}

	if claims.ExpiresAt == nil {
		return false
	}

	return claims.ExpiresAt.Before(time.Now())
}
