// Package auth implements the local session gate: login, logout, and
// rehydration of a persisted session, plus the guard commands use to protect
// authenticated operations.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/datafoundry/bazaar/internal/common"
	"github.com/datafoundry/bazaar/internal/model"
	"github.com/datafoundry/bazaar/internal/service"
)

// Storage keys for the persisted session.
const (
	KeyAuthenticated = "isAuthenticated"
	KeyUser          = "user"
)

// Status is the session lifecycle state.
type Status string

// Session states. Loading exists only during startup rehydration.
const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// Authenticator verifies a credential pair. Production deployments delegate
// to an identity provider; the shipped static authenticator covers demo use.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// Manager owns the session state. It is the single process-wide owner; all
// mutation goes through Login, Logout, and Rehydrate.
type Manager struct {
	store         service.KeyValueStore
	authenticator Authenticator
	user          *model.User
	status        Status
	mu            sync.Mutex
}

// NewManager creates a session manager in the Loading state. Call Rehydrate
// before anything else.
func NewManager(store service.KeyValueStore, authenticator Authenticator) *Manager {
	return &Manager{
		store:         store,
		authenticator: authenticator,
		status:        StatusLoading,
	}
}

// Rehydrate restores a persisted session. A missing or partial session
// leaves the manager unauthenticated; a corrupt user record clears both keys
// and resets to a safe logged-out default rather than propagating the parse
// failure.
func (m *Manager) Rehydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	flag, ok, err := m.store.Get(ctx, KeyAuthenticated)
	if err != nil {
		return fmt.Errorf("failed to read session flag: %w", err)
	}

	userData, hasUser, err := m.store.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("failed to read session user: %w", err)
	}

	if !ok || flag != "true" || !hasUser {
		m.status = StatusUnauthenticated
		m.user = nil
		return nil
	}

	var user model.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		slog.Warn("Discarding corrupt session data",
			"error", fmt.Errorf("%w: %v", common.ErrCorruptSession, err))
		m.clearLocked(ctx)
		return nil
	}

	m.status = StatusAuthenticated
	m.user = &user
	slog.Debug("Session restored", "username", user.Username)

	return nil
}

// Login verifies the credentials and, on success, persists the session and
// transitions to Authenticated. A rejected credential pair leaves the state
// unchanged.
func (m *Manager) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := m.authenticator.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session user: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, KeyAuthenticated, "true"); err != nil {
		return nil, fmt.Errorf("failed to persist session flag: %w", err)
	}
	if err := m.store.Set(ctx, KeyUser, string(encoded)); err != nil {
		return nil, fmt.Errorf("failed to persist session user: %w", err)
	}

	m.status = StatusAuthenticated
	m.user = user
	slog.Info("User logged in", "username", user.Username)

	return user, nil
}

// Logout clears the in-memory and persisted session.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	username := ""
	if m.user != nil {
		username = m.user.Username
	}

	m.clearLocked(ctx)
	slog.Info("User logged out", "username", username)
}

// Status returns the current session state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.user
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	return m.Status() == StatusAuthenticated
}

// RequireAuth is the gate protected operations call before doing anything.
// It returns a user-facing error when no session exists.
func (m *Manager) RequireAuth() error {
	switch m.Status() {
	case StatusAuthenticated:
		return nil
	case StatusLoading:
		return common.NewUserError("session is still loading", common.ErrNotAuthenticated)
	default:
		return common.NewUserError("please log in first with 'bazaar login'", common.ErrNotAuthenticated)
	}
}

func (m *Manager) clearLocked(ctx context.Context) {
	if err := m.store.Delete(ctx, KeyAuthenticated); err != nil {
		slog.Warn("Failed to clear session flag", "error", err)
	}
	if err := m.store.Delete(ctx, KeyUser); err != nil {
		slog.Warn("Failed to clear session user", "error", err)
	}

	m.status = StatusUnauthenticated
	m.user = nil
}
