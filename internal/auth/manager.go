package auth

import (
	"context"
	"log/slog"
	"sync"

	"symptalyze/internal/models"
	"symptalyze/internal/storage"
)

// Navigation sources, recording how the active session was established.
const (
	SourceLogin  = "login"
	SourceSignup = "signup"
)

// Result is the outcome of a signup or login attempt. Message is set only
// on rejection and is safe to show to the user.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

const (
	msgDuplicateEmail     = "Email already registered"
	msgInvalidCredentials = "Invalid credentials"
)

// Manager owns the registered-user registry and the single active session,
// persisted through the storage adapter and rehydrated at construction.
// Construct exactly one per process and hand it to every consumer.
//
// The logical model is one local profile (this service fronts one
// household's tracker), but handlers run on concurrent goroutines, so all
// state is mutex-guarded.
type Manager struct {
	mu      sync.RWMutex
	adapter *storage.Adapter
	log     *slog.Logger

	users   []models.User
	current *models.User
	source  string
}

// NewManager loads the persisted registry and session. If any of the three
// persisted values fails to parse, or the stored current user is not an
// element of the registry, all three are discarded and their keys cleared:
// a partial recovery could leave a session pointing at a registry that
// failed to load.
func NewManager(ctx context.Context, adapter *storage.Adapter, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	m := &Manager{adapter: adapter, log: log}
	m.rehydrate(ctx)
	return m
}

func (m *Manager) rehydrate(ctx context.Context) {
	var (
		users   []models.User
		current models.User
		source  string
	)
	_, usersErr := m.adapter.LoadKey(ctx, storage.KeyUsers, &users)
	currentFound, currentErr := m.adapter.LoadKey(ctx, storage.KeyCurrentUser, &current)
	sourceFound, sourceErr := m.adapter.LoadKey(ctx, storage.KeyNavigationSource, &source)

	corrupt := usersErr != nil || currentErr != nil || sourceErr != nil
	if !corrupt && sourceFound && source != SourceLogin && source != SourceSignup {
		corrupt = true
	}
	if !corrupt && currentFound && findByEmail(users, current.Email) == nil {
		// Dangling session reference; same treatment as a parse failure.
		corrupt = true
	}
	if corrupt {
		m.log.Error("persisted auth state unreadable, resetting",
			slog.Any("usersErr", usersErr),
			slog.Any("currentUserErr", currentErr),
			slog.Any("navigationSourceErr", sourceErr))
		for _, key := range []string{storage.KeyUsers, storage.KeyCurrentUser, storage.KeyNavigationSource} {
			if err := m.adapter.RemoveKey(ctx, key); err != nil {
				m.log.Error("could not clear auth key", slog.String("key", key), slog.Any("err", err))
			}
		}
		return
	}

	m.users = users
	if currentFound {
		m.current = &current
	}
	if sourceFound {
		m.source = source
	}
}

// Signup registers a new user and makes them the current user. The email
// must not already be in the registry; comparison is a case-sensitive
// exact match, matching the stored key format.
func (m *Manager) Signup(ctx context.Context, newUser models.User) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	if findByEmail(m.users, newUser.Email) != nil {
		return Result{Success: false, Message: msgDuplicateEmail}
	}
	m.users = append(m.users, newUser)
	m.current = &newUser
	m.source = SourceSignup
	m.persistUsers(ctx)
	m.persistSession(ctx)
	return Result{Success: true}
}

// Login makes the matching registry entry the current user. It never
// mutates the registry.
func (m *Manager) Login(ctx context.Context, email, password string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := findByEmail(m.users, email)
	if found == nil || found.Password != password {
		return Result{Success: false, Message: msgInvalidCredentials}
	}
	user := *found
	m.current = &user
	m.source = SourceLogin
	m.persistSession(ctx)
	return Result{Success: true}
}

// Logout clears the current user and navigation source. Idempotent.
// Per-user journal data is keyed by email and survives logout.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = nil
	m.source = ""
	m.persistSession(ctx)
}

// CurrentUser returns a copy of the active user, or nil when logged out.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	user := *m.current
	return &user
}

// Users returns a copy of the registry in insertion order.
func (m *Manager) Users() []models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.User, len(m.users))
	copy(out, m.users)
	return out
}

// NavigationSource reports how the active session was established:
// SourceLogin, SourceSignup, or "" when logged out.
func (m *Manager) NavigationSource() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.source
}

// persistUsers and persistSession log write failures and move on: the
// in-memory state is already updated and the app keeps running on it.
func (m *Manager) persistUsers(ctx context.Context) {
	if err := m.adapter.SaveKey(ctx, storage.KeyUsers, m.users); err != nil {
		m.log.Error("could not persist users registry", slog.Any("err", err))
	}
}

func (m *Manager) persistSession(ctx context.Context) {
	if m.current == nil {
		if err := m.adapter.RemoveKey(ctx, storage.KeyCurrentUser); err != nil {
			m.log.Error("could not clear current user", slog.Any("err", err))
		}
		if err := m.adapter.RemoveKey(ctx, storage.KeyNavigationSource); err != nil {
			m.log.Error("could not clear navigation source", slog.Any("err", err))
		}
		return
	}
	if err := m.adapter.SaveKey(ctx, storage.KeyCurrentUser, m.current); err != nil {
		m.log.Error("could not persist current user", slog.Any("err", err))
	}
	if err := m.adapter.SaveKey(ctx, storage.KeyNavigationSource, m.source); err != nil {
		m.log.Error("could not persist navigation source", slog.Any("err", err))
	}
}

func findByEmail(users []models.User, email string) *models.User {
	for i := range users {
		if users[i].Email == email {
			return &users[i]
		}
	}
	return nil
}
