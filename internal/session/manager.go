package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/kabachok/dropclient/internal/api"
	"github.com/kabachok/dropclient/internal/domain"
	"github.com/kabachok/dropclient/internal/logger"
)

// State describes where the manager sits in its lifecycle.
type State string

// Session lifecycle states. The only transition out of Authenticated besides
// logout is a failed refresh exchange, which drops back to Anonymous.
const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Manager maintains exactly one authenticated session or none. It is the
// single writer of session state (including the cached balance): every other
// component reads through it and commits server-confirmed values back through
// it. It also implements api.Credentials, supplying the transport with tokens
// and the single-flight refresh exchange.
type Manager struct {
	api      *api.Client
	store    Store
	validate *validator.Validate

	mu      sync.RWMutex
	session *domain.Session
	state   State

	refreshGroup singleflight.Group
}

// credentialsInput is validated client-side before any network call.
type credentialsInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// registerInput additionally requires a well-formed email.
type registerInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// NewManager creates a session manager talking to the backend at baseURL and
// restores any session the store persisted from a previous run.
func NewManager(baseURL string, timeout time.Duration, store Store) *Manager {
	m := &Manager{
		store:    store,
		validate: validator.New(),
		state:    StateAnonymous,
	}
	m.api = api.NewClient(baseURL, timeout, m)

	if store != nil {
		restored, err := store.Load()
		if err != nil {
			logger.Warn("failed to restore persisted session", "error", err)
		} else if restored != nil {
			m.session = restored
			m.state = StateAuthenticated
		}
	}
	return m
}

// API exposes the authenticated backend client shared by all services.
func (m *Manager) API() *api.Client { return m.api }

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Authenticated reports whether a session currently exists.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session != nil
}

// User returns a copy of the cached user, or nil when anonymous.
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil || m.session.User == nil {
		return nil
	}
	u := *m.session.User
	return &u
}

// Balance returns the cached balance as last confirmed by the server.
func (m *Manager) Balance() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return 0
	}
	return m.session.Balance
}

// Snapshot returns a read-only copy of the whole session, or nil.
func (m *Manager) Snapshot() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil
	}
	s := *m.session
	if m.session.User != nil {
		u := *m.session.User
		s.User = &u
	}
	return &s
}

// Login authenticates, fetches the user profile, and persists the session.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	log := logger.FromContext(ctx)

	if err := m.validate.Struct(credentialsInput{Username: username, Password: password}); err != nil {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	m.setState(StateAuthenticating)

	pair, err := m.api.Login(ctx, username, password)
	if err != nil {
		m.setState(m.currentStateAfterFailure())
		return err
	}

	m.mu.Lock()
	m.session = &domain.Session{
		AccessToken:     pair.Access,
		RefreshToken:    pair.Refresh,
		AccessExpiresAt: accessTokenExpiry(pair.Access),
	}
	m.mu.Unlock()

	user, balance, err := m.api.Me(ctx)
	if err != nil {
		// Half-open session is worse than none: roll back entirely.
		log.Error("failed to fetch profile after login", "error", err)
		m.Teardown()
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	m.mu.Lock()
	m.session.User = user
	m.session.Balance = balance
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.persist(ctx)
	log.Info("logged in", "username", user.Username, "balance", balance)
	return nil
}

// Register creates an account. It never authenticates: the caller must log in
// afterwards, matching the backend's registration flow.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	if err := m.validate.Struct(registerInput{Username: username, Email: email, Password: password}); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return m.api.Register(ctx, username, email, password)
}

// Logout clears all session state unconditionally. Idempotent.
func (m *Manager) Logout(ctx context.Context) {
	logger.FromContext(ctx).Info("logging out")
	m.Teardown()
}

// Teardown drops the in-memory session and the persisted copy. Called on
// logout and on irrecoverable refresh failure.
func (m *Manager) Teardown() {
	m.mu.Lock()
	m.session = nil
	m.state = StateAnonymous
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			logger.Warn("failed to clear persisted session", "error", err)
		}
	}
}

// AttachCredentials decorates an outbound request with the current access
// token if a session exists; no-op otherwise.
func (m *Manager) AttachCredentials(req *http.Request) {
	if tok := m.AccessToken(); tok != "" {
		req.Header.Set(api.HeaderAuthorization, api.BearerPrefix+tok)
	}
}

// AccessToken implements api.Credentials.
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return ""
	}
	return m.session.AccessToken
}

// RefreshAccess implements api.Credentials: exchange the refresh token for a
// new access token. Concurrent callers collapse onto a single backend call
// via singleflight; all of them observe the same outcome. Any failure tears
// the session down.
func (m *Manager) RefreshAccess(ctx context.Context) (string, error) {
	tok, err, _ := m.refreshGroup.Do(refreshGroupKey, func() (any, error) {
		return m.doRefresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return tok.(string), nil
}

func (m *Manager) doRefresh(ctx context.Context) (string, error) {
	log := logger.FromContext(ctx)

	m.mu.RLock()
	var refreshToken string
	if m.session != nil {
		refreshToken = m.session.RefreshToken
	}
	m.mu.RUnlock()

	if refreshToken == "" {
		m.Teardown()
		return "", domain.ErrNotAuthenticated
	}

	access, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		log.Warn("refresh exchange failed, tearing down session", "error", err)
		m.Teardown()
		return "", err
	}

	m.mu.Lock()
	if m.session != nil {
		m.session.AccessToken = access
		m.session.AccessExpiresAt = accessTokenExpiry(access)
	}
	m.mu.Unlock()

	m.persist(ctx)
	log.Debug("access token refreshed")
	return access, nil
}

// CommitBalance records a server-confirmed balance. This is the only write
// path for the displayed balance; callers pass values straight from backend
// responses, never locally computed deltas.
func (m *Manager) CommitBalance(ctx context.Context, newBalance int) {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}
	m.session.Balance = newBalance
	m.mu.Unlock()

	m.persist(ctx)
	logger.FromContext(ctx).Debug("balance committed", "balance", newBalance)
}

// NeedsRefresh reports whether the access token is at or past its expiry
// margin. Advisory only; the 401 protocol remains the source of truth.
func (m *Manager) NeedsRefresh() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil || m.session.AccessExpiresAt.IsZero() {
		return false
	}
	return time.Until(m.session.AccessExpiresAt) <= RefreshExpiryMargin
}

// persist writes the current session to the store, if any.
func (m *Manager) persist(ctx context.Context) {
	if m.store == nil {
		return
	}
	snapshot := m.Snapshot()
	if snapshot == nil {
		return
	}
	if err := m.store.Save(snapshot); err != nil {
		logger.FromContext(ctx).Warn("failed to persist session", "error", err)
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// currentStateAfterFailure keeps an existing session authenticated when a
// re-login attempt fails, and anonymous otherwise.
func (m *Manager) currentStateAfterFailure() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session != nil {
		return StateAuthenticated
	}
	return StateAnonymous
}

// accessTokenExpiry reads the exp claim without verifying the signature; the
// client only uses it for display and advisory refresh checks.
func accessTokenExpiry(accessToken string) time.Time {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(DefaultAccessTokenLifetime)
}
