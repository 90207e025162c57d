package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kabachok/dropclient/internal/domain"
)

// fakeCreds implements Credentials with programmable refresh behavior.
type fakeCreds struct {
	mu           sync.Mutex
	token        string
	refreshToken string
	refreshErr   error
	refreshCalls int
}

func (f *fakeCreds) AccessToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeCreds) RefreshAccess(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshCalls++
	if f.refreshErr != nil {
		f.token = ""
		return "", f.refreshErr
	}
	f.token = f.refreshToken
	return f.token, nil
}

func (f *fakeCreds) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.refreshCalls
}

func newTestClient(t *testing.T, handler http.Handler, creds Credentials) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, creds)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	r := chi.NewRouter()
	r.Get("/profile/", func(w http.ResponseWriter, req *http.Request) {
		gotAuth = req.Header.Get(HeaderAuthorization)
		_ = json.NewEncoder(w).Encode(domain.Profile{Balance: 100})
	})

	client := newTestClient(t, r, &fakeCreds{token: "tok-1"})

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100, profile.Balance)
	assert.Equal(t, BearerPrefix+"tok-1", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var sawHeader bool
	r := chi.NewRouter()
	r.Get("/cases/", func(w http.ResponseWriter, req *http.Request) {
		sawHeader = req.Header.Get(HeaderAuthorization) != ""
		_ = json.NewEncoder(w).Encode([]domain.Case{})
	})

	client := newTestClient(t, r, &fakeCreds{})

	_, err := client.Cases(context.Background())
	require.NoError(t, err)
	assert.False(t, sawHeader, "anonymous requests must carry no credential header")
}

func TestClient_RefreshAndRetryOnce(t *testing.T) {
	var mu sync.Mutex
	var authHeaders []string
	r := chi.NewRouter()
	r.Get("/profile/", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, req.Header.Get(HeaderAuthorization))
		attempt := len(authHeaders)
		mu.Unlock()
		if attempt == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Profile{Balance: 42})
	})

	creds := &fakeCreds{token: "stale", refreshToken: "fresh"}
	client := newTestClient(t, r, creds)

	profile, err := client.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, profile.Balance)
	assert.Equal(t, 1, creds.calls(), "exactly one refresh per 401")
	require.Len(t, authHeaders, 2)
	assert.Equal(t, BearerPrefix+"stale", authHeaders[0])
	assert.Equal(t, BearerPrefix+"fresh", authHeaders[1])
}

func TestClient_SecondUnauthorizedDoesNotLoop(t *testing.T) {
	var mu sync.Mutex
	requests := 0
	r := chi.NewRouter()
	r.Get("/profile/", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	})

	creds := &fakeCreds{token: "stale", refreshToken: "fresh"}
	client := newTestClient(t, r, creds)

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, requests, "bounded retry: original plus exactly one retry")
	assert.Equal(t, 1, creds.calls())
}

func TestClient_RefreshFailureSurfacesOriginalError(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/profile/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	creds := &fakeCreds{token: "stale", refreshErr: domain.ErrRefreshExpired}
	client := newTestClient(t, r, creds)

	_, err := client.Profile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated, "caller sees the original unauthorized error")
	assert.Equal(t, 1, creds.calls())
}

func TestClient_LoginRejectionDoesNotTriggerRefresh(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/login/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No active account found"})
	})

	creds := &fakeCreds{refreshToken: "fresh"}
	client := newTestClient(t, r, creds)

	_, err := client.Login(context.Background(), "kabachok", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Equal(t, 0, creds.calls(), "auth endpoints are exempt from refresh-and-retry")
}

func TestClient_MeIsNotRefreshExempt(t *testing.T) {
	var mu sync.Mutex
	attempts := 0
	r := chi.NewRouter()
	r.Get("/auth/me/", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		attempts++
		first := attempts == 1
		mu.Unlock()
		if first {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "username": "kabachok", "profile": map[string]int{"balance": 5},
		})
	})

	creds := &fakeCreds{token: "stale", refreshToken: "fresh"}
	client := newTestClient(t, r, creds)

	user, balance, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "kabachok", user.Username)
	assert.Equal(t, 5, balance)
	assert.Equal(t, 1, creds.calls(), "an expired token on /auth/me/ refreshes like any other endpoint")
}

func TestClient_RegisterConflict(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/register/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "A user with that username already exists."})
	})

	client := newTestClient(t, r, &fakeCreds{})

	err := client.Register(context.Background(), "taken", "a@b.c", "pw")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestClient_RefreshEndpointMapsToRefreshExpired(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/auth/refresh/", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Token is invalid or expired"})
	})

	client := newTestClient(t, r, &fakeCreds{})

	_, err := client.Refresh(context.Background(), "dead-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRefreshExpired)
}

func TestClient_OpenCaseDecodesResult(t *testing.T) {
	newBalance := 50
	r := chi.NewRouter()
	r.Post("/cases/{id}/open/", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "3", chi.URLParam(req, "id"))
		_ = json.NewEncoder(w).Encode(domain.OpenResult{
			Success:    true,
			Message:    "🎉 Opened the case!",
			Reward:     &domain.RewardItem{ID: 7, Name: "Pumpkin", Emoji: "🎃", Rarity: domain.RarityLegendary, Price: 500},
			NewBalance: &newBalance,
		})
	})

	client := newTestClient(t, r, &fakeCreds{token: "tok"})

	result, err := client.OpenCase(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Reward)
	assert.Equal(t, "Pumpkin", result.Reward.Name)
	require.NotNil(t, result.NewBalance)
	assert.Equal(t, 50, *result.NewBalance)
}

func TestClient_BackendUnreachable(t *testing.T) {
	// Reserve a port and close it so nothing is listening.
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, &fakeCreds{})

	_, err := client.Cases(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendUnreachable)
}

func TestClient_PostBodyReplayedOnRetry(t *testing.T) {
	var mu sync.Mutex
	var bodies []depositRequest
	r := chi.NewRouter()
	r.Post("/profile/deposit/", func(w http.ResponseWriter, req *http.Request) {
		var body depositRequest
		_ = json.NewDecoder(req.Body).Decode(&body)
		mu.Lock()
		bodies = append(bodies, body)
		attempt := len(bodies)
		mu.Unlock()
		if attempt == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.BalanceUpdate{Message: "ok", NewBalance: 600})
	})

	creds := &fakeCreds{token: "stale", refreshToken: "fresh"}
	client := newTestClient(t, r, creds)

	update, err := client.Deposit(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, 600, update.NewBalance)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 2)
	assert.Equal(t, 500, bodies[0].Amount, "original body")
	assert.Equal(t, 500, bodies[1].Amount, "replayed body after refresh")
}

func TestErrorUnwrapTaxonomy(t *testing.T) {
	unauthorized := &Error{StatusCode: http.StatusUnauthorized, Message: "nope"}
	assert.True(t, errors.Is(unauthorized, domain.ErrNotAuthenticated))

	rejected := &Error{StatusCode: http.StatusBadRequest, Message: "bad"}
	assert.True(t, errors.Is(rejected, domain.ErrServerRejected))
}
