package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kabachok/dropclient/internal/domain"
	"github.com/kabachok/dropclient/internal/logger"
)

// Client is the typed HTTP client for the KabachokDrop backend. All economic
// truth (rewards, balances) comes from the responses it returns; the client
// never computes settlements locally.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a client for the backend at baseURL. When creds is
// non-nil every request is decorated with the current access token and the
// one-shot 401 refresh-and-retry protocol.
func NewClient(baseURL string, timeout time.Duration, creds Credentials) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if creds != nil {
		transport = newAuthTransport(http.DefaultTransport, creds)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// registerRequest mirrors POST /auth/register/.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest mirrors POST /auth/login/.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// refreshRequest mirrors POST /auth/refresh/.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// refreshResponse carries the renewed access token.
type refreshResponse struct {
	Access string `json:"access"`
}

// meResponse is the current user with the embedded profile balance.
type meResponse struct {
	ID       int            `json:"id"`
	Username string         `json:"username"`
	Email    string         `json:"email"`
	Profile  domain.Profile `json:"profile"`
}

// depositRequest mirrors POST /profile/deposit/.
type depositRequest struct {
	Amount int `json:"amount"`
}

// Register creates a new account. It does not authenticate; callers must log
// in afterwards. A conflicting username maps to domain.ErrUsernameTaken.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	err := c.do(ctx, http.MethodPost, PathRegister, registerRequest{Username: username, Email: email, Password: password}, nil)
	var apiErr *Error
	if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusBadRequest || apiErr.StatusCode == http.StatusConflict) {
		return fmt.Errorf("%w: %s", domain.ErrUsernameTaken, username)
	}
	return err
}

// Login exchanges credentials for an access/refresh token pair.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	var pair domain.TokenPair
	err := c.do(ctx, http.MethodPost, PathLogin, loginRequest{Username: username, Password: password}, &pair)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Refresh exchanges a refresh token for a new access token. Every backend
// rejection maps to domain.ErrRefreshExpired: a refused refresh always means
// the session is no longer renewable.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, error) {
	var resp refreshResponse
	err := c.do(ctx, http.MethodPost, PathRefresh, refreshRequest{Refresh: refreshToken}, &resp)
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return "", fmt.Errorf("%w: %s", domain.ErrRefreshExpired, apiErr.Message)
	}
	if err != nil {
		return "", err
	}
	return resp.Access, nil
}

// Me fetches the current user and the profile balance embedded in it.
func (c *Client) Me(ctx context.Context) (*domain.User, int, error) {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, PathMe, nil, &resp); err != nil {
		return nil, 0, err
	}
	user := &domain.User{ID: resp.ID, Username: resp.Username, Email: resp.Email}
	return user, resp.Profile.Balance, nil
}

// Cases fetches the active case catalog.
func (c *Client) Cases(ctx context.Context) ([]domain.Case, error) {
	var cases []domain.Case
	if err := c.do(ctx, http.MethodGet, PathCases, nil, &cases); err != nil {
		return nil, err
	}
	return cases, nil
}

// Case fetches a single case by ID.
func (c *Client) Case(ctx context.Context, caseID int) (*domain.Case, error) {
	var cs domain.Case
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s%d/", PathCases, caseID), nil, &cs)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", domain.ErrCaseNotFound, caseID)
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

// OpenCase issues the authoritative open transaction for a case. The returned
// result is the only source of truth for the reward and the new balance.
func (c *Client) OpenCase(ctx context.Context, caseID int) (*domain.OpenResult, error) {
	var result domain.OpenResult
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s%d/open/", PathCases, caseID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile fetches the current balance.
func (c *Client) Profile(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.do(ctx, http.MethodGet, PathProfile, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Deposit credits coins to the account. The server is authoritative on the
// ceiling and the resulting balance.
func (c *Client) Deposit(ctx context.Context, amount int) (*domain.BalanceUpdate, error) {
	var update domain.BalanceUpdate
	if err := c.do(ctx, http.MethodPost, PathDeposit, depositRequest{Amount: amount}, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// Inventory fetches the full inventory.
func (c *Client) Inventory(ctx context.Context) ([]domain.InventoryEntry, error) {
	var entries []domain.InventoryEntry
	if err := c.do(ctx, http.MethodGet, PathInventory, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SellItem liquidates one unit of an inventory entry.
func (c *Client) SellItem(ctx context.Context, entryID int) (*domain.BalanceUpdate, error) {
	var update domain.BalanceUpdate
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s%d/sell/", PathInventory, entryID), nil, &update)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %d", domain.ErrEntryNotFound, entryID)
	}
	if err != nil {
		return nil, err
	}
	return &update, nil
}

// do performs one JSON request/response cycle against the backend.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	log := logger.FromContext(ctx)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	if body != nil {
		req.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if id, ok := logger.RequestIDFromContext(ctx); ok {
		req.Header.Set(HeaderRequestID, id)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Warn("request failed", "method", method, "path", path, "error", err)
		return classifyTransportError(err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(resp)
		log.Debug("backend rejected request", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
