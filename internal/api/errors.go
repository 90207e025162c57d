package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/kabachok/dropclient/internal/domain"
)

// Error is a non-2xx response from the backend, carrying the decoded
// user-facing message when the body provided one.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Unwrap maps status classes onto the domain error taxonomy so callers can
// use errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return domain.ErrNotAuthenticated
	}
	return domain.ErrServerRejected
}

const maxErrorBodyBytes = 64 << 10

// errorBody covers the message shapes the backend emits: DRF uses "detail",
// the case endpoints use "message", generic handlers use "error".
type errorBody struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Err     string `json:"error"`
}

func (b errorBody) text() string {
	switch {
	case b.Message != "":
		return b.Message
	case b.Detail != "":
		return b.Detail
	default:
		return b.Err
	}
}

// decodeError turns a non-2xx response into an *Error. The body is consumed.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	var body errorBody
	_ = json.Unmarshal(raw, &body)

	return &Error{StatusCode: resp.StatusCode, Message: body.text()}
}

// classifyTransportError maps transport failures onto the domain taxonomy:
// timeouts vs unreachable backend. Context cancellation passes through untouched.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrRequestTimeout, err)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnreachable, err)
	}

	return err
}
