package api

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/kabachok/dropclient/internal/logger"
)

// Credentials is the session manager's surface seen by the transport: the
// current access token and the refresh exchange. RefreshAccess must be safe
// for concurrent use and is expected to tear the session down itself when the
// exchange fails.
type Credentials interface {
	AccessToken() string
	RefreshAccess(ctx context.Context) (string, error)
}

type retryCountKey struct{}

// withRetryCount records how many times this logical request has been
// re-issued after a 401. The counter rides on the request context rather than
// on a mutable request field, so the retry bound is explicit per attempt.
func withRetryCount(ctx context.Context, n int) context.Context {
	return context.WithValue(ctx, retryCountKey{}, n)
}

func retryCount(ctx context.Context) int {
	if n, ok := ctx.Value(retryCountKey{}).(int); ok {
		return n
	}
	return 0
}

// authTransport decorates outbound requests with the current access token and
// runs the one-shot refresh-and-retry protocol on 401 responses.
type authTransport struct {
	base  http.RoundTripper
	creds Credentials
}

func newAuthTransport(base http.RoundTripper, creds Credentials) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, creds: creds}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(req.Context())
	if tok := t.creds.AccessToken(); tok != "" {
		out.Header.Set(HeaderAuthorization, BearerPrefix+tok)
	}

	resp, err := t.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// A 401 from the credential-exchange endpoints themselves is final.
	if refreshExempt(req.URL.Path) {
		return resp, nil
	}

	if retryCount(req.Context()) >= MaxUnauthorizedRetries {
		return resp, nil
	}

	if _, refreshErr := t.creds.RefreshAccess(req.Context()); refreshErr != nil {
		// Session already torn down by the credential source; surface the
		// original unauthorized response to the caller.
		logger.FromContext(req.Context()).Warn("token refresh failed, surfacing original 401", "error", refreshErr)
		return resp, nil
	}

	drainAndClose(resp.Body)

	retry := req.Clone(withRetryCount(req.Context(), retryCount(req.Context())+1))
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}

	// Re-enter so the fresh token is attached and the bound is re-checked.
	logger.FromContext(req.Context()).Debug("retrying request after token refresh", "path", req.URL.Path)
	return t.RoundTrip(retry)
}

// refreshExempt reports whether the path belongs to the credential-exchange
// endpoints, which never participate in the refresh-and-retry protocol.
func refreshExempt(path string) bool {
	for _, p := range refreshExemptPaths {
		if strings.HasSuffix(path, p) {
			return true
		}
	}
	return false
}

// drainAndClose discards a response body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxErrorBodyBytes))
	_ = body.Close()
}
