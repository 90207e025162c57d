package api

// HTTP header names and values
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderRequestID     = "X-Request-ID"

	BearerPrefix    = "Bearer "
	ContentTypeJSON = "application/json"
)

// Endpoint paths (relative to the API base URL)
const (
	PathRegister  = "/auth/register/"
	PathLogin     = "/auth/login/"
	PathRefresh   = "/auth/refresh/"
	PathMe        = "/auth/me/"
	PathCases     = "/cases/"
	PathProfile   = "/profile/"
	PathDeposit   = "/profile/deposit/"
	PathInventory = "/inventory/"
)

// refreshExemptPaths are the endpoints where a 401 is final: login rejections
// must not trigger a refresh and the refresh call must not recurse. Note
// /auth/me/ is NOT exempt; it is an ordinary authenticated endpoint.
var refreshExemptPaths = []string{PathRegister, PathLogin, PathRefresh}

// MaxUnauthorizedRetries bounds the refresh-and-retry protocol: a request is
// re-issued at most once after a 401.
const MaxUnauthorizedRetries = 1
