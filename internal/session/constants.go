package session

import "time"

// SessionFileName is the durable session file inside the state directory.
const SessionFileName = "session.json"

// DefaultAccessTokenLifetime is assumed when the access token carries no
// parseable exp claim.
const DefaultAccessTokenLifetime = 15 * time.Minute

// RefreshExpiryMargin is how close to expiry the access token may get before
// NeedsRefresh reports true.
const RefreshExpiryMargin = time.Minute

// refreshGroupKey is the singleflight key for the refresh exchange: all
// concurrent 401-triggered refreshes collapse onto one backend call.
const refreshGroupKey = "refresh"
