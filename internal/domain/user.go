package domain

import "time"

// User identifies an authenticated account.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Profile carries the account's coin balance as last reported by the backend.
type Profile struct {
	Balance int `json:"balance"`
}

// Session is the client-held authenticated identity: token pair plus the
// cached user and balance. Owned exclusively by the session manager; every
// balance value stored here originates from a server response.
type Session struct {
	AccessToken     string    `json:"access_token"`
	RefreshToken    string    `json:"refresh_token"`
	AccessExpiresAt time.Time `json:"access_expires_at,omitzero"`
	User            *User     `json:"user,omitempty"`
	Balance         int       `json:"balance"`
}

// TokenPair is the access/refresh pair returned by the login endpoint.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
