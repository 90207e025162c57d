package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Auth errors
	ErrMsgInvalidCredentials = "invalid username or password"
	ErrMsgUsernameTaken      = "username is already taken"
	ErrMsgRefreshExpired     = "refresh token expired"
	ErrMsgNotAuthenticated   = "not authenticated"

	// Validation errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid deposit amount"
	ErrMsgInvalidInput      = "invalid input"

	// Network errors
	ErrMsgBackendUnreachable = "backend unreachable"
	ErrMsgRequestTimeout     = "request timed out"

	// Server errors
	ErrMsgServerRejected = "request rejected by server"

	// Case errors
	ErrMsgCaseNotFound   = "case not found"
	ErrMsgOpenInProgress = "a case open is already in progress"

	// Inventory errors
	ErrMsgEntryNotFound = "inventory entry not found"
)

// Common domain errors
// These errors should be used consistently across all layers of the client.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Auth errors
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUsernameTaken      = errors.New(ErrMsgUsernameTaken)
	ErrRefreshExpired     = errors.New(ErrMsgRefreshExpired)
	ErrNotAuthenticated   = errors.New(ErrMsgNotAuthenticated)

	// Validation errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)

	// Network errors
	ErrBackendUnreachable = errors.New(ErrMsgBackendUnreachable)
	ErrRequestTimeout     = errors.New(ErrMsgRequestTimeout)

	// Server errors
	ErrServerRejected = errors.New(ErrMsgServerRejected)

	// Case errors
	ErrCaseNotFound   = errors.New(ErrMsgCaseNotFound)
	ErrOpenInProgress = errors.New(ErrMsgOpenInProgress)

	// Inventory errors
	ErrEntryNotFound = errors.New(ErrMsgEntryNotFound)
)
