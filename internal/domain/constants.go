package domain

// Deposit bounds enforced client-side before any network call.
// The backend is authoritative on the actual ceiling.
const (
	DepositMin = 1
	DepositMax = 5000
)
