package opening

import "time"

// Reveal sequence geometry. The strip is long enough to scroll convincingly
// and the winning slot sits past the midpoint so deceleration lands on it.
const (
	SequenceLength = 51
	RevealIndex    = 30
)

// SpinDuration is how long the reveal animation runs before the outcome is
// committed to the visible session state.
const SpinDuration = 3 * time.Second

// ResultDisplayDuration is how long the result panel stays up before
// auto-dismissing.
const ResultDisplayDuration = 5 * time.Second

// Error message constants.
const (
	ErrMsgOpenFailed = "failed to open case"
	ErrMsgCaseLookup = "failed to load case"
)
