package auth

import (
	"time"

	"github.com/jrsteele09/go-credential-guard/auth/sessions"
)

// State is the terminal state of one authentication attempt.
type State string

const (
	StateSuccess State = "success"
	StateFail    State = "fail"
)

// FailureReason classifies a failed attempt. The HTTP layer maps these to
// transport responses (rate_limited → 429, invalid_credentials → 401,
// authentication_unavailable → 503); the mapping is a caller concern.
type FailureReason string

const (
	ReasonRateLimited        FailureReason = "rate_limited"
	ReasonInvalidCredentials FailureReason = "invalid_credentials"
	ReasonUnavailable        FailureReason = "authentication_unavailable"
)

// Result is the outcome of Guard.Authenticate. Expected failures are
// values, not errors: callers branch on State and Reason.
type Result struct {
	State         State
	Reason        FailureReason    // set when State == StateFail
	RetryAfter    time.Duration    // set when Reason == ReasonRateLimited
	Session       *sessions.Session // set when State == StateSuccess
	Token         string            // signed token, set when State == StateSuccess
	CorrelationID string            // set when Reason == ReasonUnavailable; matches the log entry
}

// Success reports whether the attempt reached the SUCCESS terminal state.
func (r *Result) Success() bool {
	return r.State == StateSuccess
}

// Err maps a failed result to its sentinel error, for callers that prefer
// errors.Is over branching on Reason. Returns nil for a success.
func (r *Result) Err() error {
	switch r.Reason {
	case ReasonRateLimited:
		return RateLimitedErr
	case ReasonInvalidCredentials:
		return InvalidCredentialsErr
	case ReasonUnavailable:
		return ServiceUnavailableErr
	}
	return nil
}
