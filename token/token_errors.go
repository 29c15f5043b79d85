package token

import "github.com/pkg/errors"

// Verification failures are reported as one of these kinds so callers can
// log precisely without leaking internals to end users.
var (
	MalformedTokenErr = errors.New("malformed token")
	BadSignatureErr   = errors.New("bad token signature")
	ExpiredTokenErr   = errors.New("token expired")
	BadIssuerErr      = errors.New("bad token issuer")
	BadAudienceErr    = errors.New("bad token audience")
)
