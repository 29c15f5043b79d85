package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// resetAudienceSuffix scopes password-reset tokens to their own audience so
// a reset token can never pass verification as a session token.
const resetAudienceSuffix = ":reset"

// Claims is the verified payload of an issued token.
type Claims struct {
	Subject    string
	Issuer     string
	Audience   string
	TokenID    string // jti, for revocation lists and log correlation
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Attributes map[string]any // non-registered claims carried by the token
}

// reservedClaims are always set by the issuer and can never be overridden
// through caller-supplied attributes. The signing key is held by the Signer
// and is never part of the payload.
var reservedClaims = map[string]struct{}{
	"iss": {}, "aud": {}, "sub": {}, "iat": {}, "exp": {}, "jti": {},
}

// Issuer creates and verifies signed, time-bounded tokens. Tokens are
// stateless: verification needs only the signature, not storage.
//
// The signing key is loaded once at startup and treated as immutable;
// rotating it invalidates all previously issued tokens. That is a known
// limitation of the symmetric single-key design.
type Issuer struct {
	signer   Signer
	issuer   string
	audience string
	nowTime  func() time.Time // injectable for testing
}

// IssuerOption defines a function type to modify the Issuer instance.
type IssuerOption func(*Issuer)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.nowTime = nowFunc
	}
}

// NewIssuer initializes an Issuer with the given signer and the issuer and
// audience tags stamped into every token.
func NewIssuer(signer Signer, issuer, audience string, options ...IssuerOption) (*Issuer, error) {
	if signer == nil {
		return nil, errors.New("[NewIssuer] signer is required")
	}
	if issuer == "" || audience == "" {
		return nil, errors.New("[NewIssuer] issuer and audience are required")
	}

	tokenIssuer := &Issuer{
		signer:   signer,
		issuer:   issuer,
		audience: audience,
		nowTime:  time.Now,
	}

	for _, opt := range options {
		opt(tokenIssuer)
	}

	return tokenIssuer, nil
}

// Issue creates a signed token for the subject, expiring after ttl.
// Attributes are carried as additional claims; reserved claims are ignored
// if present in the attribute map.
func (i *Issuer) Issue(subjectID string, attributes map[string]any, ttl time.Duration) (string, error) {
	return i.issue(i.audience, subjectID, attributes, ttl)
}

// IssueReset creates a signed password-reset token. Reset tokens carry a
// dedicated audience and are rejected by Verify.
func (i *Issuer) IssueReset(subjectID string, ttl time.Duration) (string, error) {
	return i.issue(i.audience+resetAudienceSuffix, subjectID, nil, ttl)
}

func (i *Issuer) issue(audience, subjectID string, attributes map[string]any, ttl time.Duration) (string, error) {
	if subjectID == "" {
		return "", errors.New("[Issuer.Issue] subject is required")
	}
	if ttl <= 0 {
		return "", errors.New("[Issuer.Issue] ttl must be positive")
	}

	now := i.nowTime()
	claims := jwtlib.MapClaims{
		"iss": i.issuer,
		"aud": audience,
		"sub": subjectID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.New().String(),
	}

	for name, value := range attributes {
		if _, reserved := reservedClaims[name]; reserved {
			continue
		}
		claims[name] = value
	}

	signedToken, err := i.signer.Sign(claims)
	if err != nil {
		return "", errors.Wrap(err, "[Issuer.Issue] signer.Sign")
	}
	return signedToken, nil
}

// Verify parses a raw token and validates it. Checks run in a fixed order:
// signature (with the signing algorithm pinned to the configured method),
// expiry, issuer, then audience. The returned error is always one of the
// kinds declared in token_errors.go.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	return i.verify(raw, i.audience)
}

// VerifyReset validates a password-reset token.
func (i *Issuer) VerifyReset(raw string) (*Claims, error) {
	return i.verify(raw, i.audience+resetAudienceSuffix)
}

func (i *Issuer) verify(raw, wantAudience string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(raw, jwtlib.MapClaims{}, i.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{i.signer.GetSigningMethod().Alg()}),
		jwtlib.WithoutClaimsValidation(), // expiry, issuer and audience checked in order below
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenMalformed):
			return nil, MalformedTokenErr
		default:
			return nil, BadSignatureErr
		}
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, MalformedTokenErr
	}

	claims, ok := extractClaims(mapClaims)
	if !ok {
		return nil, MalformedTokenErr
	}

	if i.nowTime().After(claims.ExpiresAt) {
		return nil, ExpiredTokenErr
	}
	if claims.Issuer != i.issuer {
		return nil, BadIssuerErr
	}
	if claims.Audience != wantAudience {
		return nil, BadAudienceErr
	}

	return claims, nil
}

func extractClaims(mapClaims jwtlib.MapClaims) (*Claims, bool) {
	iss, _ := mapClaims["iss"].(string)
	aud, _ := mapClaims["aud"].(string)
	sub, _ := mapClaims["sub"].(string)
	jti, _ := mapClaims["jti"].(string)
	iat, iatOK := mapClaims["iat"].(float64)
	exp, expOK := mapClaims["exp"].(float64)

	if sub == "" || !iatOK || !expOK {
		return nil, false
	}

	attributes := make(map[string]any)
	for name, value := range mapClaims {
		if _, reserved := reservedClaims[name]; reserved {
			continue
		}
		attributes[name] = value
	}

	return &Claims{
		Subject:    sub,
		Issuer:     iss,
		Audience:   aud,
		TokenID:    jti,
		IssuedAt:   time.Unix(int64(iat), 0),
		ExpiresAt:  time.Unix(int64(exp), 0),
		Attributes: attributes,
	}, true
}
