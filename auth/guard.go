package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-credential-guard/auth/sessions"
	"github.com/jrsteele09/go-credential-guard/ratelimit"
	"github.com/jrsteele09/go-credential-guard/token"
	"github.com/jrsteele09/go-credential-guard/users"
)

const (
	defaultSessionTimeout = time.Hour
	defaultTokenTTL       = time.Hour
	defaultLookupTimeout  = 5 * time.Second

	// Rate-limit key prefixes keep the identity and origin axes from
	// colliding in the shared limiter table.
	identityKeyPrefix = "user:"
	originKeyPrefix   = "origin:"
)

// Repos holds all repository dependencies for the Guard.
type Repos struct {
	Credentials users.CredentialRepo // Injected collaborator owning credential storage
	Sessions    sessions.Repo        // In-memory session table
}

// Guard composes the password policy, hasher, token issuer and rate
// limiter into a single authentication entry point. One Guard instance
// owns one session table and one failure table; construct it once at
// process start and share it by reference.
type Guard struct {
	repos          Repos
	tokenIssuer    *token.Issuer
	limiter        *ratelimit.Limiter
	policy         users.Policy
	sessionTimeout time.Duration
	tokenTTL       time.Duration
	lookupTimeout  time.Duration
	dummyHash      string // verified against when the identity is unknown
	logger         zerolog.Logger
	nowTime        func() time.Time // injectable for testing
}

// GuardOption defines a function type to modify the Guard instance.
type GuardOption func(*Guard)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) GuardOption {
	return func(g *Guard) {
		g.nowTime = nowFunc
	}
}

// WithPolicy overrides the default password policy.
func WithPolicy(policy users.Policy) GuardOption {
	return func(g *Guard) {
		g.policy = policy
	}
}

// WithSessionTimeout sets how long issued sessions live.
func WithSessionTimeout(timeout time.Duration) GuardOption {
	return func(g *Guard) {
		if timeout > 0 {
			g.sessionTimeout = timeout
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) GuardOption {
	return func(g *Guard) {
		if ttl > 0 {
			g.tokenTTL = ttl
		}
	}
}

// WithLookupTimeout bounds the injected credential-lookup call. A lookup
// that exceeds it is treated as an internal error, not as "not found".
func WithLookupTimeout(timeout time.Duration) GuardOption {
	return func(g *Guard) {
		if timeout > 0 {
			g.lookupTimeout = timeout
		}
	}
}

// WithLogger sets the logger used for internal failure detail.
func WithLogger(logger zerolog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

// NewGuard initializes a Guard with required dependencies. Optional
// configuration can be provided via options.
func NewGuard(repos Repos, tokenIssuer *token.Issuer, limiter *ratelimit.Limiter, options ...GuardOption) (*Guard, error) {
	if repos.Credentials == nil {
		return nil, errors.New("[NewGuard] Credentials repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[NewGuard] Sessions repo is required")
	}
	if tokenIssuer == nil {
		return nil, errors.New("[NewGuard] tokenIssuer is required")
	}
	if limiter == nil {
		return nil, errors.New("[NewGuard] limiter is required")
	}

	// Derive a throwaway hash once so the unknown-identity path performs
	// the same key derivation work as the known-identity path.
	dummySecret, err := token.NewOpaqueToken(32)
	if err != nil {
		return nil, errors.Wrap(err, "[NewGuard] generating dummy secret")
	}
	dummyHash, err := users.HashPassword(dummySecret)
	if err != nil {
		return nil, errors.Wrap(err, "[NewGuard] hashing dummy secret")
	}

	guard := &Guard{
		repos:          repos,
		tokenIssuer:    tokenIssuer,
		limiter:        limiter,
		policy:         users.NewPolicy(),
		sessionTimeout: defaultSessionTimeout,
		tokenTTL:       defaultTokenTTL,
		lookupTimeout:  defaultLookupTimeout,
		dummyHash:      dummyHash,
		logger:         zerolog.Nop(),
		nowTime:        time.Now,
	}

	for _, opt := range options {
		opt(guard)
	}

	return guard, nil
}

// Authenticate runs one authentication attempt through the fixed sequence
// RATE_CHECK -> LOOKUP -> VERIFY -> SUCCESS | FAIL. Every outcome is a
// Result value; internal errors are logged under a correlation id and
// surfaced only as the generic authentication_unavailable reason.
func (g *Guard) Authenticate(ctx context.Context, identity, secret, origin string) *Result {
	identityKey := identityKeyPrefix + strings.ToLower(strings.TrimSpace(identity))
	originKey := originKeyPrefix + origin

	// RATE_CHECK: either exhausted key denies the attempt before any
	// lookup or hashing. The fixed early return is a deliberate trade-off:
	// it costs less than the verify path, but reveals nothing about
	// whether the identity exists.
	if !g.limiter.Allow(identityKey) || !g.limiter.Allow(originKey) {
		retryAfter := g.limiter.RetryAfter(identityKey)
		if originRetry := g.limiter.RetryAfter(originKey); originRetry > retryAfter {
			retryAfter = originRetry
		}
		return &Result{State: StateFail, Reason: ReasonRateLimited, RetryAfter: retryAfter}
	}

	// LOOKUP: the collaborator call is a black box that may suspend, so it
	// is bounded by a timeout. Timeout or failure is an internal error,
	// never "identity not found".
	lookupCtx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	credential, err := g.repos.Credentials.Find(lookupCtx, identity)
	if err != nil && !errors.Is(err, users.CredentialNotFoundErr) {
		return g.unavailable("credential lookup failed", err)
	}

	// VERIFY: exactly one hash verification per attempt. An unknown
	// identity verifies against the dummy hash so its wall-clock cost is
	// indistinguishable from the known-identity path.
	storedHash := g.dummyHash
	if credential != nil {
		storedHash = credential.SecretHash
	}
	match := users.CheckPasswordHash(secret, storedHash) && credential != nil

	if !match {
		g.limiter.RecordFailure(identityKey)
		g.limiter.RecordFailure(originKey)
		return &Result{State: StateFail, Reason: ReasonInvalidCredentials}
	}

	g.limiter.Reset(identityKey)
	g.limiter.Reset(originKey)

	session, err := g.createSession(credential.Identity)
	if err != nil {
		return g.unavailable("session creation failed", err)
	}

	signedToken, err := g.tokenIssuer.Issue(credential.Identity, nil, g.tokenTTL)
	if err != nil {
		return g.unavailable("token issuance failed", err)
	}

	return &Result{State: StateSuccess, Session: session, Token: signedToken}
}

// Register validates the secret against the password policy, hashes it and
// stores a new credential. The full violation list is returned so callers
// can report every problem at once.
func (g *Guard) Register(ctx context.Context, identity, secret string) error {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return errors.New("[Guard.Register] identity is required")
	}

	if ok, violations := g.policy.Validate(secret); !ok {
		return &ValidationError{Violations: violations}
	}

	lookupCtx, cancel := context.WithTimeout(ctx, g.lookupTimeout)
	defer cancel()

	if _, err := g.repos.Credentials.Find(lookupCtx, identity); err == nil {
		return IdentityExistsErr
	} else if !errors.Is(err, users.CredentialNotFoundErr) {
		return g.internalError("duplicate check failed", err)
	}

	secretHash, err := users.HashPassword(secret)
	if err != nil {
		return g.internalError("hashing failed", err)
	}

	if err := g.repos.Credentials.Upsert(ctx, &users.Credential{
		Identity:   identity,
		SecretHash: secretHash,
		CreatedAt:  g.nowTime(),
	}); err != nil {
		return g.internalError("credential upsert failed", err)
	}

	return nil
}

// ValidateSession reports whether a session exists and has not expired.
// Expired sessions are deleted lazily here; live ones get their
// last-accessed time updated.
func (g *Guard) ValidateSession(sessionID string) bool {
	session, err := g.repos.Sessions.Get(sessionID)
	if err != nil {
		return false
	}

	now := g.nowTime()
	if session.Expired(now) {
		_ = g.repos.Sessions.Delete(sessionID)
		return false
	}

	_ = g.repos.Sessions.Touch(sessionID, now)
	return true
}

// Logout destroys a session immediately.
func (g *Guard) Logout(sessionID string) error {
	if err := g.repos.Sessions.Delete(sessionID); err != nil {
		return SessionNotFoundErr
	}
	return nil
}

// VerifyToken validates a token issued by this guard and returns its
// claims. The error is one of the token package's verification kinds.
func (g *Guard) VerifyToken(raw string) (*token.Claims, error) {
	return g.tokenIssuer.Verify(raw)
}

// CleanupExpiredSessions removes sessions that have passed their expiry.
// Lazy expiry in ValidateSession keeps the table correct without this; a
// periodic call just bounds its size.
func (g *Guard) CleanupExpiredSessions() error {
	return g.repos.Sessions.DeleteExpired(g.nowTime())
}

func (g *Guard) createSession(identity string) (*sessions.Session, error) {
	now := g.nowTime()
	session := &sessions.Session{
		ID:             token.NewSessionID(),
		Identity:       identity,
		CreatedAt:      now,
		LastAccessedAt: now,
		ExpiresAt:      now.Add(g.sessionTimeout),
	}

	if err := g.repos.Sessions.Upsert(session.ID, session); err != nil {
		return nil, errors.Wrap(err, "[Guard.createSession] Sessions.Upsert")
	}
	return session, nil
}

// unavailable logs the internal failure under a fresh correlation id and
// returns the generic failure result. Raw error text never reaches the
// caller.
func (g *Guard) unavailable(msg string, err error) *Result {
	correlationID := uuid.New().String()
	g.logger.Error().Str("correlation_id", correlationID).Err(err).Msg(msg)
	return &Result{State: StateFail, Reason: ReasonUnavailable, CorrelationID: correlationID}
}

func (g *Guard) internalError(msg string, err error) error {
	correlationID := uuid.New().String()
	g.logger.Error().Str("correlation_id", correlationID).Err(err).Msg(msg)
	return ServiceUnavailableErr
}
