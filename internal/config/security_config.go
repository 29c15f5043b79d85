package config

import "time"

// SecurityConfig is the env-var surface for the guard's signing key,
// token lifetimes and rate limiting. Safe defaults everywhere; production
// deployments are expected to override GUARD_SIGNING_KEY at minimum.
type SecurityConfig interface {
	GetSigningKey() string
	GetTokenIssuer() string
	GetTokenAudience() string
	GetTokenTTL() time.Duration
	GetSessionTimeout() time.Duration
	GetRateLimitThreshold() int
	GetRateLimitWindow() time.Duration
	GetLookupTimeout() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSigningKey() string {
	return GetEnv("GUARD_SIGNING_KEY", "dev-only-signing-key")
}

func (Security) GetTokenIssuer() string {
	return GetEnv("GUARD_TOKEN_ISSUER", "credential-guard")
}

func (Security) GetTokenAudience() string {
	return GetEnv("GUARD_TOKEN_AUDIENCE", "credential-guard-clients")
}

func (Security) GetTokenTTL() time.Duration {
	return GetEnvDuration("GUARD_TOKEN_TTL", time.Hour)
}

func (Security) GetSessionTimeout() time.Duration {
	return GetEnvDuration("GUARD_SESSION_TIMEOUT", time.Hour)
}

func (Security) GetRateLimitThreshold() int {
	return GetEnvInt("GUARD_RATE_LIMIT_THRESHOLD", 5)
}

func (Security) GetRateLimitWindow() time.Duration {
	return GetEnvDuration("GUARD_RATE_LIMIT_WINDOW", 15*time.Minute)
}

func (Security) GetLookupTimeout() time.Duration {
	return GetEnvDuration("GUARD_LOOKUP_TIMEOUT", 5*time.Second)
}
