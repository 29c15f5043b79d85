package token_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-credential-guard/token"
)

func newTestIssuer(t *testing.T, now *time.Time, options ...token.IssuerOption) *token.Issuer {
	t.Helper()

	opts := append([]token.IssuerOption{
		token.WithNowTime(func() time.Time { return *now }),
	}, options...)

	issuer, err := token.NewIssuer(token.NewHMACSigner("test-signing-key"), "test-issuer", "test-audience", opts...)
	require.NoError(t, err)
	return issuer
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(t, &now)

	t.Run("valid immediately", func(t *testing.T) {
		raw, err := issuer.Issue("alice", nil, time.Second)
		require.NoError(t, err)

		claims, err := issuer.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.Equal(t, "test-issuer", claims.Issuer)
		require.Equal(t, "test-audience", claims.Audience)
		require.NotEmpty(t, claims.TokenID)
		require.Equal(t, now.Unix(), claims.IssuedAt.Unix())
		require.Equal(t, now.Add(time.Second).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("expired after ttl", func(t *testing.T) {
		raw, err := issuer.Issue("alice", nil, time.Second)
		require.NoError(t, err)

		now = now.Add(2 * time.Second)
		defer func() { now = now.Add(-2 * time.Second) }()

		_, err = issuer.Verify(raw)
		require.ErrorIs(t, err, token.ExpiredTokenErr)
	})

	t.Run("attributes carried, reserved claims protected", func(t *testing.T) {
		raw, err := issuer.Issue("alice", map[string]any{
			"role": "admin",
			"sub":  "mallory", // must not override the real subject
		}, time.Minute)
		require.NoError(t, err)

		claims, err := issuer.Verify(raw)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
		require.Equal(t, "admin", claims.Attributes["role"])
	})

	t.Run("unique token ids", func(t *testing.T) {
		first, err := issuer.Issue("alice", nil, time.Minute)
		require.NoError(t, err)
		second, err := issuer.Issue("alice", nil, time.Minute)
		require.NoError(t, err)

		firstClaims, err := issuer.Verify(first)
		require.NoError(t, err)
		secondClaims, err := issuer.Verify(second)
		require.NoError(t, err)
		require.NotEqual(t, firstClaims.TokenID, secondClaims.TokenID)
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		_, err := issuer.Issue("", nil, time.Minute)
		require.Error(t, err)
	})

	t.Run("non-positive ttl rejected", func(t *testing.T) {
		_, err := issuer.Issue("alice", nil, 0)
		require.Error(t, err)
	})
}

func TestIssuer_VerifyErrorKinds(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(t, &now)

	t.Run("malformed", func(t *testing.T) {
		_, err := issuer.Verify("not-a-token")
		require.ErrorIs(t, err, token.MalformedTokenErr)
	})

	t.Run("bad signature", func(t *testing.T) {
		otherIssuer, err := token.NewIssuer(token.NewHMACSigner("other-key"), "test-issuer", "test-audience",
			token.WithNowTime(func() time.Time { return now }))
		require.NoError(t, err)

		raw, err := otherIssuer.Issue("alice", nil, time.Minute)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		require.ErrorIs(t, err, token.BadSignatureErr)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		// alg=none in the header must not be trusted.
		unsigned := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
			"iss": "test-issuer",
			"aud": "test-audience",
			"sub": "alice",
			"iat": now.Unix(),
			"exp": now.Add(time.Minute).Unix(),
			"jti": "forged",
		})
		raw, err := unsigned.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		require.ErrorIs(t, err, token.BadSignatureErr)
	})

	t.Run("bad issuer", func(t *testing.T) {
		otherIssuer, err := token.NewIssuer(token.NewHMACSigner("test-signing-key"), "rogue-issuer", "test-audience",
			token.WithNowTime(func() time.Time { return now }))
		require.NoError(t, err)

		raw, err := otherIssuer.Issue("alice", nil, time.Minute)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		require.ErrorIs(t, err, token.BadIssuerErr)
	})

	t.Run("bad audience", func(t *testing.T) {
		otherIssuer, err := token.NewIssuer(token.NewHMACSigner("test-signing-key"), "test-issuer", "rogue-audience",
			token.WithNowTime(func() time.Time { return now }))
		require.NoError(t, err)

		raw, err := otherIssuer.Issue("alice", nil, time.Minute)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		require.ErrorIs(t, err, token.BadAudienceErr)
	})
}

func TestIssuer_ResetTokens(t *testing.T) {
	now := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	issuer := newTestIssuer(t, &now)

	t.Run("reset round trip", func(t *testing.T) {
		raw, err := issuer.IssueReset("alice", time.Minute)
		require.NoError(t, err)

		claims, err := issuer.VerifyReset(raw)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Subject)
	})

	t.Run("reset token is not a session token", func(t *testing.T) {
		raw, err := issuer.IssueReset("alice", time.Minute)
		require.NoError(t, err)

		_, err = issuer.Verify(raw)
		require.ErrorIs(t, err, token.BadAudienceErr)
	})

	t.Run("session token is not a reset token", func(t *testing.T) {
		raw, err := issuer.Issue("alice", nil, time.Minute)
		require.NoError(t, err)

		_, err = issuer.VerifyReset(raw)
		require.ErrorIs(t, err, token.BadAudienceErr)
	})
}
