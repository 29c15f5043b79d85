package main

import (
	"context"
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-credential-guard/auth"
	fakesessionrepo "github.com/jrsteele09/go-credential-guard/auth/sessions/repofakes"
	"github.com/jrsteele09/go-credential-guard/internal/config"
	"github.com/jrsteele09/go-credential-guard/ratelimit"
	"github.com/jrsteele09/go-credential-guard/token"
	"github.com/jrsteele09/go-credential-guard/users"
	fakecredentialrepo "github.com/jrsteele09/go-credential-guard/users/repofake"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(logger); err != nil {
		logger.Fatal().Err(err).Msg("guard demo failed")
	}
}

func run(logger zerolog.Logger) error {
	_ = godotenv.Load()

	c := config.New()
	displayAppname(c.GetAppName())

	guard, err := buildGuard(c, logger)
	if err != nil {
		return err
	}

	// Bootstrap an identity from the environment so there is something to
	// authenticate against.
	identity := config.GetEnv("GUARD_BOOTSTRAP_IDENTITY", "alice")
	secret := config.GetEnv("GUARD_BOOTSTRAP_SECRET", "Str0ng!Pass")

	ctx := context.Background()
	if err := guard.Register(ctx, identity, secret); err != nil {
		return err
	}
	logger.Info().Str("identity", identity).Msg("registered bootstrap identity")

	result := guard.Authenticate(ctx, identity, secret, "local")
	if !result.Success() {
		logger.Warn().Str("reason", string(result.Reason)).Msg("authentication failed")
		return result.Err()
	}

	logger.Info().
		Str("session_id", result.Session.ID).
		Time("session_expires_at", result.Session.ExpiresAt).
		Msg("authentication succeeded")

	claims, err := guard.VerifyToken(result.Token)
	if err != nil {
		return err
	}
	logger.Info().
		Str("subject", claims.Subject).
		Str("token_id", claims.TokenID).
		Time("expires_at", claims.ExpiresAt).
		Msg("token verified")

	return nil
}

func buildGuard(c config.Config, logger zerolog.Logger) (*auth.Guard, error) {
	tokenIssuer, err := token.NewIssuer(
		token.NewHMACSigner(c.GetSigningKey()),
		c.GetTokenIssuer(),
		c.GetTokenAudience(),
	)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.NewLimiter(c.GetRateLimitThreshold(), c.GetRateLimitWindow())

	policy := users.Policy{
		MinLength:        c.GetPasswordMinLength(),
		MaxLength:        c.GetPasswordMaxLength(),
		RequireLowercase: c.GetRequireLowercase(),
		RequireUppercase: c.GetRequireUppercase(),
		RequireDigit:     c.GetRequireDigit(),
		RequireSymbol:    c.GetRequireSymbol(),
		DenyList:         users.DefaultDenyList,
	}

	return auth.NewGuard(
		auth.Repos{
			Credentials: fakecredentialrepo.NewFakeCredentialRepo(),
			Sessions:    fakesessionrepo.NewFakeSessionRepo(),
		},
		tokenIssuer,
		limiter,
		auth.WithPolicy(policy),
		auth.WithSessionTimeout(c.GetSessionTimeout()),
		auth.WithTokenTTL(c.GetTokenTTL()),
		auth.WithLookupTimeout(c.GetLookupTimeout()),
		auth.WithLogger(logger),
	)
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
