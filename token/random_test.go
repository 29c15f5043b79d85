package token_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-credential-guard/token"
)

func TestNewOpaqueToken(t *testing.T) {
	first, err := token.NewOpaqueToken(32)
	require.NoError(t, err)
	second, err := token.NewOpaqueToken(32)
	require.NoError(t, err)

	require.NotEqual(t, first, second)
	require.NotContains(t, first, "+")
	require.NotContains(t, first, "/")
}

func TestNewAPIKey(t *testing.T) {
	key, err := token.NewAPIKey("guard")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "guard_"))

	defaulted, err := token.NewAPIKey("")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(defaulted, "cg_"))
}

func TestTemporaryPassword(t *testing.T) {
	password, err := token.TemporaryPassword(16)
	require.NoError(t, err)
	require.Len(t, password, 16)

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, char := range password {
		switch {
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	require.True(t, hasLower)
	require.True(t, hasUpper)
	require.True(t, hasDigit)
	require.True(t, hasSymbol)
}
