package users_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-credential-guard/users"
)

func TestHashPassword(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := users.HashPassword("Str0ng!Pass")
		require.NoError(t, err)
		require.True(t, users.CheckPasswordHash("Str0ng!Pass", hash))
	})

	t.Run("wrong secret fails", func(t *testing.T) {
		hash, err := users.HashPassword("Str0ng!Pass")
		require.NoError(t, err)
		require.False(t, users.CheckPasswordHash("Wr0ng!Pass", hash))
	})

	t.Run("empty secret rejected", func(t *testing.T) {
		_, err := users.HashPassword("")
		require.ErrorIs(t, err, users.InvalidSecretErr)
	})

	t.Run("fresh salt per call", func(t *testing.T) {
		first, err := users.HashPassword("Str0ng!Pass")
		require.NoError(t, err)
		second, err := users.HashPassword("Str0ng!Pass")
		require.NoError(t, err)

		require.NotEqual(t, first, second)
		require.True(t, users.CheckPasswordHash("Str0ng!Pass", first))
		require.True(t, users.CheckPasswordHash("Str0ng!Pass", second))
	})

	t.Run("stored format embeds salt", func(t *testing.T) {
		hash, err := users.HashPassword("Str0ng!Pass")
		require.NoError(t, err)

		parts := strings.Split(hash, ":")
		require.Len(t, parts, 2)
		require.Len(t, parts[0], 32) // 16 salt bytes hex encoded
		require.Len(t, parts[1], 64) // 32 key bytes hex encoded
	})
}

func TestCheckPasswordHash_Malformed(t *testing.T) {
	// Malformed stored hashes must verify as false, never panic or error.
	for _, stored := range []string{
		"",
		"no-separator",
		"nothex:cafebabe",
		"cafebabe:nothex",
		"cafebabe:cafebabe", // derived key too short
		":",
	} {
		t.Run(stored, func(t *testing.T) {
			require.False(t, users.CheckPasswordHash("Str0ng!Pass", stored))
		})
	}
}
