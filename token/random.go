package token

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	symbolChars    = "!@#$%^&*"
)

// NewSessionID returns a fresh unguessable session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// NewOpaqueToken returns a URL-safe random token of n bytes of entropy.
func NewOpaqueToken(n int) (string, error) {
	if n <= 0 {
		n = 32
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "[NewOpaqueToken] rand.Read")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewAPIKey returns a prefixed random API key, e.g. "cg_dGhpcy...".
func NewAPIKey(prefix string) (string, error) {
	if prefix == "" {
		prefix = "cg"
	}
	randomPart, err := NewOpaqueToken(32)
	if err != nil {
		return "", err
	}
	return prefix + "_" + randomPart, nil
}

// TemporaryPassword generates a random password of the given length that
// contains at least one lowercase letter, one uppercase letter, one digit
// and one symbol.
func TemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 16
	}

	classes := []string{lowercaseChars, uppercaseChars, digitChars, symbolChars}
	allChars := lowercaseChars + uppercaseChars + digitChars + symbolChars

	chars := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomChar(allChars)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Shuffle so the guaranteed class characters are not position-fixed.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomChar(from string) (byte, error) {
	idx, err := randomIndex(len(from))
	if err != nil {
		return 0, err
	}
	return from[idx], nil
}

func randomIndex(n int) (int, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "[randomIndex] rand.Int")
	}
	return int(idx.Int64()), nil
}
