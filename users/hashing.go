package users

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength      = 16
	derivedKeyBytes = 32
	kdfIterations   = 100_000
)

// InvalidSecretErr is returned by HashPassword for an empty secret.
var InvalidSecretErr = errors.New("secret must not be empty")

// HashPassword derives a salted PBKDF2-SHA256 hash of the secret.
// A fresh random salt is generated per call, so hashing the same secret
// twice produces different results. The salt and derived key are stored
// together as "salt_hex:hash_hex".
func HashPassword(secret string) (string, error) {
	if secret == "" {
		return "", InvalidSecretErr
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "[HashPassword] rand.Read")
	}

	key := pbkdf2.Key([]byte(secret), salt, kdfIterations, derivedKeyBytes, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// CheckPasswordHash verifies a secret against a stored hash. It never
// returns an error: malformed stored hashes verify as false. The digest
// comparison runs in constant time.
func CheckPasswordHash(secret, storedHash string) bool {
	saltHex, hashHex, found := strings.Cut(storedHash, ":")
	if !found {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	storedKey, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}
	if len(storedKey) != derivedKeyBytes {
		return false
	}

	key := pbkdf2.Key([]byte(secret), salt, kdfIterations, derivedKeyBytes, sha256.New)
	return subtle.ConstantTimeCompare(key, storedKey) == 1
}
