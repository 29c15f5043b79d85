package users

import (
	"fmt"
	"strings"
	"unicode"
)

// Symbols accepted for the special-character rule.
const policySymbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// DefaultDenyList holds common passwords rejected regardless of the other
// rules. Matching is case-insensitive.
var DefaultDenyList = []string{
	"password", "123456", "admin", "qwerty", "letmein",
	"welcome", "password123", "12345678", "abc123",
}

// Policy validates secret strength. The zero value is not usable; call
// NewPolicy for defaults. Each character-class rule can be toggled
// independently.
type Policy struct {
	MinLength        int
	MaxLength        int
	RequireLowercase bool
	RequireUppercase bool
	RequireDigit     bool
	RequireSymbol    bool
	DenyList         []string
}

// NewPolicy returns a Policy with the default requirements:
// length 8-128, one of each character class, default deny-list.
func NewPolicy() Policy {
	return Policy{
		MinLength:        8,
		MaxLength:        128,
		RequireLowercase: true,
		RequireUppercase: true,
		RequireDigit:     true,
		RequireSymbol:    true,
		DenyList:         DefaultDenyList,
	}
}

// Validate checks a secret against every rule and reports all violations,
// not just the first. Pure function of the input and configuration.
func (p Policy) Validate(secret string) (bool, []string) {
	var violations []string

	if len(secret) < p.MinLength {
		violations = append(violations, fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	if len(secret) > p.MaxLength {
		violations = append(violations, fmt.Sprintf("password cannot exceed %d characters", p.MaxLength))
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, char := range secret {
		switch {
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasDigit = true
		case strings.ContainsRune(policySymbols, char):
			hasSymbol = true
		}
	}

	if p.RequireLowercase && !hasLower {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if p.RequireUppercase && !hasUpper {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if p.RequireDigit && !hasDigit {
		violations = append(violations, "password must contain at least one number")
	}
	if p.RequireSymbol && !hasSymbol {
		violations = append(violations, "password must contain at least one special character")
	}

	if p.isDenied(secret) {
		violations = append(violations, "password is too common")
	}

	if hasRepeatedRun(secret) {
		violations = append(violations, "password must not contain three or more repeated characters in a row")
	}

	return len(violations) == 0, violations
}

func (p Policy) isDenied(secret string) bool {
	for _, denied := range p.DenyList {
		if strings.EqualFold(secret, denied) {
			return true
		}
	}
	return false
}

// hasRepeatedRun reports whether the secret contains a run of three or
// more identical consecutive characters.
func hasRepeatedRun(secret string) bool {
	runes := []rune(secret)
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= 3 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
