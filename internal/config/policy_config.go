package config

// PolicyConfig is the env-var surface for password strength thresholds.
type PolicyConfig interface {
	GetPasswordMinLength() int
	GetPasswordMaxLength() int
	GetRequireLowercase() bool
	GetRequireUppercase() bool
	GetRequireDigit() bool
	GetRequireSymbol() bool
}

type Policy struct{}

var _ PolicyConfig = Policy{}

func (Policy) GetPasswordMinLength() int {
	return GetEnvInt("GUARD_PASSWORD_MIN_LENGTH", 8)
}

func (Policy) GetPasswordMaxLength() int {
	return GetEnvInt("GUARD_PASSWORD_MAX_LENGTH", 128)
}

func (Policy) GetRequireLowercase() bool {
	return GetEnv("GUARD_REQUIRE_LOWERCASE", "true") == "true"
}

func (Policy) GetRequireUppercase() bool {
	return GetEnv("GUARD_REQUIRE_UPPERCASE", "true") == "true"
}

func (Policy) GetRequireDigit() bool {
	return GetEnv("GUARD_REQUIRE_DIGIT", "true") == "true"
}

func (Policy) GetRequireSymbol() bool {
	return GetEnv("GUARD_REQUIRE_SYMBOL", "true") == "true"
}
