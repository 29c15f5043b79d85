package config

type Config interface {
	EnvConfig
	SecurityConfig
	PolicyConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Security
	Policy
}

func New() Config {
	return mainConfig{}
}
