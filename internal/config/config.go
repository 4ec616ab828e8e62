package config

type Config interface {
	EnvConfig
	TenantConfig
	BackendConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppURL() string
	GetRedisAddr() string
	GetEnv() string
}

type TenantConfig interface {
	GetAppDomain() string
	GetDefaultTenant() string
}

type BackendConfig interface {
	GetBackendBaseURL() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
