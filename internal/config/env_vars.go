package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	portEnvVar        = "PORT"
	appNameVar        = "APP_NAME"
	appURLVar         = "APP_URL"
	appDomainVar      = "APP_DOMAIN"
	defaultTenantVar  = "DEFAULT_TENANT"
	backendBaseURLVar = "BACKEND_BASE_URL"
	redisAddrVar      = "REDIS_ADDR"
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Harper Gateway")
}

// GetAppURL returns the public URL of the gateway itself, used when absolute
// URLs are needed (e.g. startup logging, links in rendered pages)
func (EnvVars) GetAppURL() string {
	return GetEnv(appURLVar, "http://localhost:8080")
}

// GetAppDomain returns the public application domain whose subdomains carry
// tenant slugs (acme.<domain> resolves to tenant "acme")
func (EnvVars) GetAppDomain() string {
	return GetEnv(appDomainVar, "harpersystem.com.br")
}

// GetDefaultTenant returns the tenant slug used when neither the query string
// nor the host yields one. Empty means no fallback.
func (EnvVars) GetDefaultTenant() string {
	return GetEnv(defaultTenantVar, "")
}

// GetBackendBaseURL returns the base URL of the remote authentication backend.
// There is no default; auth actions fail fast when it is unset.
func (EnvVars) GetBackendBaseURL() string {
	return GetEnv(backendBaseURLVar, "")
}

// GetRedisAddr returns the Redis address for the state store. Empty selects
// the in-memory store.
func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
