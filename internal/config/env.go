// Package config provides application configuration.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DBURL is the database connection URL.
	// Env: DB_URL (default: sqlite:///marketplace.db)
	DBURL string `envconfig:"DB_URL" default:"sqlite:///marketplace.db"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// ServerBaseURL is the public base URL used when building entity links.
	// Env: SERVER_BASE_URL
	ServerBaseURL string `envconfig:"SERVER_BASE_URL" default:"http://localhost:8080/"`

	// ImageBaseURL is the base URL for lot and artist image assets.
	// Env: IMAGE_BASE_URL
	ImageBaseURL string `envconfig:"IMAGE_BASE_URL" default:"http://localhost:8080/images/"`

	// JWTSecret signs and verifies session tokens.
	// Env: JWT_SECRET
	JWTSecret string `envconfig:"JWT_SECRET"`

	// CORSAllowedOrigins is a comma-separated list of origins allowed by CORS.
	// Env: CORS_ALLOWED_ORIGINS
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// LoadFromEnv reads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize cleans up values that need post-processing before use:
// base URLs gain a trailing slash so path concatenation is safe, and the
// log level is upper-cased.
func (c EnvConfig) Normalize() EnvConfig {
	c.ServerBaseURL = EnsureTrailingSlash(c.ServerBaseURL)
	c.ImageBaseURL = EnsureTrailingSlash(c.ImageBaseURL)
	c.LogLevel = strings.ToUpper(c.LogLevel)
	return c
}

// ToAppConfig converts the environment configuration to an AppConfig.
func (c EnvConfig) ToAppConfig() AppConfig {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return AppConfig{
		host:          c.Host,
		port:          c.Port,
		dbURL:         c.DBURL,
		logLevel:      c.LogLevel,
		logFormat:     LogFormat(c.LogFormat),
		serverBaseURL: c.ServerBaseURL,
		imageBaseURL:  c.ImageBaseURL,
		jwtSecret:     c.JWTSecret,
		corsOrigins:   origins,
	}
}

// EnsureTrailingSlash appends a trailing slash to s when missing.
// Empty strings are returned unchanged.
func EnsureTrailingSlash(s string) string {
	if s == "" || strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}
