package config

import "fmt"

// Default configuration values.
const (
	DefaultHost     = "0.0.0.0"
	DefaultPort     = 8080
	DefaultLogLevel = "INFO"

	// DefaultPageLimit is the page size used when the caller supplies none.
	DefaultPageLimit = 30

	// MaxLotIDFilter caps the number of lot ids accepted in a single
	// list request.
	MaxLotIDFilter = 50
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig is the resolved application configuration.
type AppConfig struct {
	host          string
	port          int
	dbURL         string
	logLevel      string
	logFormat     LogFormat
	serverBaseURL string
	imageBaseURL  string
	jwtSecret     string
	corsOrigins   []string
}

// NewAppConfig creates an AppConfig with defaults, for tests and embedding.
func NewAppConfig() AppConfig {
	return AppConfig{
		host:      DefaultHost,
		port:      DefaultPort,
		logLevel:  DefaultLogLevel,
		logFormat: LogFormatPretty,
	}
}

// Host returns the server bind host.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port bind address.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the configured log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the configured log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// ServerBaseURL returns the public base URL, always slash-terminated.
func (c AppConfig) ServerBaseURL() string { return c.serverBaseURL }

// ImageBaseURL returns the image asset base URL, always slash-terminated.
func (c AppConfig) ImageBaseURL() string { return c.imageBaseURL }

// JWTSecret returns the session-token signing secret.
func (c AppConfig) JWTSecret() string { return c.jwtSecret }

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	out := make([]string, len(c.corsOrigins))
	copy(out, c.corsOrigins)
	return out
}

// WithBaseURLs returns a copy with the given base URLs, slash-normalized.
func (c AppConfig) WithBaseURLs(serverBaseURL, imageBaseURL string) AppConfig {
	c.serverBaseURL = EnsureTrailingSlash(serverBaseURL)
	c.imageBaseURL = EnsureTrailingSlash(imageBaseURL)
	return c
}

// WithDBURL returns a copy with the given database URL.
func (c AppConfig) WithDBURL(url string) AppConfig {
	c.dbURL = url
	return c
}

// WithAddr returns a copy bound to the given host and port.
func (c AppConfig) WithAddr(host string, port int) AppConfig {
	c.host = host
	c.port = port
	return c
}

// WithJWTSecret returns a copy with the given signing secret.
func (c AppConfig) WithJWTSecret(secret string) AppConfig {
	c.jwtSecret = secret
	return c
}

// WithCORSOrigins returns a copy with the given allowed origins.
func (c AppConfig) WithCORSOrigins(origins []string) AppConfig {
	c.corsOrigins = append([]string(nil), origins...)
	return c
}

// WithLogging returns a copy with the given log level and format.
func (c AppConfig) WithLogging(level string, format LogFormat) AppConfig {
	c.logLevel = level
	c.logFormat = format
	return c
}
