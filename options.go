package marketplace

import (
	"github.com/loftylabs/marketplace/internal/config"
	"github.com/loftylabs/marketplace/internal/log"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	appConfig       config.AppConfig
	defaultCurrency string
	logger          *log.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		appConfig:       config.NewAppConfig(),
		defaultCurrency: "USD",
	}
}

// Option configures a Client.
type Option func(*clientConfig)

// WithConfig uses a fully resolved application configuration, typically
// from config.LoadConfig.
func WithConfig(cfg config.AppConfig) Option {
	return func(c *clientConfig) { c.appConfig = cfg }
}

// WithSQLite stores data in a SQLite database at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithDBURL("sqlite:///" + path)
	}
}

// WithPostgres stores data in the PostgreSQL database at the given URL.
func WithPostgres(url string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithDBURL(url)
	}
}

// WithBaseURLs sets the public server and image base URLs.
func WithBaseURLs(serverBaseURL, imageBaseURL string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithBaseURLs(serverBaseURL, imageBaseURL)
	}
}

// WithImageBaseURL sets the image asset base URL.
func WithImageBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithBaseURLs(c.appConfig.ServerBaseURL(), url)
	}
}

// WithJWTSecret sets the session-token signing secret.
func WithJWTSecret(secret string) Option {
	return func(c *clientConfig) {
		c.appConfig = c.appConfig.WithJWTSecret(secret)
	}
}

// WithDefaultCurrency sets the currency used for tenants without
// extended configuration.
func WithDefaultCurrency(code string) Option {
	return func(c *clientConfig) { c.defaultCurrency = code }
}

// WithLogger uses the given logger instead of one built from config.
func WithLogger(logger *log.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
