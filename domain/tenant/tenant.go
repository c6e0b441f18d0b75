// Package tenant holds per-tenant marketplace configuration.
package tenant

import "errors"

// ErrNotFound indicates no configuration exists for a tenant.
var ErrNotFound = errors.New("tenant configuration not found")

// Config is one tenant's extended configuration: operator-managed
// settings layered over the deployment defaults. Config is an immutable
// value.
type Config struct {
	tenantID        string
	name            string
	defaultCurrency string
	imageBaseURL    string
	settings        map[string]string
}

// NewConfig builds a tenant configuration.
func NewConfig(tenantID, name, defaultCurrency, imageBaseURL string, settings map[string]string) Config {
	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	return Config{
		tenantID:        tenantID,
		name:            name,
		defaultCurrency: defaultCurrency,
		imageBaseURL:    imageBaseURL,
		settings:        copied,
	}
}

// TenantID returns the owning tenant's id.
func (c Config) TenantID() string { return c.tenantID }

// Name returns the tenant's display name.
func (c Config) Name() string { return c.name }

// DefaultCurrency returns the tenant's default currency code.
func (c Config) DefaultCurrency() string { return c.defaultCurrency }

// ImageBaseURL returns the tenant's image base override, or "" when the
// deployment default applies.
func (c Config) ImageBaseURL() string { return c.imageBaseURL }

// Setting returns a named setting and whether it is present.
func (c Config) Setting(key string) (string, bool) {
	v, ok := c.settings[key]
	return v, ok
}

// Settings returns a copy of all settings.
func (c Config) Settings() map[string]string {
	out := make(map[string]string, len(c.settings))
	for k, v := range c.settings {
		out[k] = v
	}
	return out
}

// WithSetting returns a copy with one setting replaced.
func (c Config) WithSetting(key, value string) Config {
	settings := c.Settings()
	settings[key] = value
	c.settings = settings
	return c
}
