package service

import (
	"context"
	"errors"

	"github.com/loftylabs/marketplace/domain/tenant"
	"github.com/loftylabs/marketplace/internal/log"
)

// Tenants serves tenant extended configuration. Missing configuration is
// not an error for readers: such tenants run on deployment defaults.
type Tenants struct {
	store    tenant.Store
	defaults tenant.Config
	logger   *log.Logger
}

// NewTenants creates a new Tenants service. defaults supplies the
// configuration returned for tenants with no stored override.
func NewTenants(store tenant.Store, defaults tenant.Config, logger *log.Logger) *Tenants {
	return &Tenants{store: store, defaults: defaults, logger: logger}
}

// Config returns a tenant's effective configuration.
func (s *Tenants) Config(ctx context.Context, tenantID string) (tenant.Config, error) {
	config, err := s.store.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrNotFound) {
			s.logger.DebugContext(ctx, "no extended config, using defaults", "tenant_id", tenantID)
			return tenant.NewConfig(tenantID, s.defaults.Name(), s.defaults.DefaultCurrency(),
				s.defaults.ImageBaseURL(), s.defaults.Settings()), nil
		}
		return tenant.Config{}, err
	}
	return config, nil
}

// ExtendedConfig returns one configuration value by key. The boolean
// reports whether the key is set for the tenant (or in the defaults).
func (s *Tenants) ExtendedConfig(ctx context.Context, tenantID, key string) (string, bool, error) {
	config, err := s.Config(ctx, tenantID)
	if err != nil {
		return "", false, err
	}
	value, ok := config.Setting(key)
	return value, ok, nil
}

// Save upserts a tenant's configuration.
func (s *Tenants) Save(ctx context.Context, config tenant.Config) error {
	return s.store.Save(ctx, config)
}
