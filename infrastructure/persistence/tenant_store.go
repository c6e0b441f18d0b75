package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/loftylabs/marketplace/domain/tenant"
	"github.com/loftylabs/marketplace/internal/database"
)

// TenantConfigMapper converts between tenant.Config and its GORM model.
type TenantConfigMapper struct{}

// ToDomain converts a model to a domain configuration.
func (TenantConfigMapper) ToDomain(m TenantConfigModel) tenant.Config {
	settings := map[string]string{}
	if m.Settings != "" {
		// Unreadable settings degrade to empty rather than failing reads.
		_ = json.Unmarshal([]byte(m.Settings), &settings)
	}
	return tenant.NewConfig(m.TenantID, m.Name, m.DefaultCurrency, m.ImageBaseURL, settings)
}

// ToModel converts a domain configuration to a model.
func (TenantConfigMapper) ToModel(c tenant.Config) TenantConfigModel {
	raw, _ := json.Marshal(c.Settings())
	return TenantConfigModel{
		TenantID:        c.TenantID(),
		Name:            c.Name(),
		DefaultCurrency: c.DefaultCurrency(),
		ImageBaseURL:    c.ImageBaseURL(),
		Settings:        string(raw),
		UpdatedAt:       time.Now().UTC(),
	}
}

// TenantConfigStore persists tenant extended configuration.
type TenantConfigStore struct {
	db         database.Database
	repository database.Repository[tenant.Config, TenantConfigModel]
}

// NewTenantConfigStore creates a new TenantConfigStore.
func NewTenantConfigStore(db database.Database) TenantConfigStore {
	return TenantConfigStore{
		db:         db,
		repository: database.NewRepository(db, TenantConfigMapper{}, "tenant config"),
	}
}

// Get returns one tenant's configuration.
func (s TenantConfigStore) Get(ctx context.Context, tenantID string) (tenant.Config, error) {
	config, err := s.repository.FindOne(ctx, database.NewQuery().Equal("tenant_id", tenantID))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return tenant.Config{}, fmt.Errorf("%w: %s", tenant.ErrNotFound, tenantID)
		}
		return tenant.Config{}, err
	}
	return config, nil
}

// List returns every tenant configuration, ordered by tenant id.
func (s TenantConfigStore) List(ctx context.Context) ([]tenant.Config, error) {
	return s.repository.Find(ctx, database.NewQuery().OrderAsc("tenant_id"))
}

// Save upserts a tenant configuration.
func (s TenantConfigStore) Save(ctx context.Context, config tenant.Config) error {
	model := TenantConfigMapper{}.ToModel(config)
	return s.db.Session(ctx).Save(&model).Error
}

// Exists reports whether a tenant has extended configuration.
func (s TenantConfigStore) Exists(ctx context.Context, tenantID string) (bool, error) {
	return s.repository.Exists(ctx, database.NewQuery().Equal("tenant_id", tenantID))
}
