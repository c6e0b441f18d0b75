package tenant

import "context"

// Store persists tenant extended configuration.
type Store interface {
	Get(ctx context.Context, tenantID string) (Config, error)
	List(ctx context.Context) ([]Config, error)
	Save(ctx context.Context, config Config) error
	Exists(ctx context.Context, tenantID string) (bool, error)
}
