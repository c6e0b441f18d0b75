// Package marketplace provides the auction marketplace query engine:
// fieldset-driven query composition, execution, and enrichment for
// auction lots, served to multiple tenants from one deployment.
//
// Basic usage:
//
//	client, err := marketplace.New(
//	    marketplace.WithSQLite("marketplace.db"),
//	    marketplace.WithImageBaseURL("https://images.example.com/"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	q := lot.NewQuery("tenant-1").
//	    WithFieldsets(lot.NewFieldsets(lot.FieldsetSummary, lot.FieldsetHighestLiveBid))
//	entities, err := client.Lots().List(ctx, q)
package marketplace

import (
	"context"
	"fmt"

	"github.com/loftylabs/marketplace/application/service"
	"github.com/loftylabs/marketplace/domain/tenant"
	"github.com/loftylabs/marketplace/infrastructure/persistence"
	"github.com/loftylabs/marketplace/internal/config"
	"github.com/loftylabs/marketplace/internal/database"
	"github.com/loftylabs/marketplace/internal/log"
)

// Client is the main entry point for the marketplace library.
type Client struct {
	lots    *service.Lots
	tenants *service.Tenants

	db     database.Database
	cfg    config.AppConfig
	logger *log.Logger
}

// New creates a Client, opens the database, and runs migrations.
func New(opts ...Option) (*Client, error) {
	cc := newClientConfig()
	for _, opt := range opts {
		opt(cc)
	}

	logger := cc.logger
	if logger == nil {
		logger = log.NewLogger(cc.appConfig)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cc.appConfig.DBURL())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.ConfigurePool(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pool: %w", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	lotStore := persistence.NewLotStore(db, cc.appConfig.ImageBaseURL())
	tenantStore := persistence.NewTenantConfigStore(db)

	defaults := tenant.NewConfig("", "", cc.defaultCurrency, cc.appConfig.ImageBaseURL(), nil)

	return &Client{
		lots:    service.NewLots(lotStore, cc.appConfig.ServerBaseURL(), logger),
		tenants: service.NewTenants(tenantStore, defaults, logger),
		db:      db,
		cfg:     cc.appConfig,
		logger:  logger,
	}, nil
}

// Lots returns the auction lot query service.
func (c *Client) Lots() *service.Lots { return c.lots }

// Tenants returns the tenant configuration service.
func (c *Client) Tenants() *service.Tenants { return c.tenants }

// Logger returns the client's logger.
func (c *Client) Logger() *log.Logger { return c.logger }

// Config returns the client's configuration.
func (c *Client) Config() config.AppConfig { return c.cfg }

// Database returns the underlying database handle.
func (c *Client) Database() database.Database { return c.db }

// Ping verifies the database connection.
func (c *Client) Ping(ctx context.Context) error {
	sqlDB, err := c.db.GORM().DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the client's resources.
func (c *Client) Close() error {
	return c.db.Close()
}
