package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftylabs/marketplace/domain/tenant"
)

func TestTenantConfigStore_Roundtrip(t *testing.T) {
	db := newTestDB(t)
	store := NewTenantConfigStore(db)
	ctx := context.Background()

	_, err := store.Get(ctx, "tenant-1")
	assert.ErrorIs(t, err, tenant.ErrNotFound)

	config := tenant.NewConfig("tenant-1", "Lofty Auctions", "USD",
		"https://img.tenant-1.example.com/", map[string]string{"bid_increment": "50"})
	require.NoError(t, store.Save(ctx, config))

	got, err := store.Get(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "Lofty Auctions", got.Name())
	assert.Equal(t, "USD", got.DefaultCurrency())
	increment, ok := got.Setting("bid_increment")
	require.True(t, ok)
	assert.Equal(t, "50", increment)

	exists, err := store.Exists(ctx, "tenant-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestTenantConfigStore_List(t *testing.T) {
	db := newTestDB(t)
	store := NewTenantConfigStore(db)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, tenant.NewConfig("tenant-b", "B", "EUR", "", nil)))
	require.NoError(t, store.Save(ctx, tenant.NewConfig("tenant-a", "A", "USD", "", nil)))

	configs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "tenant-a", configs[0].TenantID())
	assert.Equal(t, "tenant-b", configs[1].TenantID())
}
