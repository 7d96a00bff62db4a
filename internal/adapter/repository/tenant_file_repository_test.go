package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

func TestTenantGet_LazyDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenant.json")
	repo := NewTenantFileRepository(path)

	tenant, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "default", tenant.ID)
	require.Equal(t, "株式会社サンプル", tenant.CompanyName)
	require.Equal(t, entities.TenantStatusTrial, tenant.Status)

	// The materialized default must be readable on the next call
	again, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, tenant.ID, again.ID)
}

func TestTenantGet_CorruptFileFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenant.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	repo := NewTenantFileRepository(path)
	tenant, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, entities.TenantStatusTrial, tenant.Status)
}

func TestTenantSave_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenant.json")
	repo := NewTenantFileRepository(path)
	ctx := context.Background()

	tenant, err := repo.Get(ctx)
	require.NoError(t, err)

	tenant.ActivateSubscription("cus_123", "sub_456", "standard", "2026/9/1", "2026/10/1")
	require.NoError(t, repo.Save(ctx, tenant))

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, entities.TenantStatusActive, loaded.Status)
	require.Equal(t, "cus_123", loaded.StripeCustomerID)
	require.Equal(t, "sub_456", loaded.StripeSubscriptionID)
	require.Equal(t, "standard", loaded.PlanID)
	require.False(t, loaded.UpdatedAt.IsZero())
}
