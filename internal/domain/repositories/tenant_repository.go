package repositories

import (
	"context"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// TenantRepository persists the single subscription-state row for the
// deployment. Get lazily materializes a trial tenant when none exists.
// Writes are last-write-wins; implementations add no locking beyond the
// underlying store's per-statement atomicity.
type TenantRepository interface {
	Get(ctx context.Context) (*entities.Tenant, error)
	Save(ctx context.Context, tenant *entities.Tenant) error
}
