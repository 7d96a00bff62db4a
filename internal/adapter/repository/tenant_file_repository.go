package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// TenantFileRepository stores the tenant row as one JSON document on disk.
// Reads that find no file, or a corrupt one, materialize the trial default.
// Writes go through a temp file and rename so a crash never leaves a
// half-written document.
type TenantFileRepository struct {
	path string
}

// NewTenantFileRepository creates a file-backed tenant repository
func NewTenantFileRepository(path string) *TenantFileRepository {
	return &TenantFileRepository{path: path}
}

// Get returns the stored tenant, lazily creating the trial default when the
// file is absent or unreadable.
func (r *TenantFileRepository) Get(ctx context.Context) (*entities.Tenant, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		tenant := entities.NewDefaultTenant()
		if saveErr := r.Save(ctx, tenant); saveErr != nil {
			return nil, saveErr
		}
		return tenant, nil
	}

	var tenant entities.Tenant
	if err := json.Unmarshal(raw, &tenant); err != nil {
		return entities.NewDefaultTenant(), nil
	}
	return &tenant, nil
}

// Save persists the tenant, stamping UpdatedAt. Last write wins.
func (r *TenantFileRepository) Save(ctx context.Context, tenant *entities.Tenant) error {
	tenant.UpdatedAt = time.Now()

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(tenant, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tenant: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write tenant file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace tenant file: %w", err)
	}
	return nil
}
