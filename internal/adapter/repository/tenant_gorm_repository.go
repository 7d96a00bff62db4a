package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
)

// tenantRow is the GORM model for the single tenant record. Billing info is
// kept as JSONB so address fields can evolve without schema churn.
type tenantRow struct {
	ID                   string         `gorm:"type:varchar(64);primary_key"`
	CompanyName          string         `gorm:"type:varchar(255)"`
	ContactName          string         `gorm:"type:varchar(255)"`
	Email                string         `gorm:"type:varchar(255)"`
	Status               string         `gorm:"type:varchar(32);not null"`
	PlanID               string         `gorm:"type:varchar(64)"`
	StripeCustomerID     string         `gorm:"type:varchar(255)"`
	StripeSubscriptionID string         `gorm:"type:varchar(255)"`
	SubscriptionStart    string         `gorm:"type:varchar(64)"`
	SubscriptionEnd      string         `gorm:"type:varchar(64)"`
	NextBillingDate      string         `gorm:"type:varchar(64)"`
	PaymentFailureCount  int            `gorm:"default:0;not null"`
	BillingInfo          datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
}

// TableName maps the model to the tenants table
func (tenantRow) TableName() string { return "tenants" }

// TenantGormRepository implements the tenant repository on Postgres.
type TenantGormRepository struct {
	db *gorm.DB
}

// NewTenantGormRepository creates a Postgres-backed tenant repository
func NewTenantGormRepository(db *gorm.DB) *TenantGormRepository {
	return &TenantGormRepository{db: db}
}

// Get returns the stored tenant, lazily inserting the trial default when the
// table has no row yet.
func (r *TenantGormRepository) Get(ctx context.Context) (*entities.Tenant, error) {
	var row tenantRow
	if err := r.db.WithContext(ctx).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			tenant := entities.NewDefaultTenant()
			if saveErr := r.Save(ctx, tenant); saveErr != nil {
				return nil, saveErr
			}
			return tenant, nil
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	return rowToTenant(&row), nil
}

// Save upserts the tenant row. Last write wins, no optimistic locking.
func (r *TenantGormRepository) Save(ctx context.Context, tenant *entities.Tenant) error {
	tenant.UpdatedAt = time.Now()

	row, err := tenantToRow(tenant)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to save tenant: %w", err)
	}
	return nil
}

func rowToTenant(row *tenantRow) *entities.Tenant {
	tenant := &entities.Tenant{
		ID:                   row.ID,
		CompanyName:          row.CompanyName,
		ContactName:          row.ContactName,
		Email:                row.Email,
		Status:               entities.TenantStatus(row.Status),
		PlanID:               row.PlanID,
		StripeCustomerID:     row.StripeCustomerID,
		StripeSubscriptionID: row.StripeSubscriptionID,
		SubscriptionStart:    row.SubscriptionStart,
		SubscriptionEnd:      row.SubscriptionEnd,
		NextBillingDate:      row.NextBillingDate,
		PaymentFailureCount:  row.PaymentFailureCount,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}
	// Malformed billing info degrades to empty fields rather than failing
	_ = json.Unmarshal(row.BillingInfo, &tenant.BillingInfo)
	return tenant
}

func tenantToRow(tenant *entities.Tenant) (*tenantRow, error) {
	billing, err := json.Marshal(tenant.BillingInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to encode billing info: %w", err)
	}
	return &tenantRow{
		ID:                   tenant.ID,
		CompanyName:          tenant.CompanyName,
		ContactName:          tenant.ContactName,
		Email:                tenant.Email,
		Status:               string(tenant.Status),
		PlanID:               tenant.PlanID,
		StripeCustomerID:     tenant.StripeCustomerID,
		StripeSubscriptionID: tenant.StripeSubscriptionID,
		SubscriptionStart:    tenant.SubscriptionStart,
		SubscriptionEnd:      tenant.SubscriptionEnd,
		NextBillingDate:      tenant.NextBillingDate,
		PaymentFailureCount:  tenant.PaymentFailureCount,
		BillingInfo:          datatypes.JSON(billing),
		CreatedAt:            tenant.CreatedAt,
		UpdatedAt:            tenant.UpdatedAt,
	}, nil
}
