package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordPaymentFailure_SuspendsOnThirdStrike(t *testing.T) {
	tenant := NewDefaultTenant()
	tenant.ActivateSubscription("cus_1", "sub_1", "lite", "2026/9/1", "2026/10/1")

	tenant.RecordPaymentFailure()
	assert.Equal(t, TenantStatusPastDue, tenant.Status)
	assert.Equal(t, 1, tenant.PaymentFailureCount)

	tenant.RecordPaymentFailure()
	assert.Equal(t, TenantStatusPastDue, tenant.Status)

	tenant.RecordPaymentFailure()
	assert.Equal(t, TenantStatusSuspended, tenant.Status)
	assert.Equal(t, 3, tenant.PaymentFailureCount)
}

func TestRecordPaymentSuccess_ResetsFailureStreak(t *testing.T) {
	tenant := NewDefaultTenant()
	tenant.RecordPaymentFailure()
	tenant.RecordPaymentFailure()

	tenant.RecordPaymentSuccess()
	assert.Equal(t, TenantStatusActive, tenant.Status)
	assert.Equal(t, 0, tenant.PaymentFailureCount)
}

func TestMirrorProviderStatus(t *testing.T) {
	tests := []struct {
		provider string
		want     TenantStatus
	}{
		{"active", TenantStatusActive},
		{"past_due", TenantStatusPastDue},
		{"unpaid", TenantStatusSuspended},
		{"incomplete_expired", TenantStatusSuspended},
	}
	for _, tt := range tests {
		tenant := NewDefaultTenant()
		tenant.MirrorProviderStatus(tt.provider, "standard", "2026/10/1")
		assert.Equal(t, tt.want, tenant.Status, "provider status %s", tt.provider)
		assert.Equal(t, "standard", tenant.PlanID)
	}
}

func TestCancelSubscription_ClearsPlan(t *testing.T) {
	tenant := NewDefaultTenant()
	tenant.ActivateSubscription("cus_1", "sub_1", "enterprise", "2026/9/1", "2026/10/1")

	tenant.CancelSubscription()
	assert.Equal(t, TenantStatusCancelled, tenant.Status)
	assert.Empty(t, tenant.StripeSubscriptionID)
	assert.Empty(t, tenant.PlanID)
	// Customer id survives so a later checkout reuses the same customer
	assert.Equal(t, "cus_1", tenant.StripeCustomerID)
}
