package entities

import "time"

// TenantStatus is the subscription state of the deployment
type TenantStatus string

const (
	TenantStatusTrial     TenantStatus = "trial"
	TenantStatusActive    TenantStatus = "active"
	TenantStatusPastDue   TenantStatus = "past_due"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusCancelled TenantStatus = "cancelled"
)

// IsValid checks if the tenant status is valid
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusTrial, TenantStatusActive, TenantStatusPastDue, TenantStatusSuspended, TenantStatusCancelled:
		return true
	}
	return false
}

// suspensionThreshold is the payment failure count at which the tenant is
// suspended rather than merely past due.
const suspensionThreshold = 3

// BillingInfo holds the postal billing address shown on invoices.
type BillingInfo struct {
	CompanyName  string `json:"companyName"`
	Department   string `json:"department"`
	ContactName  string `json:"contactName"`
	PostalCode   string `json:"postalCode"`
	Address      string `json:"address"`
	BillingEmail string `json:"billingEmail"`
}

// Tenant is the single row of subscription state for the whole deployment.
// It is mutated only by billing webhook events and the billing-info edit
// endpoint; concurrent writers are resolved last-write-wins.
type Tenant struct {
	ID                   string       `json:"id"`
	CompanyName          string       `json:"companyName"`
	ContactName          string       `json:"contactName"`
	Email                string       `json:"email"`
	Status               TenantStatus `json:"status"`
	PlanID               string       `json:"planId"`
	StripeCustomerID     string       `json:"stripeCustomerId"`
	StripeSubscriptionID string       `json:"stripeSubscriptionId"`
	SubscriptionStart    string       `json:"subscriptionStart"`
	SubscriptionEnd      string       `json:"subscriptionEnd"`
	NextBillingDate      string       `json:"nextBillingDate"`
	PaymentFailureCount  int          `json:"paymentFailureCount"`
	BillingInfo          BillingInfo  `json:"billingInfo"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// NewDefaultTenant returns the trial tenant lazily materialized on first read.
func NewDefaultTenant() *Tenant {
	now := time.Now()
	return &Tenant{
		ID:          "default",
		CompanyName: "株式会社サンプル",
		Status:      TenantStatusTrial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ActivateSubscription applies a completed checkout: the tenant becomes
// active on the given plan and any failure streak resets.
func (t *Tenant) ActivateSubscription(customerID, subscriptionID, planID, start, nextBilling string) {
	t.StripeCustomerID = customerID
	t.StripeSubscriptionID = subscriptionID
	t.Status = TenantStatusActive
	t.PlanID = planID
	t.SubscriptionStart = start
	t.NextBillingDate = nextBilling
	t.PaymentFailureCount = 0
}

// RecordPaymentSuccess resets the failure streak and reactivates the tenant.
func (t *Tenant) RecordPaymentSuccess() {
	t.Status = TenantStatusActive
	t.PaymentFailureCount = 0
}

// RecordPaymentFailure increments the failure streak; three consecutive
// failures suspend the tenant, fewer leave it past due.
func (t *Tenant) RecordPaymentFailure() {
	t.PaymentFailureCount++
	if t.PaymentFailureCount >= suspensionThreshold {
		t.Status = TenantStatusSuspended
	} else {
		t.Status = TenantStatusPastDue
	}
}

// MirrorProviderStatus maps the billing provider's subscription status onto
// the tenant: active and past_due pass through, everything else suspends.
func (t *Tenant) MirrorProviderStatus(providerStatus, planID, nextBilling string) {
	switch providerStatus {
	case "active":
		t.Status = TenantStatusActive
	case "past_due":
		t.Status = TenantStatusPastDue
	default:
		t.Status = TenantStatusSuspended
	}
	if planID != "" {
		t.PlanID = planID
	}
	if nextBilling != "" {
		t.NextBillingDate = nextBilling
	}
}

// CancelSubscription ends the current cycle. A later checkout re-activates
// by overwriting plan and status; there is no separate entity per cycle.
func (t *Tenant) CancelSubscription() {
	t.Status = TenantStatusCancelled
	t.StripeSubscriptionID = ""
	t.PlanID = ""
}
