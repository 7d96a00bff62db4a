package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
	stripeclient "github.com/salescoach-dev/sales-coach/internal/infrastructure/external/billing"
	"github.com/salescoach-dev/sales-coach/pkg/payments"
)

// Provider is the outbound payment-provider boundary
type Provider interface {
	EnsureCustomer(customerID, email, name string) (string, error)
	CreateCheckoutSession(customerID, priceID, planID, successURL, cancelURL string) (string, error)
	CreatePortalSession(customerID, returnURL string) (string, error)
	ListInvoices(customerID string, limit int64) ([]stripeclient.Invoice, error)
	GetSubscription(subscriptionID string) (*stripeclient.SubscriptionInfo, error)
}

// PriceResolver maps a plan ID to the provider's price ID
type PriceResolver func(planID string) string

// Service drives the tenant subscription state machine from provider
// webhook events and exposes the checkout/portal/invoice operations.
type Service struct {
	tenantRepo    repositories.TenantRepository
	provider      Provider
	catalog       *entities.PlanCatalog
	priceFor      PriceResolver
	webhookSecret string
	logger        *zap.Logger
}

// NewService creates a new billing service
func NewService(tenantRepo repositories.TenantRepository, provider Provider, catalog *entities.PlanCatalog, priceFor PriceResolver, webhookSecret string, logger *zap.Logger) *Service {
	return &Service{
		tenantRepo:    tenantRepo,
		provider:      provider,
		catalog:       catalog,
		priceFor:      priceFor,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// GetTenant returns the current subscription state
func (s *Service) GetTenant(ctx context.Context) (*entities.Tenant, error) {
	tenant, err := s.tenantRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return tenant, nil
}

// Plans returns the plan catalog
func (s *Service) Plans() []entities.Plan {
	return s.catalog.All()
}

// CreateCheckout starts a subscription checkout for the given plan and
// returns the hosted checkout URL.
func (s *Service) CreateCheckout(ctx context.Context, planID, successURL, cancelURL string) (string, error) {
	if _, ok := s.catalog.ByID(planID); !ok {
		return "", apperrors.ErrPlanNotFound(planID)
	}
	priceID := s.priceFor(planID)
	if priceID == "" {
		return "", apperrors.ErrPlanNotFound(planID).WithDetail("reason", "no price configured")
	}

	tenant, err := s.tenantRepo.Get(ctx)
	if err != nil {
		return "", apperrors.ErrInternal(err)
	}

	customerID, err := s.provider.EnsureCustomer(tenant.StripeCustomerID, tenant.Email, tenant.CompanyName)
	if err != nil {
		return "", apperrors.ErrBillingProviderFailed("ensure_customer", err)
	}

	if customerID != tenant.StripeCustomerID {
		tenant.StripeCustomerID = customerID
		if err := s.tenantRepo.Save(ctx, tenant); err != nil {
			return "", apperrors.ErrInternal(err)
		}
	}

	url, err := s.provider.CreateCheckoutSession(customerID, priceID, planID, successURL, cancelURL)
	if err != nil {
		return "", apperrors.ErrBillingProviderFailed("create_checkout", err)
	}
	return url, nil
}

// CreatePortal opens the hosted billing portal for the tenant
func (s *Service) CreatePortal(ctx context.Context, returnURL string) (string, error) {
	tenant, err := s.tenantRepo.Get(ctx)
	if err != nil {
		return "", apperrors.ErrInternal(err)
	}
	if tenant.StripeCustomerID == "" {
		return "", apperrors.ErrNoBillingCustomer()
	}

	url, err := s.provider.CreatePortalSession(tenant.StripeCustomerID, returnURL)
	if err != nil {
		return "", apperrors.ErrBillingProviderFailed("create_portal", err)
	}
	return url, nil
}

// ListInvoices returns the tenant's recent invoices
func (s *Service) ListInvoices(ctx context.Context) ([]stripeclient.Invoice, error) {
	tenant, err := s.tenantRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	if tenant.StripeCustomerID == "" {
		return []stripeclient.Invoice{}, nil
	}

	invoices, err := s.provider.ListInvoices(tenant.StripeCustomerID, 24)
	if err != nil {
		return nil, apperrors.ErrBillingProviderFailed("list_invoices", err)
	}
	return invoices, nil
}

// UpdateBillingInfo overwrites the postal billing address
func (s *Service) UpdateBillingInfo(ctx context.Context, info entities.BillingInfo) (*entities.Tenant, error) {
	tenant, err := s.tenantRepo.Get(ctx)
	if err != nil {
		return nil, apperrors.ErrInternal(err)
	}

	tenant.BillingInfo = info
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, apperrors.ErrInternal(err)
	}
	return tenant, nil
}

// webhookEvent is the slice of the provider event envelope the state
// machine needs.
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

type checkoutObject struct {
	Customer     string `json:"customer"`
	Subscription string `json:"subscription"`
	Metadata     struct {
		PlanID string `json:"planId"`
	} `json:"metadata"`
}

type invoiceObject struct {
	Customer string `json:"customer"`
}

type subscriptionObject struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Items            struct {
		Data []struct {
			Price struct {
				ID string `json:"id"`
			} `json:"price"`
		} `json:"data"`
	} `json:"items"`
}

// HandleWebhook verifies the event signature and applies the matching
// tenant transition. Unrecognized event types and events for a different
// customer are ignored without error; an unverifiable signature is
// rejected before any state is touched.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := payments.VerifySignature(s.webhookSecret, payload, signatureHeader, time.Now()); err != nil {
		return apperrors.ErrWebhookInvalid(err)
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return apperrors.ErrWebhookInvalid(fmt.Errorf("malformed event payload: %w", err))
	}

	tenant, err := s.tenantRepo.Get(ctx)
	if err != nil {
		return apperrors.ErrInternal(err)
	}

	changed := false
	switch event.Type {
	case "checkout.session.completed":
		changed, err = s.applyCheckoutCompleted(tenant, event.Data.Object)
	case "invoice.payment_succeeded":
		changed, err = s.applyPaymentResult(tenant, event.Data.Object, true)
	case "invoice.payment_failed":
		changed, err = s.applyPaymentResult(tenant, event.Data.Object, false)
	case "customer.subscription.updated":
		changed, err = s.applySubscriptionUpdated(tenant, event.Data.Object)
	case "customer.subscription.deleted":
		changed, err = s.applySubscriptionDeleted(tenant, event.Data.Object)
	default:
		s.logger.Debug("ignoring webhook event", zap.String("type", event.Type))
		return nil
	}
	if err != nil {
		return apperrors.ErrWebhookInvalid(err)
	}
	if !changed {
		return nil
	}

	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return apperrors.ErrInternal(err)
	}

	s.logger.Info("tenant transition applied",
		zap.String("event", event.Type),
		zap.String("status", string(tenant.Status)),
		zap.Int("failure_count", tenant.PaymentFailureCount))
	return nil
}

// ownsCustomer guards the single tenant row against event leakage from
// other customers in the same provider account. An unset customer id means
// the tenant has never checked out; only checkout events may claim it.
func (s *Service) ownsCustomer(tenant *entities.Tenant, customer string) bool {
	if customer == "" {
		return false
	}
	return tenant.StripeCustomerID == "" || tenant.StripeCustomerID == customer
}

func (s *Service) applyCheckoutCompleted(tenant *entities.Tenant, object json.RawMessage) (bool, error) {
	var checkout checkoutObject
	if err := json.Unmarshal(object, &checkout); err != nil {
		return false, fmt.Errorf("malformed checkout object: %w", err)
	}
	if !s.ownsCustomer(tenant, checkout.Customer) {
		s.logger.Warn("checkout event for foreign customer ignored", zap.String("customer", checkout.Customer))
		return false, nil
	}

	start := time.Now().Format("2006/1/2")
	nextBilling := ""
	if checkout.Subscription != "" && s.provider != nil {
		if sub, err := s.provider.GetSubscription(checkout.Subscription); err == nil {
			nextBilling = sub.CurrentPeriodEnd.Format("2006/1/2")
		}
	}

	tenant.ActivateSubscription(checkout.Customer, checkout.Subscription, checkout.Metadata.PlanID, start, nextBilling)
	return true, nil
}

func (s *Service) applyPaymentResult(tenant *entities.Tenant, object json.RawMessage, succeeded bool) (bool, error) {
	var invoice invoiceObject
	if err := json.Unmarshal(object, &invoice); err != nil {
		return false, fmt.Errorf("malformed invoice object: %w", err)
	}
	if tenant.StripeCustomerID == "" || tenant.StripeCustomerID != invoice.Customer {
		s.logger.Warn("invoice event for foreign customer ignored", zap.String("customer", invoice.Customer))
		return false, nil
	}

	if succeeded {
		tenant.RecordPaymentSuccess()
	} else {
		tenant.RecordPaymentFailure()
	}
	return true, nil
}

func (s *Service) applySubscriptionUpdated(tenant *entities.Tenant, object json.RawMessage) (bool, error) {
	var sub subscriptionObject
	if err := json.Unmarshal(object, &sub); err != nil {
		return false, fmt.Errorf("malformed subscription object: %w", err)
	}
	if tenant.StripeCustomerID == "" || tenant.StripeCustomerID != sub.Customer {
		s.logger.Warn("subscription event for foreign customer ignored", zap.String("customer", sub.Customer))
		return false, nil
	}

	planID := ""
	if len(sub.Items.Data) > 0 {
		if plan, ok := s.catalog.ByPriceID(sub.Items.Data[0].Price.ID); ok {
			planID = plan.ID
		}
	}
	nextBilling := ""
	if sub.CurrentPeriodEnd > 0 {
		nextBilling = time.Unix(sub.CurrentPeriodEnd, 0).Format("2006/1/2")
	}

	tenant.MirrorProviderStatus(sub.Status, planID, nextBilling)
	return true, nil
}

func (s *Service) applySubscriptionDeleted(tenant *entities.Tenant, object json.RawMessage) (bool, error) {
	var sub subscriptionObject
	if err := json.Unmarshal(object, &sub); err != nil {
		return false, fmt.Errorf("malformed subscription object: %w", err)
	}
	if tenant.StripeCustomerID == "" || tenant.StripeCustomerID != sub.Customer {
		s.logger.Warn("subscription event for foreign customer ignored", zap.String("customer", sub.Customer))
		return false, nil
	}

	tenant.CancelSubscription()
	return true, nil
}
