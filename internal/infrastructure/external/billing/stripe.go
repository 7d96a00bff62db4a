package billing

import (
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

// Invoice is a paid or pending invoice, flattened for the billing screen.
type Invoice struct {
	ID        string `json:"id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	Date      string `json:"date"`
	HostedURL string `json:"hostedUrl,omitempty"`
	PDFURL    string `json:"pdfUrl,omitempty"`
}

// SubscriptionInfo is the slice of provider subscription state the tenant
// mirrors on subscription.updated events.
type SubscriptionInfo struct {
	ID               string
	Status           string
	PriceID          string
	CurrentPeriodEnd time.Time
}

// StripeClient wraps the Stripe API for customer, checkout, portal and
// invoice operations. Webhook verification lives in pkg/payments; this
// client only makes outbound calls.
type StripeClient struct {
	api *client.API
}

// NewStripeClient creates a Stripe API client with the given secret key
func NewStripeClient(secretKey string) *StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api}
}

// EnsureCustomer returns the given customer ID if set, otherwise creates a
// new customer for the tenant contact.
func (s *StripeClient) EnsureCustomer(customerID, email, name string) (string, error) {
	if customerID != "" {
		return customerID, nil
	}

	customer, err := s.api.Customers.New(&stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return customer.ID, nil
}

// CreateCheckoutSession starts a subscription checkout for the given price
// and returns the hosted checkout URL.
func (s *StripeClient) CreateCheckoutSession(customerID, priceID, planID, successURL, cancelURL string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Customer: stripe.String(customerID),
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	params.AddMetadata("planId", planID)

	session, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session.URL, nil
}

// CreatePortalSession opens the hosted billing portal for the customer
func (s *StripeClient) CreatePortalSession(customerID, returnURL string) (string, error) {
	session, err := s.api.BillingPortalSessions.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	return session.URL, nil
}

// ListInvoices returns the most recent invoices for the customer
func (s *StripeClient) ListInvoices(customerID string, limit int64) ([]Invoice, error) {
	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
	}
	params.Limit = stripe.Int64(limit)

	invoices := make([]Invoice, 0, limit)
	iter := s.api.Invoices.List(params)
	for iter.Next() {
		inv := iter.Invoice()
		invoices = append(invoices, Invoice{
			ID:        inv.ID,
			Amount:    inv.AmountDue,
			Currency:  string(inv.Currency),
			Status:    string(inv.Status),
			Date:      time.Unix(inv.Created, 0).Format("2006/1/2"),
			HostedURL: inv.HostedInvoiceURL,
			PDFURL:    inv.InvoicePDF,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// GetSubscription fetches current subscription state from the provider
func (s *StripeClient) GetSubscription(subscriptionID string) (*SubscriptionInfo, error) {
	sub, err := s.api.Subscriptions.Get(subscriptionID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	info := &SubscriptionInfo{
		ID:               sub.ID,
		Status:           string(sub.Status),
		CurrentPeriodEnd: time.Unix(sub.CurrentPeriodEnd, 0),
	}
	if len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		info.PriceID = sub.Items.Data[0].Price.ID
	}
	return info, nil
}
