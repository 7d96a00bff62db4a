package handler

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/errors"
	billingdto "github.com/salescoach-dev/sales-coach/internal/adapter/dto/billing"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	billingUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/billing"
)

// Billing handles subscription state, checkout and the provider webhook
type Billing struct {
	service *billingUsecase.Service
	baseURL string
	logger  *zap.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(service *billingUsecase.Service, baseURL string, logger *zap.Logger) *Billing {
	return &Billing{service: service, baseURL: baseURL, logger: logger}
}

// GetTenant handles GET /api/billing/tenant
func (h *Billing) GetTenant(c echo.Context) error {
	tenant, err := h.service.GetTenant(c.Request().Context())
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, tenant)
}

// ListPlans handles GET /api/billing/plans
func (h *Billing) ListPlans(c echo.Context) error {
	return HandleSuccess(c, h.logger, h.service.Plans())
}

// CreateCheckout handles POST /api/billing/checkout
func (h *Billing) CreateCheckout(c echo.Context) error {
	var req billingdto.CheckoutRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	successURL := fmt.Sprintf("%s/billing?checkout=success", h.baseURL)
	cancelURL := fmt.Sprintf("%s/billing?checkout=cancel", h.baseURL)

	url, err := h.service.CreateCheckout(c.Request().Context(), req.PlanID, successURL, cancelURL)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, billingdto.CheckoutResponse{URL: url})
}

// CreatePortal handles POST /api/billing/portal
func (h *Billing) CreatePortal(c echo.Context) error {
	returnURL := fmt.Sprintf("%s/billing", h.baseURL)

	url, err := h.service.CreatePortal(c.Request().Context(), returnURL)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, billingdto.CheckoutResponse{URL: url})
}

// ListInvoices handles GET /api/billing/invoices
func (h *Billing) ListInvoices(c echo.Context) error {
	invoices, err := h.service.ListInvoices(c.Request().Context())
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, invoices)
}

// UpdateBillingInfo handles PUT /api/billing/info
func (h *Billing) UpdateBillingInfo(c echo.Context) error {
	var req billingdto.BillingInfoRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	tenant, err := h.service.UpdateBillingInfo(c.Request().Context(), entities.BillingInfo{
		CompanyName:  req.CompanyName,
		Department:   req.Department,
		ContactName:  req.ContactName,
		PostalCode:   req.PostalCode,
		Address:      req.Address,
		BillingEmail: req.BillingEmail,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, tenant)
}

// Webhook handles POST /api/billing/webhook. The raw body is verified
// against the shared secret before any parsing or state change.
func (h *Billing) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(c, h.logger, errors.ErrInvalidPayload())
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.service.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, nil)
}
