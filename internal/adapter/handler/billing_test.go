package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/internal/adapter/repository"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	billingUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/billing"
	"github.com/salescoach-dev/sales-coach/pkg/payments"
	"github.com/salescoach-dev/sales-coach/pkg/validator"
)

const handlerWebhookSecret = "whsec_handler_test"

func newBillingEcho(t *testing.T) (*echo.Echo, *Billing, *repository.TenantFileRepository) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.New()

	repo := repository.NewTenantFileRepository(filepath.Join(t.TempDir(), "tenant.json"))
	catalog := entities.NewPlanCatalog("price_lite", "price_std", "price_ent")
	service := billingUsecase.NewService(repo, nil, catalog, func(string) string { return "" }, handlerWebhookSecret, zap.NewNop())
	return e, NewBillingHandler(service, "https://app.example", zap.NewNop()), repo
}

func TestWebhook_BadSignatureRejected(t *testing.T) {
	e, h, repo := newBillingEcho(t)

	payload := `{"type": "checkout.session.completed", "data": {"object": {"customer": "cus_1"}}}`
	req := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t=1,v1=bad")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Webhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	tenant, err := repo.Get(c.Request().Context())
	require.NoError(t, err)
	assert.Equal(t, entities.TenantStatusTrial, tenant.Status)
}

func TestWebhook_SignedCheckoutActivates(t *testing.T) {
	e, h, repo := newBillingEcho(t)

	payload := `{"type": "checkout.session.completed", "data": {"object": {"customer": "cus_1", "subscription": "sub_1", "metadata": {"planId": "lite"}}}}`
	header := payments.SignatureHeader(handlerWebhookSecret, []byte(payload), time.Now().Unix())

	req := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", header)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Webhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	tenant, err := repo.Get(c.Request().Context())
	require.NoError(t, err)
	assert.Equal(t, entities.TenantStatusActive, tenant.Status)
	assert.Equal(t, "lite", tenant.PlanID)
}

func TestListPlans(t *testing.T) {
	e, h, _ := newBillingEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/billing/plans", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ListPlans(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lite")
	assert.Contains(t, rec.Body.String(), "enterprise")
}
