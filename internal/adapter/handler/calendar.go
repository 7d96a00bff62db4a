package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/http/middleware"
	calendarUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/calendar"
)

// Calendar handles the Google Calendar connect flow and today-view
type Calendar struct {
	service *calendarUsecase.Service
	baseURL string
	logger  *zap.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(service *calendarUsecase.Service, baseURL string, logger *zap.Logger) *Calendar {
	return &Calendar{service: service, baseURL: baseURL, logger: logger}
}

// Connect handles POST /api/calendar/connect
func (h *Calendar) Connect(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	authURL, err := h.service.ConnectStart(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, map[string]string{"auth_url": authURL})
}

// Callback handles GET /api/calendar/callback. Google redirects the
// browser here, so the response is a redirect back to the app rather than
// a JSON envelope.
func (h *Calendar) Callback(c echo.Context) error {
	state := c.QueryParam("state")
	code := c.QueryParam("code")
	if state == "" || code == "" {
		return c.Redirect(http.StatusFound, h.baseURL+"/settings?calendar=error")
	}

	if err := h.service.ConnectCallback(c.Request().Context(), state, code); err != nil {
		h.logger.Warn("calendar callback failed", zap.Error(err))
		return c.Redirect(http.StatusFound, h.baseURL+"/settings?calendar=error")
	}

	return c.Redirect(http.StatusFound, h.baseURL+"/settings?calendar=connected")
}

// Disconnect handles DELETE /api/calendar
func (h *Calendar) Disconnect(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	if err := h.service.Disconnect(c.Request().Context(), user.ID); err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, nil)
}

// TodayEvents handles GET /api/calendar/today. Lookup failures degrade to
// an empty, not-connected result rather than an error.
func (h *Calendar) TodayEvents(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	result := h.service.TodayEvents(c.Request().Context(), user.ID)
	return HandleSuccess(c, h.logger, result)
}
