package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/errors"
	historyUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/history"
)

// History handles the saved debrief archive endpoints
type History struct {
	service *historyUsecase.Service
	logger  *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service *historyUsecase.Service, logger *zap.Logger) *History {
	return &History{service: service, logger: logger}
}

// List handles GET /api/history
func (h *History) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, records)
}

// Get handles GET /api/history/:id
func (h *History) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return HandleError(c, h.logger, errors.ErrInvalidArgument("id is required"))
	}

	record, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, record)
}

// Delete handles DELETE /api/history/:id. Deleting an absent id is a
// no-op; the remaining list is returned either way.
func (h *History) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return HandleError(c, h.logger, errors.ErrInvalidArgument("id is required"))
	}

	records, err := h.service.Delete(c.Request().Context(), id)
	if err != nil {
		return HandleError(c, h.logger, err)
	}
	return HandleSuccess(c, h.logger, records)
}
