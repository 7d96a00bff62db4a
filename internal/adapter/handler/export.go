package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/errors"
	exportUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/export"
	historyUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/history"
)

// Export handles report downloads for saved debriefs
type Export struct {
	exporter *exportUsecase.Exporter
	history  *historyUsecase.Service
	logger   *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter *exportUsecase.Exporter, history *historyUsecase.Service, logger *zap.Logger) *Export {
	return &Export{exporter: exporter, history: history, logger: logger}
}

// Download handles GET /api/history/:id/export. The report streams as an
// attachment; the filename is percent-encoded for the Japanese customer
// name.
func (h *Export) Download(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return HandleError(c, h.logger, errors.ErrInvalidArgument("id is required"))
	}

	record, err := h.history.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	report := h.exporter.Export(c.Request().Context(), *record)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(report.Filename)))
	return c.Blob(http.StatusOK, report.ContentType, []byte(report.Body))
}
