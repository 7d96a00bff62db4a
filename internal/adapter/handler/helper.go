package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/errors"
	"github.com/salescoach-dev/sales-coach/internal/adapter/dto/common"
)

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	return c.Request().Header.Get("X-Request-ID")
}

// HandleSuccess writes a standardized success response
func HandleSuccess(c echo.Context, logger *zap.Logger, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()))
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError writes a standardized error response. AppErrors carry their
// own status and code; anything else becomes a 500.
func HandleError(c echo.Context, logger *zap.Logger, err error) error {
	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrInternal(err)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("code", appErr.Code.String()),
			zap.Error(err))
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Code:    int(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// BindAndValidate decodes and validates a request payload
func BindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload().WithDetail("reason", err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidPayload().WithDetail("reason", err.Error())
	}
	return nil
}
