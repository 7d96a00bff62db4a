package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/salescoach-dev/sales-coach/errors"
	authdto "github.com/salescoach-dev/sales-coach/internal/adapter/dto/auth"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/http/middleware"
	authUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/auth"
)

// Auth handles registration, login and the two-factor step
type Auth struct {
	service *authUsecase.Service
	logger  *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *authUsecase.Service, logger *zap.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

// Register handles POST /api/auth/register
func (h *Auth) Register(c echo.Context) error {
	var req authdto.RegisterRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	user, err := h.service.Register(c.Request().Context(), authUsecase.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Company:    req.Company,
		Department: req.Department,
		Position:   req.Position,
		Phone:      req.Phone,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, user)
}

// Login handles POST /api/auth/login. A correct password triggers the SMS
// code; the returned token only grants access to the verify endpoint.
func (h *Auth) Login(c echo.Context) error {
	var req authdto.LoginRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, result)
}

// VerifyCode handles POST /api/auth/verify-code
func (h *Auth) VerifyCode(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	var req authdto.VerifyCodeRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	pair, err := h.service.VerifyTwoFactorCode(c.Request().Context(), user.ID, req.Code)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, pair)
}

// ResendCode handles POST /api/auth/resend-code
func (h *Auth) ResendCode(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	if err := h.service.ResendTwoFactorCode(c.Request().Context(), user.ID); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, nil)
}

// Refresh handles POST /api/auth/refresh
func (h *Auth) Refresh(c echo.Context) error {
	var req authdto.RefreshRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	pair, err := h.service.RefreshTokens(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, pair)
}

// GetProfile handles GET /api/auth/profile
func (h *Auth) GetProfile(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	profile, err := h.service.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, profile)
}

// UpdateProfile handles PUT /api/auth/profile
func (h *Auth) UpdateProfile(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	var req authdto.UpdateProfileRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), user.ID, authUsecase.ProfileInput{
		Name:       req.Name,
		Company:    req.Company,
		Department: req.Department,
		Position:   req.Position,
		Phone:      req.Phone,
	})
	if err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, profile)
}

// ChangePassword handles PUT /api/auth/password
func (h *Auth) ChangePassword(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(c, h.logger, errors.ErrUnauthenticated())
	}

	var req authdto.ChangePasswordRequest
	if err := BindAndValidate(c, &req); err != nil {
		return HandleError(c, h.logger, err)
	}

	if err := h.service.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return HandleError(c, h.logger, err)
	}

	return HandleSuccess(c, h.logger, nil)
}
