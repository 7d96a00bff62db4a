package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
	"github.com/salescoach-dev/sales-coach/pkg/jwt"
)

const (
	// UserContextKey is the echo context key for the authenticated user
	UserContextKey = "user"
	// ClaimsContextKey is the echo context key for the parsed JWT claims
	ClaimsContextKey = "claims"
)

// AuthMiddleware validates JWT access tokens and loads the user
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	userRepo   repositories.UserRepository
	tenantRepo repositories.TenantRepository
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *jwt.Manager, userRepo repositories.UserRepository, tenantRepo repositories.TenantRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
	}
}

// Authenticate validates the access token and sets the user into context
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
		}

		claims, err := m.jwtManager.ValidateAccessToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}
		if !user.IsActive {
			return echo.NewHTTPError(http.StatusForbidden, "Account is disabled")
		}

		c.Set(UserContextKey, user)
		c.Set(ClaimsContextKey, claims)

		return next(c)
	}
}

// RequireTwoFactor rejects tokens issued before SMS verification completed.
// Login returns a provisional token; only the token issued by the 2FA
// verify endpoint carries the verified flag.
func (m *AuthMiddleware) RequireTwoFactor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(ClaimsContextKey).(*jwt.Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
		}
		if !claims.TwoFactorVerified {
			return echo.NewHTTPError(http.StatusForbidden, "Two-factor verification required")
		}
		return next(c)
	}
}

// RequireActiveTenant blocks coaching endpoints while the subscription is
// suspended or cancelled. Trial, active and past_due tenants pass.
func (m *AuthMiddleware) RequireActiveTenant(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tenant, err := m.tenantRepo.Get(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load tenant")
		}

		switch tenant.Status {
		case entities.TenantStatusSuspended, entities.TenantStatusCancelled:
			return echo.NewHTTPError(http.StatusPaymentRequired, "Subscription is not active")
		}

		return next(c)
	}
}

// GetUser retrieves the authenticated user from echo context
func GetUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(UserContextKey).(*entities.User)
	return user, ok
}

func extractToken(c echo.Context) string {
	// Try Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// Try cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
