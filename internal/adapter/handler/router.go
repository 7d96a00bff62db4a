package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salescoach-dev/sales-coach/internal/infrastructure/http/middleware"
	"github.com/salescoach-dev/sales-coach/pkg/config"
)

// Router holds all handlers and the auth middleware
type Router struct {
	cfg             *config.Config
	authMiddleware  *middleware.AuthMiddleware
	authHandler     *Auth
	chatHandler     *Chat
	historyHandler  *History
	exportHandler   *Export
	wordsHandler    *Words
	billingHandler  *Billing
	calendarHandler *Calendar
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *Auth,
	chatHandler *Chat,
	historyHandler *History,
	exportHandler *Export,
	wordsHandler *Words,
	billingHandler *Billing,
	calendarHandler *Calendar,
) *Router {
	return &Router{
		cfg:             cfg,
		authMiddleware:  authMiddleware,
		authHandler:     authHandler,
		chatHandler:     chatHandler,
		historyHandler:  historyHandler,
		exportHandler:   exportHandler,
		wordsHandler:    wordsHandler,
		billingHandler:  billingHandler,
		calendarHandler: calendarHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	api := e.Group("/api")

	rt.setupAuthRoutes(api)
	rt.setupChatRoutes(api)
	rt.setupHistoryRoutes(api)
	rt.setupWordRoutes(api)
	rt.setupBillingRoutes(api)
	rt.setupCalendarRoutes(api)
}

func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/register", rt.authHandler.Register)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)

	// Provisional token from login is enough for the 2FA endpoints
	provisional := authGroup.Group("", rt.authMiddleware.Authenticate)
	provisional.POST("/verify-code", rt.authHandler.VerifyCode)
	provisional.POST("/resend-code", rt.authHandler.ResendCode)

	verified := authGroup.Group("", rt.authMiddleware.Authenticate, rt.authMiddleware.RequireTwoFactor)
	verified.GET("/profile", rt.authHandler.GetProfile)
	verified.PUT("/profile", rt.authHandler.UpdateProfile)
	verified.PUT("/password", rt.authHandler.ChangePassword)
}

func (rt *Router) setupChatRoutes(g *echo.Group) {
	chatGroup := g.Group("/chat",
		rt.authMiddleware.Authenticate,
		rt.authMiddleware.RequireTwoFactor,
		rt.authMiddleware.RequireActiveTenant)

	chatGroup.GET("/seed", rt.chatHandler.Seed)
	chatGroup.POST("", rt.chatHandler.Exchange)
}

func (rt *Router) setupHistoryRoutes(g *echo.Group) {
	historyGroup := g.Group("/history", rt.authMiddleware.Authenticate, rt.authMiddleware.RequireTwoFactor)

	historyGroup.GET("", rt.historyHandler.List)
	historyGroup.GET("/:id", rt.historyHandler.Get)
	historyGroup.DELETE("/:id", rt.historyHandler.Delete)
	historyGroup.GET("/:id/export", rt.exportHandler.Download)
}

func (rt *Router) setupWordRoutes(g *echo.Group) {
	wordGroup := g.Group("/words", rt.authMiddleware.Authenticate, rt.authMiddleware.RequireTwoFactor)

	wordGroup.GET("", rt.wordsHandler.List)
	wordGroup.POST("", rt.wordsHandler.Add)
	wordGroup.DELETE("/:reading", rt.wordsHandler.Remove)
}

func (rt *Router) setupBillingRoutes(g *echo.Group) {
	billingGroup := g.Group("/billing")

	// The provider signs the webhook; no user session is involved
	billingGroup.POST("/webhook", rt.billingHandler.Webhook)

	authed := billingGroup.Group("", rt.authMiddleware.Authenticate, rt.authMiddleware.RequireTwoFactor)
	authed.GET("/tenant", rt.billingHandler.GetTenant)
	authed.GET("/plans", rt.billingHandler.ListPlans)
	authed.POST("/checkout", rt.billingHandler.CreateCheckout)
	authed.POST("/portal", rt.billingHandler.CreatePortal)
	authed.GET("/invoices", rt.billingHandler.ListInvoices)
	authed.PUT("/info", rt.billingHandler.UpdateBillingInfo)
}

func (rt *Router) setupCalendarRoutes(g *echo.Group) {
	calendarGroup := g.Group("/calendar")

	// Google redirects the browser here; the state token authenticates
	calendarGroup.GET("/callback", rt.calendarHandler.Callback)

	authed := calendarGroup.Group("", rt.authMiddleware.Authenticate, rt.authMiddleware.RequireTwoFactor)
	authed.POST("/connect", rt.calendarHandler.Connect)
	authed.DELETE("", rt.calendarHandler.Disconnect)
	authed.GET("/today", rt.calendarHandler.TodayEvents)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
