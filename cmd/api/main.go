package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/salescoach-dev/sales-coach/internal/adapter/handler"
	"github.com/salescoach-dev/sales-coach/internal/adapter/repository"
	"github.com/salescoach-dev/sales-coach/internal/domain/entities"
	"github.com/salescoach-dev/sales-coach/internal/domain/repositories"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/cache"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/database"
	stripeclient "github.com/salescoach-dev/sales-coach/internal/infrastructure/external/billing"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/external/googlecal"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/external/oauth"
	httpmw "github.com/salescoach-dev/sales-coach/internal/infrastructure/http/middleware"
	"github.com/salescoach-dev/sales-coach/internal/infrastructure/storage"
	authUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/auth"
	billingUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/billing"
	calendarUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/calendar"
	"github.com/salescoach-dev/sales-coach/internal/usecase/coach"
	exportUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/export"
	historyUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/history"
	wordsUsecase "github.com/salescoach-dev/sales-coach/internal/usecase/words"
	"github.com/salescoach-dev/sales-coach/pkg/ai"
	"github.com/salescoach-dev/sales-coach/pkg/config"
	"github.com/salescoach-dev/sales-coach/pkg/jwt"
	"github.com/salescoach-dev/sales-coach/pkg/sms"
	pkgvalidator "github.com/salescoach-dev/sales-coach/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true

	e.Use(echomw.LoggerWithConfig(echomw.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("🔧 Initializing dependencies...")

	// Database holds user accounts (and the tenant row when configured)
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Short-lived state store: Redis when configured, in-memory otherwise
	var stateStore oauth.Store
	if redisStore, err := cache.NewRedisStore(cfg); err == nil {
		defer redisStore.Close()
		stateStore = redisStore
	} else {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory state store", err)
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		stateStore = memStore
	}

	// Repositories
	log.Println("⚙️  Initializing repositories...")
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	userRepo := repository.NewUserRepository(db)
	historyRepo := repository.NewHistoryFileRepository(cfg.Data.HistoryFile)
	wordRepo := repository.NewWordFileRepository(cfg.Data.WordsFile)

	var tenantRepo repositories.TenantRepository
	if cfg.Data.TenantStore == "postgres" {
		tenantRepo = repository.NewTenantGormRepository(db)
	} else {
		tenantRepo = repository.NewTenantFileRepository(cfg.Data.TenantFile)
	}

	// External clients
	log.Println("🤖 Initializing external clients...")
	openaiClient := ai.NewOpenAIClient(&cfg.OpenAI)
	twilioClient := sms.NewTwilioClient(&cfg.Twilio)
	stripeAPI := stripeclient.NewStripeClient(cfg.Stripe.SecretKey)
	calendarClient := googlecal.NewClient()

	googleProvider := oauth.NewGoogleProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.RedirectURL,
	)
	stateManager := oauth.NewStateManager(stateStore)

	var archiver exportUsecase.Archiver
	if cfg.Storage.Enabled {
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archiver = minioClient
		log.Println("🗄️  Report archiving enabled")
	}

	// JWT manager
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Services
	log.Println("✨ Initializing services...")
	catalog := entities.NewPlanCatalog(
		cfg.Stripe.PriceIDLite,
		cfg.Stripe.PriceIDStandard,
		cfg.Stripe.PriceIDEnterprise,
	)

	authService := authUsecase.NewService(userRepo, jwtManager, twilioClient, logger)
	chatService := coach.NewChatService(openaiClient, historyRepo, logger)
	historyService := historyUsecase.NewService(historyRepo)
	wordsService := wordsUsecase.NewService(wordRepo)
	exporter := exportUsecase.NewExporter(archiver, logger)
	billingService := billingUsecase.NewService(tenantRepo, stripeAPI, catalog, cfg.PriceIDFor, cfg.Stripe.WebhookSecret, logger)
	calendarService := calendarUsecase.NewService(userRepo, googleProvider, stateManager, calendarClient, logger)

	// Handlers and routes
	log.Println("🛣️  Setting up routes...")
	authMW := httpmw.NewAuthMiddleware(jwtManager, userRepo, tenantRepo)

	router := handler.NewRouter(
		cfg,
		authMW,
		handler.NewAuthHandler(authService, logger),
		handler.NewChatHandler(chatService, logger),
		handler.NewHistoryHandler(historyService, logger),
		handler.NewExportHandler(exporter, historyService, logger),
		handler.NewWordsHandler(wordsService, logger),
		handler.NewBillingHandler(billingService, cfg.Server.BaseURL, logger),
		handler.NewCalendarHandler(calendarService, cfg.Server.BaseURL, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
