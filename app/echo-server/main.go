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

	"viralWallet/app/echo-server/router"
	"viralWallet/business/catalog"
	"viralWallet/business/ledger"
	"viralWallet/business/orders"
	"viralWallet/business/processor"
	"viralWallet/business/support"
	userService "viralWallet/business/user"
	"viralWallet/business/wallet"
	"viralWallet/internal/middleware"
	"viralWallet/internal/repository/notification"
	psqlRepo "viralWallet/internal/repository/postgres"
	"viralWallet/internal/rest"
	"viralWallet/pkg/config"
	"viralWallet/pkg/database"
	"viralWallet/pkg/logger"
	"viralWallet/pkg/metrics"
	"viralWallet/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting ViralWallet", "version", cfg.App.Version)

	if err := utils.InitJWT(cfg.JWT.SecretKey); err != nil {
		logger.Fatal("Failed to initialize JWT", "error", err)
	}

	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	if err := database.SeedServices(db); err != nil {
		logger.Fatal("Failed to seed service catalog", "error", err)
	}

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	serviceRepo := psqlRepo.NewServiceRepository(db)
	orderRepo := psqlRepo.NewOrderRepository(db)
	walletRepo := psqlRepo.NewWalletRepository(db)
	supportRepo := psqlRepo.NewSupportRepository(db)

	// Init service
	usersService := userService.NewUserService(userRepo, validate, mailjetEmail, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	catalogService := catalog.NewCatalogService(serviceRepo)
	ledgerService := ledger.NewLedgerService(userRepo)
	ordersService := orders.NewOrdersService(orderRepo, serviceRepo)
	walletService := wallet.NewWalletService(walletRepo, userRepo, cfg.Wallet.MinTopUp)
	supportService := support.NewSupportService(supportRepo, userRepo)

	// Background order auto-completion
	orderProcessor := processor.New(ordersService, cfg.Orders.GracePeriod, cfg.Orders.ProcessorInterval)
	orderProcessor.Start()

	// Init handler
	userHandler := rest.NewUserHandler(usersService)
	servicesHandler := rest.NewServicesHandler(catalogService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	walletHandler := rest.NewWalletHandler(walletService, ledgerService)
	supportHandler := rest.NewSupportHandler(supportService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, adminOnly)
	router.SetupServiceRoutes(api, servicesHandler, authRequired, adminOnly)
	router.SetupOrderRoutes(api, ordersHandler, authRequired, adminOnly)
	router.SetupWalletRoutes(api, walletHandler, authRequired, adminOnly)
	router.SetupSupportRoutes(api, supportHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	orderProcessor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
