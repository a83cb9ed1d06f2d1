package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sparetrack/sparetrack-api/internal/application/service"
	"github.com/sparetrack/sparetrack-api/internal/config"
	"github.com/sparetrack/sparetrack-api/internal/infrastructure/database"
	"github.com/sparetrack/sparetrack-api/internal/infrastructure/repository"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/handler"
	"github.com/sparetrack/sparetrack-api/internal/presentation/http/routes"
	"github.com/sparetrack/sparetrack-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := config.NewLogger(&cfg.App)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the first shop and master account on an empty database
	if err := database.SeedDefaultData(db, &cfg.App); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	txManager := database.NewGormTxManager(db)
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewRetailerProfileRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	itemRepo := repository.NewItemRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	returnRepo := repository.NewReturnRepository(db)
	partnerRepo := repository.NewDeliveryPartnerRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Expired idempotency keys are garbage-collected in the background.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.WithError(err).Warn("idempotency key cleanup failed")
			}
		}
	}()

	// Initialize services
	resolver := service.NewCustomerResolver(userRepo, profileRepo)
	ledgerService := service.NewLedgerService(txManager, ledgerRepo, profileRepo, userRepo)
	authService := service.NewAuthService(userRepo, jwtManager, logger)
	shopUserService := service.NewShopUserService(txManager, userRepo, profileRepo, logger)
	itemService := service.NewItemService(itemRepo, categoryRepo, locationRepo, logger)
	categoryService := service.NewCategoryService(txManager, categoryRepo, itemRepo, logger)
	directoryService := service.NewDirectoryService(locationRepo, partnerRepo, itemRepo, logger)
	billingService := service.NewBillingService(txManager, invoiceRepo, itemRepo, profileRepo, resolver, ledgerService, logger)
	orderService := service.NewOrderService(txManager, orderRepo, itemRepo, invoiceRepo, userRepo, partnerRepo, ledgerService, logger)
	returnService := service.NewReturnService(txManager, returnRepo, orderRepo, itemRepo, ledgerService, logger)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Item:      handler.NewItemHandler(itemService),
		Category:  handler.NewCategoryHandler(categoryService),
		Directory: handler.NewDirectoryHandler(directoryService),
		Invoice:   handler.NewInvoiceHandler(billingService),
		Ledger:    handler.NewLedgerHandler(ledgerService),
		Order:     handler.NewOrderHandler(orderService),
		Return:    handler.NewReturnHandler(returnService),
		User:      handler.NewUserHandler(shopUserService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Infof("Starting %s server on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
