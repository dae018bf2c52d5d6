package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/belanjaku/belanjaku-backend/config"
	"github.com/belanjaku/belanjaku-backend/internal/app/controller"
	"github.com/belanjaku/belanjaku-backend/internal/app/repository"
	"github.com/belanjaku/belanjaku-backend/internal/app/service"
	"github.com/belanjaku/belanjaku-backend/internal/db"
	"github.com/belanjaku/belanjaku-backend/internal/middleware"
	"github.com/belanjaku/belanjaku-backend/internal/router"
	"github.com/belanjaku/belanjaku-backend/internal/scheduler"
	"github.com/belanjaku/belanjaku-backend/internal/storage"
	"github.com/belanjaku/belanjaku-backend/pkg/logger"
	"github.com/belanjaku/belanjaku-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting BELANJAKU Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis for the token blacklist
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize object storage for payment proofs
	proofStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	discountRepo := repository.NewDiscountRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentRepo := repository.NewPaymentRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, categoryRepo, discountRepo, reviewRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, cartRepo, db.GetDB())
	paymentService := service.NewPaymentService(
		orderRepo,
		paymentRepo,
		proofStorage,
		cfg.Upload.ProofFolder,
		cfg.Upload.MaxProofSize,
		db.GetDB(),
	)
	reviewService := service.NewReviewService(reviewRepo, orderRepo, productRepo, db.GetDB())
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	dashboardService := service.NewDashboardService(orderRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	paymentController := controller.NewPaymentController(paymentService)
	reviewController := controller.NewReviewController(reviewService)
	wishlistController := controller.NewWishlistController(wishlistService)
	dashboardController := controller.NewDashboardController(dashboardService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		paymentController,
		reviewController,
		wishlistController,
		dashboardController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the pending order expiry scheduler
	expiryScheduler := scheduler.NewOrderExpiryScheduler(orderService, cfg.Order.PaymentWindow)
	if err := expiryScheduler.Start(); err != nil {
		logger.Fatal("Failed to start order expiry scheduler", err)
	}
	defer expiryScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
