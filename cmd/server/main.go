package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	contentapp "github.com/storefront/backend/internal/application/content"
	identityapp "github.com/storefront/backend/internal/application/identity"
	mediaapp "github.com/storefront/backend/internal/application/media"
	orderapp "github.com/storefront/backend/internal/application/order"
	promoapp "github.com/storefront/backend/internal/application/promo"
	shippingapp "github.com/storefront/backend/internal/application/shipping"
	domainshipping "github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/payment"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/shipping"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags
var version = "dev"

//	@title			Storefront API
//	@version		1.0
//	@description	E-commerce storefront backend: catalog, cart, checkout, payments, shipping
//	@BasePath		/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	ctx := context.Background()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Initialize database connection with zap-backed gorm logger
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Error("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Idempotency store: Redis when reachable, in-memory fallback for dev
	var idempotencyStore checkoutapp.IdempotencyStore
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory idempotency store", zap.Error(err))
		idempotencyStore = cache.NewInMemoryIdempotencyStore()
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		idempotencyStore = cache.NewRedisIdempotencyStore(redisClient, "checkout:idem:")
		log.Info("Redis connected successfully")
	}

	// Initialize repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	bundleRepo := persistence.NewGormBundleRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	promoRepo := persistence.NewGormPromoCodeRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	blogPostRepo := persistence.NewGormBlogPostRepository(db.DB)

	// Payment gateways
	gatewayRegistry := payment.NewGatewayRegistry(cfg, log)

	// Logistics provider
	var provider domainshipping.Provider
	if cfg.Shiprocket.Enabled {
		adapter, err := shipping.NewShiprocketAdapter(cfg.Shiprocket, log)
		if err != nil {
			log.Fatal("Failed to initialize Shiprocket adapter", zap.Error(err))
		}
		provider = adapter
	} else {
		log.Warn("Shiprocket disabled, shipment booking unavailable")
		provider = shipping.NewDisabledProvider()
	}

	// JWT service
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize application services
	authService := identityapp.NewAuthService(customerRepo, jwtService, log)
	customerService := identityapp.NewCustomerService(customerRepo)
	productService := catalogapp.NewProductService(productRepo, log)
	bundleService := catalogapp.NewBundleService(bundleRepo, productRepo, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo)
	promoService := promoapp.NewPromoService(promoRepo, cartRepo)
	orderService := orderapp.NewOrderService(orderRepo)
	checkoutService := checkoutapp.NewCheckoutService(
		customerRepo,
		cartRepo,
		orderRepo,
		promoService,
		gatewayRegistry,
		idempotencyStore,
		cfg.Checkout.IdempotencyTTL,
		cfg.App.BaseURL,
		log,
	)
	shipmentService := shippingapp.NewShipmentService(shipmentRepo, orderRepo, provider, cfg.Shiprocket.PickupLocation, log)
	reviewService := contentapp.NewReviewService(reviewRepo, productRepo, customerRepo, log)
	blogService := contentapp.NewBlogService(blogPostRepo, log)

	// Media storage is optional; the admin media endpoints are only
	// registered when a bucket is configured
	var mediaService *mediaapp.MediaService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3MediaStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize media storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure media bucket", zap.Error(err))
		}
		mediaService = mediaapp.NewMediaService(s3Storage, cfg.Storage.PublicURL, log)
		log.Info("Media storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Initialize event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	orderConfirmedHandler := shippingapp.NewOrderConfirmedHandler(shipmentService, cfg.Shiprocket.AutoBook, log)
	if err := eventBus.Subscribe(orderConfirmedHandler); err != nil {
		log.Fatal("Failed to subscribe order confirmed handler", zap.Error(err))
	}

	if err := eventBus.Start(); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Event bus started",
		zap.Strings("order_confirmed_events", orderConfirmedHandler.EventTypes()),
	)

	customerService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	shipmentService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		System:          handler.NewSystemHandler(db, version),
		Auth:            handler.NewAuthHandler(authService),
		Customer:        handler.NewCustomerHandler(customerService),
		Cart:            handler.NewCartHandler(cartService),
		Checkout:        handler.NewCheckoutHandler(checkoutService),
		PaymentCallback: handler.NewPaymentCallbackHandler(checkoutService),
		Order:           handler.NewOrderHandler(orderService),
		Shipment:        handler.NewShipmentHandler(shipmentService, orderService),
		Promo:           handler.NewPromoHandler(promoService),
		Product:         handler.NewProductHandler(productService),
		Bundle:          handler.NewBundleHandler(bundleService),
		Review:          handler.NewReviewHandler(reviewService),
		Blog:            handler.NewBlogHandler(blogService),
	}
	if mediaService != nil {
		handlers.Media = handler.NewMediaHandler(mediaService)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.New(router.Config{
		Handlers:         handlers,
		JWTService:       jwtService,
		Logger:           log,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   cfg.Telemetry.Enabled,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
