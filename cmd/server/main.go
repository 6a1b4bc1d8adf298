package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	catalogapp "github.com/freshlink/backend/internal/application/catalog"
	intakeapp "github.com/freshlink/backend/internal/application/intake"
	orderingapp "github.com/freshlink/backend/internal/application/ordering"
	partnerapp "github.com/freshlink/backend/internal/application/partner"
	pricingapp "github.com/freshlink/backend/internal/application/pricing"
	sourcingapp "github.com/freshlink/backend/internal/application/sourcing"
	"github.com/freshlink/backend/internal/infrastructure/ai"
	"github.com/freshlink/backend/internal/infrastructure/auth"
	"github.com/freshlink/backend/internal/infrastructure/cache"
	"github.com/freshlink/backend/internal/infrastructure/config"
	"github.com/freshlink/backend/internal/infrastructure/logger"
	"github.com/freshlink/backend/internal/infrastructure/persistence"
	"github.com/freshlink/backend/internal/infrastructure/storage"
	"github.com/freshlink/backend/internal/interfaces/http/handler"
	"github.com/freshlink/backend/internal/interfaces/http/middleware"
	"github.com/freshlink/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FreshLink Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	buyerRepo := persistence.NewGormBuyerRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	sourcingRepo := persistence.NewGormSourcingRequestRepository(db.DB)

	// Idempotency store: Redis when enabled, in-memory otherwise
	idempotencyFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := idempotencyFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Token blacklist backs buyer session revocation
	var tokenBlacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Root context for background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog snapshot refresher: the dashboard polls the catalog on an
	// interval and everything downstream prices against the same snapshot
	snapshotRefresher := catalogapp.NewSnapshotRefresher(productRepo, cfg.Poll.CatalogRefreshInterval, log)
	if err := snapshotRefresher.Start(ctx); err != nil {
		log.Warn("Initial catalog snapshot load failed, continuing with empty snapshot", zap.Error(err))
	}

	// Object storage for product imagery (optional)
	var objectStorage catalogapp.ObjectStorageService
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Upstream model client for quick-order parsing and invoice extraction
	aiClient := ai.NewClient(cfg.AI, log)
	quickOrderParser := ai.NewQuickOrderParser(aiClient, log)
	invoiceExtractor := ai.NewInvoiceExtractor(aiClient, log)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, objectStorage)
	quickOrderService := intakeapp.NewQuickOrderService(quickOrderParser, snapshotRefresher, idempotencyStore, log)
	checkoutService := orderingapp.NewCheckoutService(orderRepo, buyerRepo, snapshotRefresher, idempotencyStore, log)
	trackingService := orderingapp.NewTrackingService(orderRepo)
	comparisonService := pricingapp.NewComparisonService(invoiceExtractor, log)
	sourcingService := sourcingapp.NewRequestService(sourcingRepo, log)
	buyerService := partnerapp.NewBuyerService(buyerRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize handlers
	productHandler := handler.NewProductHandler(productService)
	quickOrderHandler := handler.NewQuickOrderHandler(quickOrderService)
	orderHandler := handler.NewOrderHandler(checkoutService, trackingService)
	comparisonHandler := handler.NewComparisonHandler(comparisonService)
	sourcingHandler := handler.NewSourcingHandler(sourcingService)
	buyerHandler := handler.NewBuyerHandler(buyerService)
	systemHandler := handler.NewSystemHandler()

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	// Middleware order matters:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Buyer session tokens are verified here; they are issued by the
	// platform's identity service, not by this backend
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Catalog domain (products, imagery)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id/price", productHandler.UpdatePrice)
	catalogRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	catalogRoutes.POST("/products/:id/image-upload", productHandler.RequestImageUpload)
	r.Register(catalogRoutes)

	// Quick-order intake (free text -> review -> cart lines)
	quickOrderRoutes := router.NewDomainGroup("quick-orders", "/quick-orders")
	quickOrderRoutes.POST("", quickOrderHandler.Submit)
	quickOrderRoutes.GET("/:id", quickOrderHandler.Get)
	quickOrderRoutes.POST("/:id/select", quickOrderHandler.Select)
	quickOrderRoutes.DELETE("/:id/lines/:index/selection", quickOrderHandler.ClearSelection)
	quickOrderRoutes.POST("/:id/confirm", quickOrderHandler.Confirm)
	r.Register(quickOrderRoutes)

	// Orders (checkout, history, tracking, verification)
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("/checkout", orderHandler.Checkout)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/active", orderHandler.Active)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/reorder", orderHandler.Reorder)
	orderRoutes.POST("/:id/advance", orderHandler.Advance)
	orderRoutes.POST("/:id/verify", orderHandler.Verify)
	r.Register(orderRoutes)

	// Pricing (competitor invoice comparisons)
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.POST("/comparisons", comparisonHandler.Compare)
	r.Register(pricingRoutes)

	// Sourcing requests to wholesalers
	sourcingRoutes := router.NewDomainGroup("sourcing", "/sourcing")
	sourcingRoutes.POST("/requests", sourcingHandler.Create)
	sourcingRoutes.GET("/requests", sourcingHandler.List)
	sourcingRoutes.GET("/requests/:id", sourcingHandler.GetByID)
	sourcingRoutes.POST("/requests/:id/lines", sourcingHandler.AddLine)
	sourcingRoutes.POST("/requests/:id/dispatch", sourcingHandler.Dispatch)
	r.Register(sourcingRoutes)

	// Buyer accounts
	buyerRoutes := router.NewDomainGroup("buyers", "/buyers")
	buyerRoutes.POST("", buyerHandler.Create)
	buyerRoutes.GET("/me", buyerHandler.Me)
	buyerRoutes.GET("/:id", buyerHandler.GetByID)
	buyerRoutes.PUT("/:id/outstanding-invoices", buyerHandler.SetOutstandingInvoices)
	buyerRoutes.POST("/:id/deactivate", buyerHandler.Deactivate)
	r.Register(buyerRoutes)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
