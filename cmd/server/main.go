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
	gormlogger "gorm.io/gorm/logger"

	cartapp "github.com/stylehub/backend/internal/application/cart"
	catalogapp "github.com/stylehub/backend/internal/application/catalog"
	identityapp "github.com/stylehub/backend/internal/application/identity"
	orderapp "github.com/stylehub/backend/internal/application/order"
	searchapp "github.com/stylehub/backend/internal/application/search"
	shopapp "github.com/stylehub/backend/internal/application/shop"
	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/infrastructure/auth"
	"github.com/stylehub/backend/internal/infrastructure/cache"
	"github.com/stylehub/backend/internal/infrastructure/config"
	"github.com/stylehub/backend/internal/infrastructure/inference"
	"github.com/stylehub/backend/internal/infrastructure/logger"
	"github.com/stylehub/backend/internal/infrastructure/persistence"
	"github.com/stylehub/backend/internal/infrastructure/scheduler"
	"github.com/stylehub/backend/internal/infrastructure/storage"
	"github.com/stylehub/backend/internal/interfaces/http/handler"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
	"github.com/stylehub/backend/internal/interfaces/http/router"
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

	log.Info("Starting StyleHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, gormlogger.Warn, 200*time.Millisecond)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the token blacklist and the text-search cache. If it is
	// unreachable the process still starts on in-memory fallbacks.
	var tokenBlacklist auth.TokenBlacklist
	var searchCache cache.SearchCache

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory token blacklist and search cache", zap.Error(err))
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		searchCache = cache.NewInMemorySearchCache()
	} else {
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		searchCache = cache.NewRedisSearchCache(redisClient)
		log.Info("Redis connected successfully")
	}
	cancelPing()

	// Product image storage
	var imageStorage catalogapp.ImageStorage
	if cfg.Storage.Endpoint != "" {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage, log)
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		ensureCtx, cancelEnsure := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Storage.EnsureBucket(ensureCtx); err != nil {
			log.Fatal("Failed to ensure image bucket", zap.Error(err))
		}
		cancelEnsure()
		imageStorage = s3Storage
	} else {
		log.Warn("No storage endpoint configured, product images held in memory")
		imageStorage = storage.NewStubImageStorage()
	}

	// Inference service client for visual search and index sync
	inferenceClient := inference.NewClient(cfg.Inference, log)

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	shopRepo := persistence.NewGormShopRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	attributeRepo := persistence.NewGormAttributeRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(accountRepo, jwtService, tokenBlacklist, log)
	shopService := shopapp.NewShopService(shopRepo, log)
	productService := catalogapp.NewProductService(productRepo, shopRepo, imageStorage, inferenceClient, log)
	attributeService := catalogapp.NewAttributeService(attributeRepo, shopRepo, log)
	variantService := catalogapp.NewVariantService(variantRepo, attributeRepo, productRepo, shopRepo, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, log)
	orderService := orderapp.NewOrderService(orderRepo, cartRepo, productRepo, shopRepo, log)
	searchService := searchapp.NewSearchService(inferenceClient, productRepo, shopRepo, searchCache, cfg.Inference, log)

	// Order auto-transition sweep on a cron schedule
	sweepService := orderapp.NewAutoTransitionService(orderRepo, cfg.Transition, log)
	sweepScheduler := scheduler.NewSweepScheduler(cfg.Transition, sweepService, log)
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()
	if err := sweepScheduler.Start(schedulerCtx); err != nil {
		log.Fatal("Failed to start transition scheduler", zap.Error(err))
	}

	// HTTP engine and middleware chain
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

	engine.Use(logger.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Handlers
	systemHandler := handler.NewSystemHandler(db)
	authHandler := handler.NewAuthHandler(authService)
	shopHandler := handler.NewShopHandler(shopService, orderService)
	productHandler := handler.NewProductHandler(productService)
	attributeHandler := handler.NewAttributeHandler(attributeService)
	variantHandler := handler.NewVariantHandler(variantService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	searchHandler := handler.NewSearchHandler(searchService)

	requireJWT := middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})
	requireSeller := middleware.RequireRole(string(identity.RoleSeller), string(identity.RoleAdmin))
	requireAdmin := middleware.RequireRole(string(identity.RoleAdmin))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Auth: register/login/refresh are public, the rest need a token
	authRoutes := router.NewGroup("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", requireJWT, authHandler.Logout)
	authRoutes.GET("/me", requireJWT, authHandler.Me)
	authRoutes.POST("/become-seller", requireJWT, authHandler.BecomeSeller)
	r.Register(authRoutes)

	// Shops: browsing is public, mutation is seller territory
	shopRoutes := router.NewGroup("/shops")
	shopRoutes.GET("", shopHandler.List)
	shopRoutes.POST("", requireJWT, requireSeller, shopHandler.Create)
	shopRoutes.GET("/mine", requireJWT, requireSeller, shopHandler.GetMine)
	shopRoutes.GET("/mine/order-stats", requireJWT, requireSeller, shopHandler.OrderStats)
	shopRoutes.GET("/:id", shopHandler.Get)
	shopRoutes.GET("/:id/products", productHandler.ListByShop)
	shopRoutes.PUT("/:id", requireJWT, requireSeller, shopHandler.Update)
	shopRoutes.POST("/:id/close", requireJWT, requireSeller, shopHandler.Close)
	shopRoutes.POST("/:id/reopen", requireJWT, requireSeller, shopHandler.Reopen)
	shopRoutes.POST("/:id/suspend", requireJWT, requireAdmin, shopHandler.Suspend)
	shopRoutes.POST("/:id/unsuspend", requireJWT, requireAdmin, shopHandler.Unsuspend)
	shopRoutes.DELETE("/:id", requireJWT, requireSeller, shopHandler.Delete)
	r.Register(shopRoutes)

	// Catalog: storefront reads are public, product management is seller-only
	catalogRoutes := router.NewGroup("/catalog")
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.POST("/products", requireJWT, requireSeller, productHandler.Create)
	catalogRoutes.GET("/products/mine", requireJWT, requireSeller, productHandler.ListMine)
	catalogRoutes.GET("/products/:id", productHandler.Get)
	catalogRoutes.PUT("/products/:id", requireJWT, requireSeller, productHandler.Update)
	catalogRoutes.PUT("/products/:id/active", requireJWT, requireSeller, productHandler.SetActive)
	catalogRoutes.POST("/products/:id/images", requireJWT, requireSeller, productHandler.AddImage)
	catalogRoutes.DELETE("/products/:id/images", requireJWT, requireSeller, productHandler.RemoveImage)
	catalogRoutes.DELETE("/products/:id", requireJWT, requireSeller, productHandler.Delete)
	catalogRoutes.GET("/products/:id/variants", variantHandler.List)
	catalogRoutes.GET("/products/:id/variants/mine", requireJWT, requireSeller, variantHandler.ListMine)
	catalogRoutes.POST("/products/:id/variants", requireJWT, requireSeller, variantHandler.CreateBulk)
	catalogRoutes.POST("/products/:id/variants/generate", requireJWT, requireSeller, variantHandler.Generate)
	catalogRoutes.PUT("/products/:id/variants/:variantId/stock", requireJWT, requireSeller, variantHandler.SetStock)
	catalogRoutes.DELETE("/products/:id/variants/:variantId", requireJWT, requireSeller, variantHandler.Delete)
	catalogRoutes.GET("/attributes", requireJWT, requireSeller, attributeHandler.List)
	catalogRoutes.POST("/attributes", requireJWT, requireSeller, attributeHandler.Create)
	catalogRoutes.POST("/attributes/:id/values", requireJWT, requireSeller, attributeHandler.AddValue)
	catalogRoutes.DELETE("/attributes/:id/values/:valueId", requireJWT, requireSeller, attributeHandler.DeleteValue)
	catalogRoutes.DELETE("/attributes/:id", requireJWT, requireSeller, attributeHandler.Delete)
	r.Register(catalogRoutes)

	// Cart: always scoped to the authenticated account
	cartRoutes := router.NewGroup("/cart")
	cartRoutes.Use(requireJWT)
	cartRoutes.GET("", cartHandler.Get)
	cartRoutes.POST("/items", cartHandler.AddItem)
	cartRoutes.PUT("/items/:productId", cartHandler.UpdateItem)
	cartRoutes.DELETE("/items/:productId", cartHandler.RemoveItem)
	cartRoutes.DELETE("", cartHandler.Clear)
	r.Register(cartRoutes)

	// Orders: buyers checkout and cancel, sellers move statuses
	orderRoutes := router.NewGroup("/orders")
	orderRoutes.Use(requireJWT)
	orderRoutes.POST("", orderHandler.Checkout)
	orderRoutes.GET("", orderHandler.ListMine)
	orderRoutes.GET("/shop", requireSeller, orderHandler.ListForShop)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PUT("/:id/status", requireSeller, orderHandler.UpdateStatus)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)
	r.Register(orderRoutes)

	// Search: public, proxied to the inference service
	searchRoutes := router.NewGroup("/search")
	searchRoutes.POST("/detect", searchHandler.Detect)
	searchRoutes.POST("/search-image", searchHandler.SearchByImage)
	searchRoutes.GET("/text", searchHandler.SearchByText)
	r.Register(searchRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sweepScheduler.Stop(ctx); err != nil {
		log.Error("Transition scheduler shutdown error", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
