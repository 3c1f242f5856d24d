package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/packmart/backend/internal/application/catalog"
	contactapp "github.com/packmart/backend/internal/application/contact"
	contentapp "github.com/packmart/backend/internal/application/content"
	identityapp "github.com/packmart/backend/internal/application/identity"
	mediaapp "github.com/packmart/backend/internal/application/media"
	tradeapp "github.com/packmart/backend/internal/application/trade"
	"github.com/packmart/backend/internal/infrastructure/auth"
	"github.com/packmart/backend/internal/infrastructure/commerce"
	"github.com/packmart/backend/internal/infrastructure/config"
	"github.com/packmart/backend/internal/infrastructure/email"
	"github.com/packmart/backend/internal/infrastructure/logger"
	"github.com/packmart/backend/internal/infrastructure/persistence"
	"github.com/packmart/backend/internal/infrastructure/printing"
	"github.com/packmart/backend/internal/infrastructure/storage"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
	"github.com/packmart/backend/internal/interfaces/http/handler"
	"github.com/packmart/backend/internal/interfaces/http/middleware"
	"github.com/packmart/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

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

	log.Info("Starting PackMart Storefront Backend",
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

	// Telemetry (tracing + metrics). Both are no-ops when disabled.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	messageRepo := persistence.NewGormContactMessageRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	postRepo := persistence.NewGormPostRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// JWT + token blacklist. Redis backs the blacklist in normal operation;
	// development falls back to the in-memory implementation when Redis is
	// not reachable.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis for token blacklist", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Hosted catalog adapter
	gateway, err := commerce.NewStorefrontAdapter(&commerce.StorefrontConfig{
		StoreDomain:    cfg.Storefront.StoreDomain,
		AccessToken:    cfg.Storefront.AccessToken,
		APIVersion:     cfg.Storefront.APIVersion,
		TimeoutSeconds: cfg.Storefront.TimeoutSeconds,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize storefront adapter", zap.Error(err))
	}

	// Transactional email adapter
	sender, err := email.NewResendSender(&email.Config{
		APIBaseURL:     cfg.Email.APIBaseURL,
		APIKey:         cfg.Email.APIKey,
		FromAddress:    cfg.Email.FromAddress,
		TimeoutSeconds: cfg.Email.TimeoutSeconds,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize email sender", zap.Error(err))
	}

	// Media storage: S3 when configured, a stub otherwise so the admin
	// console still works without object storage.
	var mediaStorage mediaapp.MediaStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3MediaStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 media storage", zap.Error(err))
		}
		mediaStorage = s3Storage
		log.Info("S3 media storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		mediaStorage = storage.NewStubMediaStorage()
		log.Warn("Media storage disabled, using stub storage")
	}

	// Packing slip renderer (headless Chrome)
	renderer := printing.NewRenderer(&printing.Config{
		NoSandbox: cfg.App.Env != "development",
		Logger:    log,
	})
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(gateway)
	messageService := contactapp.NewMessageService(messageRepo, sender, cfg.Email.ContactInbox, log)
	postService := contentapp.NewPostService(postRepo)
	orderService := tradeapp.NewOrderService(orderRepo, renderer, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	uploadService := mediaapp.NewUploadService(mediaStorage, log)

	// Business metrics (contact volume, catalog traffic, order flow)
	var storeMetrics *telemetry.StoreMetrics
	if meterProvider.IsEnabled() {
		storeMetrics, err = telemetry.NewStoreMetrics(telemetry.StoreMetricsConfig{
			Meter:          meterProvider.Meter("storefront"),
			Logger:         log,
			UnreadProvider: messageService,
		})
		if err != nil {
			log.Warn("Failed to initialize store metrics", zap.Error(err))
		} else {
			defer storeMetrics.Stop()
		}
	}

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, storeMetrics)
	contactHandler := handler.NewContactHandler(messageService, storeMetrics)
	postHandler := handler.NewPostHandler(postService)
	orderHandler := handler.NewOrderHandler(orderService, storeMetrics)
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	uploadHandler := handler.NewUploadHandler(uploadService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	api := r.APIGroup()

	// Public surface: system probes, hosted catalog proxy, published blog
	// posts and the contact form. Liveness also answers at the root path
	// for load-balancer checks.
	engine.GET("/health", systemHandler.Health)
	systemHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	postHandler.RegisterPublicRoutes(api)

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		contactGroup := api.Group("", middleware.RateLimit(limiter))
		contactHandler.RegisterPublicRoutes(contactGroup)
		log.Info("Contact form rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	} else {
		contactHandler.RegisterPublicRoutes(api)
	}

	// Session routes: login and refresh are public, the rest require a
	// valid access token.
	jwtGuard := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	authHandler.RegisterRoutes(api, jwtGuard)

	// Admin console surface. Every route requires a valid token and a role
	// that may see the console; mutating routes add capability guards.
	admin := api.Group("/admin", jwtGuard, middleware.RequireAdminView())
	contactHandler.RegisterAdminRoutes(admin, middleware.RequireContactResponder())
	orderHandler.RegisterAdminRoutes(admin.Group("", middleware.RequireOrderManager()))
	postHandler.RegisterAdminRoutes(admin.Group("", middleware.RequireContentManager()))
	uploadHandler.RegisterAdminRoutes(admin.Group("", middleware.RequireContentManager()))
	userHandler.RegisterAdminRoutes(admin.Group("", middleware.RequireUserManager()))

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
