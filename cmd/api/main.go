package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkout-gateway/config"
	"checkout-gateway/internal/adapter/hosted/stripe"
	httpHandler "checkout-gateway/internal/adapter/http/handler"
	pgStorage "checkout-gateway/internal/adapter/storage/postgres"
	redisStorage "checkout-gateway/internal/adapter/storage/redis"
	"checkout-gateway/internal/app"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/internal/service"
	"checkout-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CKG_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config:\n%v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("cluster", cfg.Ledger.Cluster).
		Msg("Starting Checkout Gateway")

	ctx := context.Background()
	var healthCheckers []ports.HealthChecker

	// Redis backs rate limiting and the terminal confirmation cache.
	var (
		rateLimiter ports.RateLimiter
		cache       ports.ConfirmationCache
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		cache = redisStorage.NewConfirmationCache(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: no rate limiting or confirmation cache")
	}

	// PostgreSQL holds the request audit log.
	var auditSvc ports.AuditService
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare audit schema")
		}
		log.Info().Msg("PostgreSQL connected")

		auditSvc = service.NewAuditService(pgStorage.NewAuditRepository(pool), log)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// On-chain rail
	onchain, err := app.NewOnChain(cfg, cache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize on-chain rail")
	}
	healthCheckers = append(healthCheckers, onchain.Ledger, onchain.Feed)

	// Hosted rail
	var provider ports.HostedPaymentProvider
	if cfg.Hosted.Enabled() {
		p, err := stripe.NewProvider(stripe.Config{
			SecretKey:          cfg.Hosted.SecretKey,
			PaymentMethodTypes: cfg.Hosted.PaymentMethodTypes,
			ProductName:        cfg.Hosted.ProductName,
			ProductDescription: cfg.Hosted.ProductDescription,
		}, nil, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize hosted payment provider")
		}
		provider = p
	} else {
		log.Warn().Msg("hosted.secret_key not set: hosted checkout disabled")
	}
	hostedSvc := service.NewHostedService(provider, service.HostedConfig{
		BaseURL:         cfg.Server.BaseURL,
		SuccessPath:     cfg.Hosted.SuccessPath,
		CancelPath:      cfg.Hosted.CancelPath,
		DefaultCurrency: cfg.Hosted.DefaultCurrency,
	}, log)

	// Load OpenAPI spec for Swagger UI
	specBytes, err := os.ReadFile("docs/api/openapi.yaml")
	if err != nil {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		OnChainSvc:      onchain.Checkout,
		ConfirmationSvc: onchain.Confirmations,
		HostedSvc:       hostedSvc,
		TicketSvc:       onchain.Tickets,
		RateLimiter:     rateLimiter,
		RateLimits:      cfg.RateLimit,
		Wait: httpHandler.WaitConfig{
			Default: cfg.Confirmation.MaxWait,
			Max:     cfg.Confirmation.MaxWait,
		},
		HealthCheckers: healthCheckers,
		AuditSvc:       auditSvc,
		OpenAPISpec:    specBytes,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Confirmation waits hold the response open for up to max_wait.
		WriteTimeout: cfg.Confirmation.MaxWait + 15*time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
