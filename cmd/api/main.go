package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront-api/config"
	"shopfront-api/internal/adapter/gateway/payfast"
	httpHandler "shopfront-api/internal/adapter/http/handler"
	"shopfront-api/internal/adapter/realtime"
	fileStorage "shopfront-api/internal/adapter/storage/file"
	pgStorage "shopfront-api/internal/adapter/storage/postgres"
	redisStorage "shopfront-api/internal/adapter/storage/redis"
	"shopfront-api/internal/core/ports"
	"shopfront-api/internal/service"
	"shopfront-api/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const openAPIPath = "docs/api/openapi.yaml"

func main() {
	cfg, err := config.Load(os.Getenv("SHOP_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("reviews_backend", cfg.Reviews.Backend).
		Msg("Starting shopfront API")

	ctx := context.Background()
	var healthCheckers []ports.HealthChecker

	// Redis backs the review store and/or the rate limiter
	var rdb *goredis.Client
	if cfg.NeedsRedis() {
		rdb, err = redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Review store
	var reviewRepo ports.ReviewRepository
	switch cfg.Reviews.Backend {
	case config.BackendRedis:
		reviewRepo = redisStorage.NewReviewStore(rdb)
	case config.BackendPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		repo := pgStorage.NewReviewRepo(pool)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate reviews table")
		}
		reviewRepo = repo
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	default:
		reviewRepo = fileStorage.NewReviewStore(cfg.Reviews.FilePath, log)
		log.Info().Str("path", cfg.Reviews.FilePath).Msg("Using file review store")
	}

	// Real-time subscribers
	hub := realtime.NewHub(cfg.CORS.AllowedOrigins, log)

	// PayFast gateway
	gateway := payfast.NewClient(
		&http.Client{Timeout: cfg.PayFast.Timeout},
		cfg.PayFast.ProcessURL,
		cfg.Breaker,
		log,
	)

	// Business services
	reviewSvc := service.NewReviewService(reviewRepo, log)
	paymentSvc := service.NewPaymentService(
		service.NewMD5SignatureService(cfg.PayFast.Passphrase),
		gateway,
		hub,
		service.MerchantCredentials{
			MerchantID:    cfg.PayFast.MerchantID,
			MerchantKey:   cfg.PayFast.MerchantKey,
			UsePassphrase: cfg.PayFast.UsePassphrase(),
		},
		log,
	)

	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.RateLimit.Enabled {
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ReviewSvc:      reviewSvc,
		PaymentSvc:     paymentSvc,
		WebSocket:      hub.ServeWS,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		OpenAPISpec:    loadOpenAPISpec(log),
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpHandler.WithCORS(router, cfg.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	// Websocket connections are hijacked and not tracked by Shutdown.
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func loadOpenAPISpec(log zerolog.Logger) []byte {
	spec, err := os.ReadFile(openAPIPath)
	if err != nil {
		log.Warn().Err(err).Msg("OpenAPI spec not found, API docs will be unavailable")
		return nil
	}
	log.Info().Msg("OpenAPI spec loaded at /docs")
	return spec
}
