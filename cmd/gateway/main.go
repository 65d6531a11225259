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

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dentalgate/internal/actions"
	"dentalgate/internal/cache"
	"dentalgate/internal/config"
	"dentalgate/internal/handlers"
	"dentalgate/internal/httpserver"
	"dentalgate/internal/llm"
	"dentalgate/internal/metrics"
	"dentalgate/internal/ratelimit"
	"dentalgate/pkg/logging/logging"
)

const (
	cacheTTL  = 30 * time.Minute
	sweepTick = 30 * time.Minute
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("gateway exited with error: %v", err)
	}
}

func run() error {
	// ----- Logger -----
	logger := logging.DefaultLogger()
	defer logger.Sync()

	// ----- Metrics -----
	metrics.Register()

	// ----- Config -----
	cfg := config.Load()

	logger.Info("loaded config",
		zap.String("port", cfg.Port),
		zap.String("cache_backend", cfg.CacheBackend),
		zap.String("llm_base_url", cfg.LLMBaseURL),
		zap.String("model", cfg.LLMModel),
		zap.Strings("allowed_hosts", cfg.AllowedHosts),
		zap.String("actions_config", cfg.ActionsConfig),
		zap.Bool("auth_disabled", cfg.AuthDisabled()),
	)

	// ----- Redis client (only if needed) -----
	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" {
		redisClient = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})

		// Fail fast if Redis is misconfigured
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("redis connection failed", zap.Error(err))
			return err
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.RedisAddr),
		)
	}

	// ----- Response cache -----
	cacheCfg := cache.Config{
		Backend:       cfg.CacheBackend,
		TTL:           cacheTTL,
		SweepInterval: sweepTick,
		Prefix:        "dentalgate",
	}
	store := cache.NewStore(cacheCfg, redisClient, logger)
	store = cache.NewLoggingStore(store)

	// ----- Action registry -----
	registry := actions.New(cfg.ActionsConfig, logger)

	// ----- Rate limiter -----
	limiter := ratelimit.New(ratelimit.DefaultQuota, ratelimit.DefaultWindow)

	// ----- LLM client -----
	if cfg.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required")
	}

	llmClient, err := llm.NewClient(llm.Config{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
	}, logger)
	if err != nil {
		return err
	}
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	// ----- Handlers -----
	upstreamConfigured := cfg.LLMBaseURL != "" && cfg.LLMAPIKey != ""
	h := handlers.New(
		registry,
		store,
		cacheCfg.TTL,
		limiter,
		llmClient,
		cfg.LLMModel,
		upstreamConfigured,
	)

	// ----- Router + middleware -----
	r := chi.NewRouter()
	httpserver.SetupRouter(r, logger, h, httpserver.Options{
		AllowedHosts: cfg.AllowedHosts,
		APISecret:    cfg.APISecret,
		AuthDisabled: cfg.AuthDisabled(),
		Limiter:      limiter,
	})

	// ----- HTTP server -----
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("starting gateway",
		zap.String("addr", srv.Addr),
		zap.String("cache_backend", cfg.CacheBackend),
	)

	// Start server in background
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// ----- Graceful shutdown -----
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	if closer, ok := store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	logger.Info("server shutdown complete")
	return nil
}
