// File: roamify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roamify/config"
	"roamify/handlers"
	"roamify/middleware"
	"roamify/models"
	"roamify/routes"
	"roamify/services/cache"
	"roamify/services/oracle"
	"roamify/services/ratelimit"
	"roamify/services/search"
	"roamify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const cacheSweepInterval = time.Minute

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	// Estimate cache: redis-backed when configured, with a transparent
	// in-process fallback either way.
	var estimateCache cache.Store[models.CityCostData]
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisCacheDB,
		})
		estimateCache = cache.NewRedis[models.CityCostData](
			client, "roamify:estimate", cfg.CacheMaxSize, cfg.CacheTTL(), cacheSweepInterval, logger)
	} else {
		estimateCache = cache.NewMemory[models.CityCostData](
			cfg.CacheMaxSize, cfg.CacheTTL(), cacheSweepInterval)
	}
	defer estimateCache.Stop()

	limiter := ratelimit.NewLimiter(ratelimit.Options{
		MaxConcurrent:    cfg.OracleMaxConcurrent,
		MinDelay:         time.Duration(cfg.OracleMinDelayMs) * time.Millisecond,
		MaxRetries:       cfg.OracleMaxRetries,
		BreakerThreshold: cfg.OracleBreakerThreshold,
		BreakerCooldown:  time.Duration(cfg.OracleBreakerTimeoutSec) * time.Second,
	}, logger)

	var costOracle oracle.CostOracle
	if cfg.GeminiAPIKey != "" {
		g, err := oracle.NewGeminiOracle(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Sugar().Warnf("main: cost oracle unavailable, running fallback-only pricing: %v", err)
		} else {
			costOracle = g
		}
	} else {
		logger.Sugar().Warn("main: no GEMINI_API_KEY set, running fallback-only pricing")
	}

	sessionStore := search.NewStore(cfg.SessionTTL(), time.Minute, logger)
	defer sessionStore.Stop()

	orch := &search.Orchestrator{
		Store:   sessionStore,
		Cache:   estimateCache,
		Limiter: limiter,
		Oracle:  costOracle,
		Config: search.OrchestratorConfig{
			Workers:     cfg.SearchWorkers,
			Deadline:    time.Duration(cfg.SearchDeadlineSec) * time.Second,
			CallTimeout: 20 * time.Second,
		},
		Logger: logger,
	}

	searchService := &search.DefaultSearchService{
		Store:         sessionStore,
		Orchestrator:  orch,
		MaxCandidates: cfg.SearchMaxCandidates,
		Logger:        logger,
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &routes.HandlerBundle{
		Search:      handlers.NewSearchHandler(searchService, logger),
		Diagnostics: handlers.NewDiagnosticsHandler(estimateCache, limiter),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
