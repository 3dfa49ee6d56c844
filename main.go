package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relationship-dashboard/cache"
	"relationship-dashboard/config"
	"relationship-dashboard/digest"
	"relationship-dashboard/email"
	"relationship-dashboard/faces"
	"relationship-dashboard/handler"
	appLogger "relationship-dashboard/logger"
	"relationship-dashboard/middleware"
	redisClient "relationship-dashboard/redis"
	"relationship-dashboard/sheet"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig()

	// Initialize logger
	appLogger.Initialize(cfg.Log)
	log.Info().Strs("respondents", cfg.Survey.Respondents).Msg("Configuration loaded successfully")

	// Initialize Redis client (if enabled)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		var err error
		rdb, err = redisClient.NewClient(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
	} else {
		log.Info().Msg("Redis disabled in configuration, gift attempts are not limited")
	}

	// Initialize cache (if enabled)
	var cacheClient *cache.Cache
	if cfg.Cache.Enabled {
		var err error
		cacheClient, err = cache.New(cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize cache")
		}
	} else {
		log.Info().Msg("Cache disabled in configuration")
	}

	sheetClient, err := sheet.NewClient(cfg.Sheet, &http.Client{
		Timeout: time.Duration(cfg.Sheet.RequestTimeout) * time.Second,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid sheet configuration")
	}
	if !sheetClient.Configured() {
		log.Warn().Msg("No sheet configured, dashboard reads will fail until GOOGLE_SHEET_URL is set")
	}
	var source sheet.RecordSource = sheetClient
	if cacheClient != nil {
		source = cache.NewCachedSource(sheetClient, cacheClient)
	}

	sender := email.NewSender(cfg.Email)
	log.Info().
		Bool("enabled", cfg.Email.Enabled).
		Str("provider", cfg.Email.Provider).
		Int("recipients", len(cfg.Email.To)).
		Msg("Email delivery initialized")

	service, err := digest.NewService(source, sender, cfg, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize digest service")
	}

	matcher, err := faces.LoadMatcher(cfg.Face.ReferenceFile, cfg.Face.Threshold)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load face references")
	}

	// Optional weekly digest schedule
	var scheduler *digest.Scheduler
	if cfg.Digest.Schedule != "" {
		loc, _ := cfg.Location()
		scheduler, err = digest.NewScheduler(cfg.Digest.Schedule, loc, service, 2*time.Minute)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule weekly digest")
		}
		scheduler.Start()
		log.Info().Str("schedule", cfg.Digest.Schedule).Time("next", scheduler.Next()).Msg("Weekly digest scheduled")
	}

	// Create handler with dependency injection
	dashboardHandler := handler.NewDashboardHandler(service, rdb, cacheClient, matcher, cfg)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	if err := middleware.TrustProxies(cfg.WebServer.TrustedProxies); err != nil {
		log.Fatal().Err(err).Msg("Invalid webserver.trusted_proxies")
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	giftAttempts := middleware.NewGiftAttempts(rdb, cfg.Gift.MaxAttempts, time.Duration(cfg.Gift.AttemptWindow)*time.Second)

	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes
	dashboardHandler.Register(r, giftAttempts)

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("address", serverAddress).Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if cacheClient != nil {
		cacheClient.Close()
	}

	// Close Redis connection
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	log.Info().Msg("Server stopped gracefully")
}
