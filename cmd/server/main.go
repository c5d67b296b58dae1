package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weatherwise/backend/internal/cache"
	"github.com/weatherwise/backend/internal/config"
	"github.com/weatherwise/backend/internal/delivery/http"
	"github.com/weatherwise/backend/internal/forecast"
	"github.com/weatherwise/backend/internal/logging"
	"github.com/weatherwise/backend/internal/provider"
	"github.com/weatherwise/backend/internal/repository/postgres"
	"github.com/weatherwise/backend/internal/service"
)

const appName = "weather-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg, appName)
	slog.SetDefault(log)

	// Request log store
	var repo service.ForecastLogRepository = postgres.NewMockRepository()
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, repo = connectDatabase(log, cfg.DatabaseURL)
	} else {
		log.Info("DATABASE_URL not set, request log disabled")
	}

	// Dependency Injection: forecast pipeline
	var source provider.SampleSource = provider.NewOpenWeatherMap(
		cfg.OpenWeatherAPIKey, cfg.OpenWeatherAPIURL, cfg.OpenWeatherTimeout,
	)
	source = provider.NewRateLimitedSource(source, cfg.OpenWeatherRPS, cfg.OpenWeatherBurst)
	if cfg.OpenWeatherAPIKey == "" {
		log.Warn("OPENWEATHER_API_KEY not set, every forecast will be synthetic")
	}

	weatherSvc := service.NewWeatherService(source, forecast.NewAggregator(), nil).
		WithFetchTimeout(cfg.OpenWeatherTimeout)

	var forecastCache *cache.ForecastCache
	if cfg.CacheTTL > 0 {
		forecastCache = cache.NewForecastCache(cfg.CacheTTL, cfg.CacheSize)
	}
	orchestrator := service.NewForecastOrchestrator(weatherSvc, forecastCache, repo, log)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Weather API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.OpenWeatherTimeout + 5*time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	http.SetupRoutes(app, orchestrator)

	stopPrune := make(chan struct{})
	if forecastCache != nil {
		go pruneCache(log, forecastCache, cfg.CacheTTL, stopPrune)
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	close(stopPrune)
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	orchestrator.WaitBackground()
	if pool != nil {
		pool.Close()
	}
	log.Info("server exited gracefully")
}

// connectDatabase opens the pool and prepares the schema. Any failure keeps
// the server running with the no-op repository.
func connectDatabase(log *slog.Logger, url string) (*pgxpool.Pool, service.ForecastLogRepository) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		log.Warn("could not connect to database, request log disabled", "error", err)
		return nil, postgres.NewMockRepository()
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Warn("could not prepare database, request log disabled", "error", err)
		pool.Close()
		return nil, postgres.NewMockRepository()
	}

	log.Info("connected to PostgreSQL")
	return pool, repo
}

func pruneCache(log *slog.Logger, c *cache.ForecastCache, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.Prune(); n > 0 {
				hits, misses := c.CacheStats()
				log.Debug("pruned forecast cache", "removed", n, "size", c.Len(), "hits", hits, "misses", misses)
			}
		case <-stop:
			return
		}
	}
}
