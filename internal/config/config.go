package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	OpenWeatherAPIKey  string
	OpenWeatherAPIURL  string
	OpenWeatherTimeout time.Duration
	OpenWeatherRPS     float64
	OpenWeatherBurst   int

	// CacheTTL of 0 disables the forecast cache.
	CacheTTL  time.Duration
	CacheSize int

	// DatabaseURL is optional; the request log is kept only when set.
	DatabaseURL string

	CORSAllowOrigins string
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	// a missing .env is fine, real env wins either way
	_ = godotenv.Load()
	return LoadFromEnv()
}

func LoadFromEnv() (Config, error) {
	appEnv := getEnv("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	port := getEnv("PORT", "8080")
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", port)
	}

	timeout, err := parseDuration("OPENWEATHER_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("invalid OPENWEATHER_TIMEOUT %q: must be positive", timeout)
	}

	rpsStr := getEnv("OPENWEATHER_RPS", "1")
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil || rps <= 0 {
		return Config{}, fmt.Errorf("invalid OPENWEATHER_RPS %q: must be a positive number", rpsStr)
	}

	burst, err := parseInt("OPENWEATHER_BURST", "5")
	if err != nil {
		return Config{}, err
	}
	if burst < 1 {
		return Config{}, fmt.Errorf("invalid OPENWEATHER_BURST %d: must be at least 1", burst)
	}

	cacheTTL, err := parseDuration("FORECAST_CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	if cacheTTL < 0 {
		return Config{}, fmt.Errorf("invalid FORECAST_CACHE_TTL %q: must not be negative", cacheTTL)
	}

	cacheSize, err := parseInt("FORECAST_CACHE_SIZE", "256")
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:             appEnv,
		LogLevel:           level,
		Port:               port,
		OpenWeatherAPIKey:  getEnv("OPENWEATHER_API_KEY", ""),
		OpenWeatherAPIURL:  strings.TrimSuffix(getEnv("OPENWEATHER_API_URL", "https://api.openweathermap.org/data/2.5"), "/"),
		OpenWeatherTimeout: timeout,
		OpenWeatherRPS:     rps,
		OpenWeatherBurst:   burst,
		CacheTTL:           cacheTTL,
		CacheSize:          cacheSize,
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "http://localhost:4200"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	s := getEnv(key, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func parseInt(key, defaultValue string) (int, error) {
	s := getEnv(key, defaultValue)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return n, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
