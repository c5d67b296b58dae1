package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/weatherwise/backend/internal/service"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Handler contains all HTTP handlers
type Handler struct {
	orchestrator *service.ForecastOrchestrator
}

// NewHandler creates a new handler
func NewHandler(orchestrator *service.ForecastOrchestrator) *Handler {
	return &Handler{
		orchestrator: orchestrator,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	if err := h.orchestrator.Health(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "degraded",
			"service": "weather-api",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "weather-api",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// WeatherHealth is the plain-text liveness check under /api/weather
func (h *Handler) WeatherHealth(c *fiber.Ctx) error {
	return c.SendString("Weather service is running!")
}

// GetForecast returns the 3-day forecast for ?city=, synthetic when
// ?offline=true or when live data is unavailable
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	// query values point into a reused buffer; the city outlives the request
	city := utils.CopyString(c.Query("city"))
	if strings.TrimSpace(city) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city query parameter is required")
	}
	offline := c.QueryBool("offline", false)

	result, source := h.orchestrator.Forecast(c.Context(), city, offline)

	c.Set("X-Forecast-Source", source)
	return c.JSON(result)
}

// GetHistory returns the most recent served forecasts
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	data, err := h.orchestrator.RecentRequests(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch forecast history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
