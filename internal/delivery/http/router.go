package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/weatherwise/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, orchestrator *service.ForecastOrchestrator) {
	handler := NewHandler(orchestrator)

	// Health check
	app.Get("/health", handler.HealthCheck)

	api := app.Group("/api/weather")
	{
		api.Get("/forecast", handler.GetForecast)
		api.Get("/health", handler.WeatherHealth)
		api.Get("/history", handler.GetHistory)
	}
}
