package service

import (
	"github.com/weatherwise/backend/internal/domain"
)

// ForecastLogRepository is re-exported from domain for convenience
type ForecastLogRepository = domain.ForecastLogRepository
