package handlers

import (
	"dataguardian/internal/domain/services"
	"dataguardian/internal/infrastructure/cache"
	"dataguardian/internal/infrastructure/database"
	"dataguardian/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health  *HealthHandler
	Analyze *AnalyzeHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Analyzer *services.Analyzer
	Cache    *cache.RedisCache
	DB       *database.PostgresDB
	Logger   *logger.Logger
	Version  string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Cache, deps.DB, deps.Version, deps.Logger),
		Analyze: NewAnalyzeHandler(deps.Analyzer, deps.Logger),
	}
}
