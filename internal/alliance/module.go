package alliance

import (
	"log/slog"

	"colonywars/internal/alliance/routes"
	"colonywars/internal/alliance/services"
	colonyservices "colonywars/internal/colony/services"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"
	"colonywars/pkg/ratelimit"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the alliance registry module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new alliance module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, colonies *colonyservices.Service, settings *settingsservices.Service, limiter *ratelimit.Limiter, cfg *config.WarConfig, auth *middleware.AuthMiddleware) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, colonies, settings, limiter, cfg)
	routesModule := routes.NewModule(service, auth)

	m := &Module{
		BaseModule: module.NewBaseModule("alliance", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Alliance module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all alliance routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Alliance module uses only Huma v2 routes
}

// GetService returns the alliance service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
