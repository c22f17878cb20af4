package coordination

import (
	"log/slog"

	allianceservices "colonywars/internal/alliance/services"
	colonyservices "colonywars/internal/colony/services"
	"colonywars/internal/coordination/routes"
	"colonywars/internal/coordination/services"
	seasonservices "colonywars/internal/season/services"
	settingsservices "colonywars/internal/settings/services"
	siegeservices "colonywars/internal/siege/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the coordinated attack module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new coordination module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, colonies *colonyservices.Service, alliances *allianceservices.Service, seasons *seasonservices.Service, sieges *siegeservices.Service, settings *settingsservices.Service, cfg *config.WarConfig, auth *middleware.AuthMiddleware) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, colonies, alliances, seasons, sieges, settings, redis, cfg)
	routesModule := routes.NewModule(service, auth)

	m := &Module{
		BaseModule: module.NewBaseModule("coordination", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Coordination module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all coordination routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Coordination module uses only Huma v2 routes
}

// GetService returns the coordination service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
