package season

import (
	"log/slog"

	colonyservices "colonywars/internal/colony/services"
	"colonywars/internal/season/routes"
	"colonywars/internal/season/services"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the season lifecycle module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new season module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, colonies *colonyservices.Service, settings *settingsservices.Service, treasury gamebridge.Treasury, cfg *config.WarConfig, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, colonies, settings, treasury, cfg)
	routesModule := routes.NewModule(service, auth, authz)

	m := &Module{
		BaseModule: module.NewBaseModule("season", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Season module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all season routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Season module uses only Huma v2 routes
}

// GetService returns the season service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
