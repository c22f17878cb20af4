package settings

import (
	"log/slog"

	"colonywars/internal/settings/routes"
	"colonywars/internal/settings/services"
	"colonywars/pkg/database"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the war settings module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new settings module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, redis)
	routesModule := routes.NewModule(service, auth, authz)

	m := &Module{
		BaseModule: module.NewBaseModule("settings", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Settings module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all settings routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Settings module uses only Huma v2 routes
}

// GetService returns the settings service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
