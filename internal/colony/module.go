package colony

import (
	"log/slog"

	"colonywars/internal/colony/routes"
	"colonywars/internal/colony/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the colony registry module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new colony module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, treasury gamebridge.Treasury, cfg *config.WarConfig, auth *middleware.AuthMiddleware) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, treasury, cfg)
	routesModule := routes.NewModule(service, auth)

	m := &Module{
		BaseModule: module.NewBaseModule("colony", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Colony module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all colony routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Colony module uses only Huma v2 routes
}

// GetService returns the colony service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
