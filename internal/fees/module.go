package fees

import (
	"log/slog"

	"colonywars/internal/fees/routes"
	"colonywars/internal/fees/services"
	"colonywars/pkg/database"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the fee ledger module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new fees module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, treasury gamebridge.Treasury, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, treasury)
	routesModule := routes.NewModule(service, auth, authz)

	m := &Module{
		BaseModule: module.NewBaseModule("fees", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Fees module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all fee routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Fees module uses only Huma v2 routes
}

// GetService returns the fee service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
