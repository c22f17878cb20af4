package territory

import (
	"log/slog"

	colonyservices "colonywars/internal/colony/services"
	feeservices "colonywars/internal/fees/services"
	seasonservices "colonywars/internal/season/services"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/internal/territory/routes"
	"colonywars/internal/territory/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"
	"colonywars/pkg/ratelimit"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the territory ledger module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new territory module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, colonies *colonyservices.Service, fees *feeservices.Service, seasons *seasonservices.Service, settings *settingsservices.Service, limiter *ratelimit.Limiter, cfg *config.WarConfig, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, colonies, fees, settings, limiter, redis, cfg)
	routesModule := routes.NewModule(service, seasons, auth, authz)

	m := &Module{
		BaseModule: module.NewBaseModule("territory", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Territory module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all territory routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Territory module uses only Huma v2 routes
}

// GetService returns the territory service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
