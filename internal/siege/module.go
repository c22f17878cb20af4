package siege

import (
	"log/slog"

	allianceservices "colonywars/internal/alliance/services"
	colonyservices "colonywars/internal/colony/services"
	feeservices "colonywars/internal/fees/services"
	seasonservices "colonywars/internal/season/services"
	settingsservices "colonywars/internal/settings/services"
	"colonywars/internal/siege/routes"
	"colonywars/internal/siege/services"
	territoryservices "colonywars/internal/territory/services"
	"colonywars/pkg/config"
	"colonywars/pkg/database"
	"colonywars/pkg/gamebridge"
	"colonywars/pkg/middleware"
	"colonywars/pkg/module"
	"colonywars/pkg/ratelimit"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the siege engine module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new siege module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis, territories *territoryservices.Service, colonies *colonyservices.Service, alliances *allianceservices.Service, seasons *seasonservices.Service, fees *feeservices.Service, settings *settingsservices.Service, limiter *ratelimit.Limiter, bridge gamebridge.Bridge, cfg *config.WarConfig, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	repository := services.NewRepository(mongodb)
	service := services.NewService(repository, territories, colonies, alliances, seasons, fees, settings, limiter, bridge, cfg)
	routesModule := routes.NewModule(service, auth, authz)

	m := &Module{
		BaseModule: module.NewBaseModule("siege", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Siege module initialized", "name", m.Name())
	return m
}

// RegisterUnifiedRoutes registers all siege routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	m.routes.RegisterUnifiedRoutes(api, basePath)
}

// Routes is kept for compatibility with the module interface
func (m *Module) Routes(r chi.Router) {
	// Siege module uses only Huma v2 routes
}

// GetService returns the siege service for other modules
func (m *Module) GetService() *services.Service {
	return m.service
}
