package routes

import (
	"context"

	seasonservices "colonywars/internal/season/services"
	"colonywars/internal/territory/dto"
	territorymodels "colonywars/internal/territory/models"
	"colonywars/internal/territory/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the territory routes module
type Module struct {
	service *services.Service
	seasons *seasonservices.Service
	auth    *middleware.AuthMiddleware
	authz   *middleware.CasbinAuth
}

// NewModule creates a new territory routes module
func NewModule(service *services.Service, seasons *seasonservices.Service, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	return &Module{
		service: service,
		seasons: seasons,
		auth:    auth,
		authz:   authz,
	}
}

// RegisterUnifiedRoutes registers all territory routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "territory-get",
		Method:      "GET",
		Path:        basePath + "/{territory_id}",
		Summary:     "Get Territory",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.GetTerritoryInput) (*dto.TerritoryOutput, error) {
		territory, err := m.service.GetTerritory(ctx, input.TerritoryID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TerritoryOutput{Body: *territory}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-list",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List Territories",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.ListTerritoriesInput) (*dto.TerritoryListOutput, error) {
		territories, err := m.service.ListTerritories(ctx, input.OwnerColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.TerritoryListOutput{}
		out.Body.Territories = territories
		out.Body.Count = len(territories)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-register",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Register Territory",
		Description: "Seeds a new unowned territory onto the war map. Requires war administrator rights.",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.RegisterTerritoryInput) (*dto.TerritoryOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.authz.Require(session.Wallet, "territory", "register"); err != nil {
			return nil, err
		}
		if err := dto.ValidateRegisterTerritoryRequest(input); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid territory registration", err)
		}
		territory, err := m.service.RegisterTerritory(ctx, input.Body.TerritoryID, input.Body.Name, territorymodels.TerritoryType(input.Body.Type), input.Body.BonusValue, input.Body.BaseDefense)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TerritoryOutput{Body: *territory}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-capture",
		Method:      "POST",
		Path:        basePath + "/{territory_id}/capture",
		Summary:     "Capture Territory",
		Description: "Claims an unowned territory, or an owned one while holding capture priority from a decisive siege win.",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.CaptureTerritoryInput) (*dto.TerritoryOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		season, err := m.seasons.CurrentSeason(ctx)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		territory, err := m.service.CaptureTerritory(ctx, input.TerritoryID, input.Body.ColonyID, session.Wallet, season.SeasonNumber)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TerritoryOutput{Body: *territory}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-pay-maintenance",
		Method:      "POST",
		Path:        basePath + "/{territory_id}/maintenance",
		Summary:     "Pay Maintenance",
		Description: "Pays upkeep and extends the maintenance window. The fee scales with the owner's war stress.",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.PayMaintenanceInput) (*dto.TerritoryOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		territory, err := m.service.PayMaintenance(ctx, input.TerritoryID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TerritoryOutput{Body: *territory}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-repair",
		Method:      "POST",
		Path:        basePath + "/{territory_id}/repair",
		Summary:     "Repair Damage",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.RepairInput) (*dto.TerritoryOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		territory, err := m.service.RepairDamage(ctx, input.TerritoryID, session.Wallet, input.Body.Amount)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TerritoryOutput{Body: *territory}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-fortify",
		Method:      "POST",
		Path:        basePath + "/{territory_id}/fortify",
		Summary:     "Fortify Territory",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.FortifyInput) (*dto.TerritoryOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		territory, err := m.service.Fortify(ctx, input.TerritoryID, session.Wallet, input.Body.Amount)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TerritoryOutput{Body: *territory}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-raid-scout",
		Method:      "POST",
		Path:        basePath + "/{territory_id}/scout",
		Summary:     "Raid Scout",
		Description: "Pays the scouting fee and returns an intel report. Per-territory cooldown applies.",
		Tags:        []string{"Territories"},
	}, func(ctx context.Context, input *dto.RaidScoutInput) (*dto.ScoutReportOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		report, err := m.service.RaidScout(ctx, input.TerritoryID, input.Body.ScoutColonyID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.ScoutReportOutput{Body: *report}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "territory-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get territory module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "territory", Status: "healthy"}}, nil
	})
}
