package routes

import (
	"context"

	"colonywars/internal/siege/dto"
	"colonywars/internal/siege/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the siege routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
	authz   *middleware.CasbinAuth
}

// NewModule creates a new siege routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	return &Module{
		service: service,
		auth:    auth,
		authz:   authz,
	}
}

// RegisterUnifiedRoutes registers all siege routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "siege-declare",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Declare Siege",
		Description: "Opens a siege on an owned territory. Territory defense and the attacker's tokens are frozen, and the stake is escrowed into the war pool.",
		Tags:        []string{"Sieges"},
	}, func(ctx context.Context, input *dto.DeclareSiegeInput) (*dto.SiegeOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := dto.ValidateDeclareSiegeRequest(input); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid siege declaration", err)
		}
		siege, err := m.service.DeclareSiege(ctx, input.Body.TerritoryID, input.Body.AttackerColonyID, session.Wallet, input.Body.Stake, input.Body.TokenIDs, services.DeclareOptions{})
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SiegeOutput{Body: *siege}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "siege-get",
		Method:      "GET",
		Path:        basePath + "/{siege_id}",
		Summary:     "Get Siege",
		Tags:        []string{"Sieges"},
	}, func(ctx context.Context, input *dto.GetSiegeInput) (*dto.SiegeOutput, error) {
		siege, err := m.service.GetSiege(ctx, input.SiegeID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SiegeOutput{Body: *siege}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "siege-list",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List Sieges",
		Description: "Returns the siege history of a colony, as attacker or defender.",
		Tags:        []string{"Sieges"},
	}, func(ctx context.Context, input *dto.ListSiegesInput) (*dto.SiegeListOutput, error) {
		sieges, err := m.service.ListSiegesByColony(ctx, input.ColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.SiegeListOutput{}
		out.Body.Sieges = sieges
		out.Body.Count = len(sieges)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "siege-defend",
		Method:      "POST",
		Path:        basePath + "/{siege_id}/defense",
		Summary:     "Record Defense",
		Description: "Records the defender's write-once defense snapshot once preparation elapses. Both combat powers are priced here; later heals or reinforcements do not count.",
		Tags:        []string{"Sieges"},
	}, func(ctx context.Context, input *dto.DefendInput) (*dto.SnapshotOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		snapshot, err := m.service.Defend(ctx, input.SiegeID, session.Wallet, input.Body.TokenIDs)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SnapshotOutput{Body: *snapshot}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "siege-resolve",
		Method:      "POST",
		Path:        basePath + "/{siege_id}/resolution",
		Summary:     "Resolve Siege",
		Description: "Settles a siege once its warfare window has closed and settles the stake. Resolving a resolved siege returns the stored outcome.",
		Tags:        []string{"Sieges"},
	}, func(ctx context.Context, input *dto.ResolveSiegeInput) (*dto.SiegeOutput, error) {
		if _, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie); err != nil {
			return nil, err
		}
		siege, err := m.service.ResolveSiege(ctx, input.SiegeID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SiegeOutput{Body: *siege}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "siege-cancel",
		Method:      "DELETE",
		Path:        basePath + "/{siege_id}",
		Summary:     "Cancel Siege",
		Description: "Withdraws a siege during preparation and refunds the stake, or at any time with an administrative override.",
		Tags:        []string{"Sieges"},
	}, func(ctx context.Context, input *dto.CancelSiegeInput) (*dto.SiegeOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if input.Override {
			if err := m.authz.Require(session.Wallet, "siege", "override"); err != nil {
				return nil, err
			}
		}
		siege, err := m.service.CancelSiege(ctx, input.SiegeID, session.Wallet, input.Override)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SiegeOutput{Body: *siege}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "siege-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get siege module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "siege", Status: "healthy"}}, nil
	})
}
