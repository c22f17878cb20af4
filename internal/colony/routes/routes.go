package routes

import (
	"context"

	"colonywars/internal/colony/dto"
	"colonywars/internal/colony/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the colony routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
}

// NewModule creates a new colony routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware) *Module {
	return &Module{
		service: service,
		auth:    auth,
	}
}

// RegisterUnifiedRoutes registers all colony routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "colony-get-profile",
		Method:      "GET",
		Path:        basePath + "/{colony_id}",
		Summary:     "Get Colony War Profile",
		Description: "Returns the war profile of a colony: stake, reputation, stress and registration state.",
		Tags:        []string{"Colonies"},
	}, func(ctx context.Context, input *dto.GetProfileInput) (*dto.ProfileOutput, error) {
		profile, err := m.service.GetProfile(ctx, input.ColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.ProfileOutput{Body: *profile}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "colony-add-stake",
		Method:      "POST",
		Path:        basePath + "/{colony_id}/stake",
		Summary:     "Add Defensive Stake",
		Tags:        []string{"Colonies"},
	}, func(ctx context.Context, input *dto.AddStakeInput) (*dto.ProfileOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.service.AddDefensiveStake(ctx, input.ColonyID, session.Wallet, input.Body.Amount); err != nil {
			return nil, warerrors.ToHuma(err)
		}
		profile, err := m.service.GetProfile(ctx, input.ColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.ProfileOutput{Body: *profile}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "colony-set-primary",
		Method:      "PUT",
		Path:        basePath + "/primary",
		Summary:     "Set Primary Colony",
		Description: "Promotes one of the caller's colonies to primary. The primary colony carries alliance protection.",
		Tags:        []string{"Colonies"},
	}, func(ctx context.Context, input *dto.SetPrimaryColonyInput) (*dto.WalletColoniesOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.service.SetPrimaryColony(ctx, session.Wallet, input.Body.ColonyID); err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return m.walletColonies(ctx, session.Wallet)
	})

	huma.Register(api, huma.Operation{
		OperationID: "colony-list-mine",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List My Colonies",
		Tags:        []string{"Colonies"},
	}, func(ctx context.Context, input *dto.ListMyColoniesInput) (*dto.WalletColoniesOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		return m.walletColonies(ctx, session.Wallet)
	})

	huma.Register(api, huma.Operation{
		OperationID: "colony-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get colony module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "colony", Status: "healthy"}}, nil
	})
}

func (m *Module) walletColonies(ctx context.Context, wallet string) (*dto.WalletColoniesOutput, error) {
	colonies, err := m.service.ColoniesByWallet(ctx, wallet)
	if err != nil {
		return nil, warerrors.ToHuma(err)
	}
	primary, err := m.service.PrimaryColony(ctx, wallet)
	if err != nil {
		return nil, warerrors.ToHuma(err)
	}

	out := &dto.WalletColoniesOutput{}
	out.Body.Wallet = wallet
	out.Body.ColonyIDs = colonies
	out.Body.PrimaryColonyID = primary
	return out, nil
}
