package routes

import (
	"context"

	"colonywars/internal/season/dto"
	"colonywars/internal/season/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the season routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
	authz   *middleware.CasbinAuth
}

// NewModule creates a new season routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	return &Module{
		service: service,
		auth:    auth,
		authz:   authz,
	}
}

// RegisterUnifiedRoutes registers all season routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "season-get-current",
		Method:      "GET",
		Path:        basePath + "/current",
		Summary:     "Get Current Season",
		Description: "Returns the latest season and its phase derived from the season windows.",
		Tags:        []string{"Seasons"},
	}, func(ctx context.Context, input *dto.GetSeasonInput) (*dto.SeasonPhaseOutput, error) {
		season, phase, err := m.service.CurrentPhase(ctx)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.SeasonPhaseOutput{}
		out.Body.Season = *season
		out.Body.Phase = phase
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "season-start",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Start Season",
		Description: "Begins the next war season. Requires war administrator rights.",
		Tags:        []string{"Seasons"},
	}, func(ctx context.Context, input *dto.StartSeasonInput) (*dto.SeasonOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.authz.Require(session.Wallet, "season", "start"); err != nil {
			return nil, err
		}
		season, err := m.service.StartSeason(ctx)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SeasonOutput{Body: *season}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "season-register-colony",
		Method:      "POST",
		Path:        basePath + "/registrations",
		Summary:     "Register Colony",
		Description: "Registers a colony for the current season. Only open during the registration phase.",
		Tags:        []string{"Seasons"},
	}, func(ctx context.Context, input *dto.RegisterColonyInput) (*dto.SeasonOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		season, err := m.service.RegisterColony(ctx, input.Body.ColonyID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SeasonOutput{Body: *season}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "season-pre-register",
		Method:      "POST",
		Path:        basePath + "/preregistrations",
		Summary:     "Pre-Register Colony",
		Description: "Queues a colony for automatic registration when the next season starts. The stake is escrowed into the war pool.",
		Tags:        []string{"Seasons"},
	}, func(ctx context.Context, input *dto.PreRegisterInput) (*dto.PreRegistrationOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		prereg, err := m.service.PreRegister(ctx, input.Body.ColonyID, session.Wallet, input.Body.Stake)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.PreRegistrationOutput{Body: *prereg}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "season-cancel-pre-registration",
		Method:      "DELETE",
		Path:        basePath + "/preregistrations/{colony_id}",
		Summary:     "Cancel Pre-Registration",
		Description: "Withdraws a queued pre-registration and refunds its stake. The record is kept.",
		Tags:        []string{"Seasons"},
	}, func(ctx context.Context, input *dto.CancelPreRegistrationInput) (*dto.StatusOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.service.CancelPreRegistration(ctx, input.ColonyID, session.Wallet); err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "season", Status: "cancelled"}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "season-distribute-rewards",
		Method:      "POST",
		Path:        basePath + "/{season_number}/rewards",
		Summary:     "Distribute Season Rewards",
		Description: "Pays a completed season's prize pool out of the war pool. One-shot; requires war administrator rights.",
		Tags:        []string{"Seasons"},
	}, func(ctx context.Context, input *dto.DistributeRewardsInput) (*dto.SeasonOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.authz.Require(session.Wallet, "season", "distribute"); err != nil {
			return nil, err
		}
		season, err := m.service.DistributeRewards(ctx, input.SeasonNumber, input.Body.RecipientWallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.SeasonOutput{Body: *season}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "season-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get season module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "season", Status: "healthy"}}, nil
	})
}
