package routes

import (
	"context"

	"colonywars/internal/settings/dto"
	"colonywars/internal/settings/models"
	"colonywars/internal/settings/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the settings routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
	authz   *middleware.CasbinAuth
}

// NewModule creates a new settings routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	return &Module{
		service: service,
		auth:    auth,
		authz:   authz,
	}
}

// RegisterUnifiedRoutes registers all settings routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "settings-list-flags",
		Method:      "GET",
		Path:        basePath + "/features",
		Summary:     "List Feature Flags",
		Description: "Returns the pause state of every war feature, including untouched defaults.",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, input *dto.ListFlagsInput) (*dto.FlagListOutput, error) {
		flags, err := m.service.ListFlags(ctx)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.FlagListOutput{}
		out.Body.Flags = flags
		out.Body.Count = len(flags)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "settings-toggle-feature",
		Method:      "PUT",
		Path:        basePath + "/features/{feature}",
		Summary:     "Toggle Feature",
		Description: "Pauses or resumes a war feature. Requires war administrator rights.",
		Tags:        []string{"Settings"},
	}, func(ctx context.Context, input *dto.ToggleFeatureInput) (*dto.FlagOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := m.authz.Require(session.Wallet, "settings", "toggle"); err != nil {
			return nil, err
		}
		flag, err := m.service.Toggle(ctx, models.Feature(input.Feature), input.Body.Enabled, input.Body.Reason, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.FlagOutput{Body: *flag}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "settings-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get settings module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "settings", Status: "healthy"}}, nil
	})
}
