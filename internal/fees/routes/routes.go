package routes

import (
	"context"

	"colonywars/internal/fees/dto"
	"colonywars/internal/fees/models"
	"colonywars/internal/fees/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the fees routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
	authz   *middleware.CasbinAuth
}

// NewModule creates a new fees routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware, authz *middleware.CasbinAuth) *Module {
	return &Module{
		service: service,
		auth:    auth,
		authz:   authz,
	}
}

// RegisterUnifiedRoutes registers all fee routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "fees-list",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List Fee Configurations",
		Description: "Returns every configured operation fee with its scaling and burn settings.",
		Tags:        []string{"Fees"},
	}, func(ctx context.Context, input *dto.ListFeesInput) (*dto.FeeListOutput, error) {
		return m.listFees(ctx)
	})

	huma.Register(api, huma.Operation{
		OperationID: "fees-get",
		Method:      "GET",
		Path:        basePath + "/{name}",
		Summary:     "Get Fee Configuration",
		Tags:        []string{"Fees"},
	}, func(ctx context.Context, input *dto.GetFeeInput) (*dto.FeeOutput, error) {
		fee, err := m.service.GetFee(ctx, input.Name)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.FeeOutput{Body: *fee}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "fees-configure",
		Method:      "PUT",
		Path:        basePath + "/{name}",
		Summary:     "Configure Fee",
		Description: "Creates or replaces a fee configuration. Requires the war admin role.",
		Tags:        []string{"Fees", "Administration"},
	}, func(ctx context.Context, input *dto.ConfigureFeeInput) (*dto.FeeOutput, error) {
		return m.configureFee(ctx, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "fees-toggle",
		Method:      "POST",
		Path:        basePath + "/{name}/toggle",
		Summary:     "Enable or Disable Fee",
		Tags:        []string{"Fees", "Administration"},
	}, func(ctx context.Context, input *dto.ToggleFeeInput) (*dto.FeeOutput, error) {
		return m.toggleFee(ctx, input)
	})

	huma.Register(api, huma.Operation{
		OperationID: "fees-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get fees module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "fees", Status: "healthy"}}, nil
	})
}

func (m *Module) listFees(ctx context.Context) (*dto.FeeListOutput, error) {
	fees, err := m.service.ListFees(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list fees", err)
	}

	out := &dto.FeeListOutput{}
	out.Body.Fees = fees
	out.Body.Count = len(fees)
	return out, nil
}

func (m *Module) configureFee(ctx context.Context, input *dto.ConfigureFeeInput) (*dto.FeeOutput, error) {
	session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
	if err != nil {
		return nil, err
	}
	if err := m.authz.Require(session.Wallet, "fees", "configure"); err != nil {
		return nil, huma.Error403Forbidden("War admin role required", err)
	}
	if err := dto.ValidateConfigureFeeRequest(&input.Body); err != nil {
		return nil, huma.Error422UnprocessableEntity("invalid fee configuration", err)
	}

	fee := &models.OperationFee{
		Name:          input.Name,
		Currency:      input.Body.Currency,
		Beneficiary:   input.Body.Beneficiary,
		BaseAmount:    input.Body.BaseAmount,
		MultiplierBps: input.Body.MultiplierBps,
		Burn:          input.Body.Burn,
		Enabled:       input.Body.Enabled,
	}
	if err := m.service.ConfigureFee(ctx, fee); err != nil {
		return nil, warerrors.ToHuma(err)
	}
	return &dto.FeeOutput{Body: *fee}, nil
}

func (m *Module) toggleFee(ctx context.Context, input *dto.ToggleFeeInput) (*dto.FeeOutput, error) {
	session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
	if err != nil {
		return nil, err
	}
	if err := m.authz.Require(session.Wallet, "fees", "configure"); err != nil {
		return nil, huma.Error403Forbidden("War admin role required", err)
	}

	if err := m.service.SetFeeEnabled(ctx, input.Name, input.Body.Enabled); err != nil {
		return nil, warerrors.ToHuma(err)
	}

	fee, err := m.service.GetFee(ctx, input.Name)
	if err != nil {
		return nil, warerrors.ToHuma(err)
	}
	return &dto.FeeOutput{Body: *fee}, nil
}
