package routes

import (
	"context"

	"colonywars/internal/coordination/dto"
	"colonywars/internal/coordination/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the coordination routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
}

// NewModule creates a new coordination routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware) *Module {
	return &Module{
		service: service,
		auth:    auth,
	}
}

// RegisterUnifiedRoutes registers all coordination routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "coordination-form",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Form Task Force",
		Description: "Assembles a task force led by a colony against a target territory.",
		Tags:        []string{"Coordination"},
	}, func(ctx context.Context, input *dto.FormTaskForceInput) (*dto.TaskForceOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		taskForce, err := m.service.FormTaskForce(ctx, input.Body.LeaderColonyID, input.Body.TargetTerritoryID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TaskForceOutput{Body: *taskForce}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "coordination-get",
		Method:      "GET",
		Path:        basePath + "/{task_force_id}",
		Summary:     "Get Task Force",
		Tags:        []string{"Coordination"},
	}, func(ctx context.Context, input *dto.GetTaskForceInput) (*dto.TaskForceOutput, error) {
		taskForce, err := m.service.GetTaskForce(ctx, input.TaskForceID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TaskForceOutput{Body: *taskForce}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "coordination-list",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List Task Forces",
		Tags:        []string{"Coordination"},
	}, func(ctx context.Context, input *dto.ListTaskForcesInput) (*dto.TaskForceListOutput, error) {
		taskForces, err := m.service.ListTaskForces(ctx)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.TaskForceListOutput{}
		out.Body.TaskForces = taskForces
		out.Body.Count = len(taskForces)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "coordination-join",
		Method:      "POST",
		Path:        basePath + "/{task_force_id}/participants",
		Summary:     "Join Task Force",
		Tags:        []string{"Coordination"},
	}, func(ctx context.Context, input *dto.JoinTaskForceInput) (*dto.TaskForceOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		taskForce, err := m.service.JoinTaskForce(ctx, input.TaskForceID, input.Body.ColonyID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TaskForceOutput{Body: *taskForce}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "coordination-leave",
		Method:      "DELETE",
		Path:        basePath + "/{task_force_id}/participants/{colony_id}",
		Summary:     "Leave Task Force",
		Description: "Withdraws a colony. The leader leaving disbands the task force.",
		Tags:        []string{"Coordination"},
	}, func(ctx context.Context, input *dto.LeaveTaskForceInput) (*dto.TaskForceOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		taskForce, err := m.service.LeaveTaskForce(ctx, input.TaskForceID, input.ColonyID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TaskForceOutput{Body: *taskForce}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "coordination-launch",
		Method:      "POST",
		Path:        basePath + "/{task_force_id}/launch",
		Summary:     "Launch Coordinated Attack",
		Description: "Converts the task force into a siege with bonus damage. Daily launch quota applies to the leader.",
		Tags:        []string{"Coordination"},
	}, func(ctx context.Context, input *dto.LaunchInput) (*dto.TaskForceOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		taskForce, err := m.service.LaunchCoordinatedAttack(ctx, input.TaskForceID, session.Wallet)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TaskForceOutput{Body: *taskForce}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "coordination-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get coordination module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "coordination", Status: "healthy"}}, nil
	})
}
