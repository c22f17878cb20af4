package routes

import (
	"context"

	"colonywars/internal/alliance/dto"
	"colonywars/internal/alliance/models"
	"colonywars/internal/alliance/services"
	"colonywars/pkg/middleware"
	"colonywars/pkg/warerrors"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the alliance routes module
type Module struct {
	service *services.Service
	auth    *middleware.AuthMiddleware
}

// NewModule creates a new alliance routes module
func NewModule(service *services.Service, auth *middleware.AuthMiddleware) *Module {
	return &Module{
		service: service,
		auth:    auth,
	}
}

// RegisterUnifiedRoutes registers all alliance routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "alliance-form",
		Method:      "POST",
		Path:        basePath,
		Summary:     "Form Alliance",
		Description: "Creates an alliance from a leader colony and at least two founding colonies with distinct owners.",
		Tags:        []string{"Alliances"},
	}, func(ctx context.Context, input *dto.FormAllianceInput) (*dto.AllianceOutput, error) {
		if _, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie); err != nil {
			return nil, err
		}
		if err := dto.ValidateFormAllianceRequest(input); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid alliance request", err)
		}
		founders := make([]models.Member, 0, len(input.Body.Founders))
		for _, f := range input.Body.Founders {
			founders = append(founders, models.Member{ColonyID: f.ColonyID, Wallet: f.Wallet})
		}
		alliance, err := m.service.FormAlliance(ctx, input.Body.Name, input.Body.LeaderColonyID, founders)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.AllianceOutput{Body: *alliance}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-get",
		Method:      "GET",
		Path:        basePath + "/{alliance_id}",
		Summary:     "Get Alliance",
		Tags:        []string{"Alliances"},
	}, func(ctx context.Context, input *dto.GetAllianceInput) (*dto.AllianceOutput, error) {
		alliance, err := m.service.GetAlliance(ctx, input.AllianceID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.AllianceOutput{Body: *alliance}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-list",
		Method:      "GET",
		Path:        basePath,
		Summary:     "List Alliances",
		Tags:        []string{"Alliances"},
	}, func(ctx context.Context, input *dto.ListAlliancesInput) (*dto.AllianceListOutput, error) {
		alliances, err := m.service.ListAlliances(ctx, input.ActiveOnly)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.AllianceListOutput{}
		out.Body.Alliances = alliances
		out.Body.Count = len(alliances)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-add-member",
		Method:      "POST",
		Path:        basePath + "/{alliance_id}/members",
		Summary:     "Admit Member",
		Description: "Admits a colony into the alliance. Leader only; one colony per wallet.",
		Tags:        []string{"Alliances"},
	}, func(ctx context.Context, input *dto.MemberInput) (*dto.AllianceOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		alliance, err := m.service.AddMember(ctx, input.AllianceID, session.Wallet, input.Body.ColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.AllianceOutput{Body: *alliance}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-remove-member",
		Method:      "DELETE",
		Path:        basePath + "/{alliance_id}/members",
		Summary:     "Remove Member",
		Description: "Removes a colony from the alliance. The alliance deactivates if it falls below two members.",
		Tags:        []string{"Alliances"},
	}, func(ctx context.Context, input *dto.MemberInput) (*dto.AllianceOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		alliance, err := m.service.RemoveMember(ctx, input.AllianceID, session.Wallet, input.Body.ColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.AllianceOutput{Body: *alliance}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-propose-forgiveness",
		Method:      "POST",
		Path:        basePath + "/{alliance_id}/forgiveness",
		Summary:     "Propose Forgiveness",
		Description: "Opens a time-boxed vote to clear a betrayal mark.",
		Tags:        []string{"Diplomacy"},
	}, func(ctx context.Context, input *dto.ProposeForgivenessInput) (*dto.ProposalOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		proposal, err := m.service.ProposeForgiveness(ctx, input.AllianceID, session.Wallet, input.Body.BetrayerColonyID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.ProposalOutput{Body: *proposal}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-vote-forgiveness",
		Method:      "POST",
		Path:        basePath + "/forgiveness/{proposal_id}/votes",
		Summary:     "Vote on Forgiveness",
		Tags:        []string{"Diplomacy"},
	}, func(ctx context.Context, input *dto.VoteForgivenessInput) (*dto.ProposalOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		proposal, err := m.service.VoteForgiveness(ctx, input.ProposalID, session.Wallet, input.Body.InFavor)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.ProposalOutput{Body: *proposal}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-execute-forgiveness",
		Method:      "POST",
		Path:        basePath + "/forgiveness/{proposal_id}/execute",
		Summary:     "Execute Forgiveness",
		Description: "Closes a passed vote: clears the betrayal mark and restores stability.",
		Tags:        []string{"Diplomacy"},
	}, func(ctx context.Context, input *dto.ExecuteForgivenessInput) (*dto.AllianceOutput, error) {
		if _, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie); err != nil {
			return nil, err
		}
		alliance, err := m.service.ExecuteForgiveness(ctx, input.ProposalID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.AllianceOutput{Body: *alliance}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-propose-treaty",
		Method:      "POST",
		Path:        basePath + "/{alliance_id}/treaties",
		Summary:     "Propose Treaty",
		Tags:        []string{"Diplomacy"},
	}, func(ctx context.Context, input *dto.ProposeTreatyInput) (*dto.TreatyOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		if err := dto.ValidateProposeTreatyRequest(input); err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid treaty proposal", err)
		}
		treaty, err := m.service.ProposeTreaty(ctx, input.AllianceID, session.Wallet, input.Body.TargetAllianceID, models.TreatyType(input.Body.Type))
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TreatyOutput{Body: *treaty}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-respond-treaty",
		Method:      "POST",
		Path:        basePath + "/treaties/{treaty_id}/response",
		Summary:     "Respond to Treaty",
		Tags:        []string{"Diplomacy"},
	}, func(ctx context.Context, input *dto.RespondTreatyInput) (*dto.TreatyOutput, error) {
		session, err := m.auth.ValidateAuthFromHeaders(input.Authorization, input.Cookie)
		if err != nil {
			return nil, err
		}
		treaty, err := m.service.RespondToTreaty(ctx, input.TreatyID, session.Wallet, input.Body.Accept)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		return &dto.TreatyOutput{Body: *treaty}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-list-treaties",
		Method:      "GET",
		Path:        basePath + "/{alliance_id}/treaties",
		Summary:     "List Treaties",
		Tags:        []string{"Diplomacy"},
	}, func(ctx context.Context, input *dto.ListTreatiesInput) (*dto.TreatyListOutput, error) {
		treaties, err := m.service.ListTreaties(ctx, input.AllianceID)
		if err != nil {
			return nil, warerrors.ToHuma(err)
		}
		out := &dto.TreatyListOutput{}
		out.Body.Treaties = treaties
		out.Body.Count = len(treaties)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "alliance-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get alliance module status",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		return &dto.StatusOutput{Body: dto.StatusResponse{Module: "alliance", Status: "healthy"}}, nil
	})
}
