package dto

// FounderInput names one founding colony and its controlling wallet
type FounderInput struct {
	ColonyID int64  `json:"colony_id" validate:"gt=0" minimum:"1" description:"Founding colony ID"`
	Wallet   string `json:"wallet" validate:"required" description:"Wallet controlling the colony"`
}

// FormAllianceInput represents the input for forming an alliance
type FormAllianceInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		Name           string         `json:"name" validate:"required,min=3,max=64" minLength:"3" maxLength:"64" description:"Alliance name"`
		LeaderColonyID int64          `json:"leader_colony_id" validate:"gt=0" minimum:"1" description:"Leader colony, must be among founders"`
		Founders       []FounderInput `json:"founders" validate:"required,min=2,dive" description:"Founding colonies"`
	}
}

// GetAllianceInput represents the input for reading an alliance
type GetAllianceInput struct {
	AllianceID string `path:"alliance_id" description:"Alliance ID" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

// ListAlliancesInput represents the input for listing alliances
type ListAlliancesInput struct {
	ActiveOnly bool `query:"active_only" description:"Return only active alliances"`
}

// MemberInput represents the input for admitting or removing a member
type MemberInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	AllianceID    string `path:"alliance_id" description:"Alliance ID"`
	Body          struct {
		ColonyID int64 `json:"colony_id" validate:"gt=0" minimum:"1" description:"Colony to admit or remove"`
	}
}

// ProposeForgivenessInput represents the input for opening a forgiveness vote
type ProposeForgivenessInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	AllianceID    string `path:"alliance_id" description:"Alliance ID"`
	Body          struct {
		BetrayerColonyID int64 `json:"betrayer_colony_id" validate:"gt=0" minimum:"1" description:"Marked colony to forgive"`
	}
}

// VoteForgivenessInput represents the input for casting a forgiveness vote
type VoteForgivenessInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	ProposalID    string `path:"proposal_id" description:"Forgiveness proposal ID"`
	Body          struct {
		InFavor bool `json:"in_favor" description:"True to vote for forgiveness"`
	}
}

// ExecuteForgivenessInput represents the input for closing a passed vote
type ExecuteForgivenessInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	ProposalID    string `path:"proposal_id" description:"Forgiveness proposal ID"`
}

// ProposeTreatyInput represents the input for proposing a treaty
type ProposeTreatyInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	AllianceID    string `path:"alliance_id" description:"Proposing alliance ID"`
	Body          struct {
		TargetAllianceID string `json:"target_alliance_id" validate:"required" description:"Alliance receiving the proposal"`
		Type             string `json:"type" validate:"required,oneof=nap trade military" enum:"nap,trade,military" description:"Treaty type"`
	}
}

// RespondTreatyInput represents the input for accepting or rejecting a treaty
type RespondTreatyInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TreatyID      string `path:"treaty_id" description:"Treaty ID"`
	Body          struct {
		Accept bool `json:"accept" description:"True to accept the treaty"`
	}
}

// ListTreatiesInput represents the input for listing an alliance's treaties
type ListTreatiesInput struct {
	AllianceID string `path:"alliance_id" description:"Alliance ID"`
}
