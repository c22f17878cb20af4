package dto

// DeclareSiegeInput represents the input for declaring a siege
type DeclareSiegeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		TerritoryID      int64   `json:"territory_id" validate:"gt=0" minimum:"1" description:"Territory under attack"`
		AttackerColonyID int64   `json:"attacker_colony_id" validate:"gt=0" minimum:"1" description:"Attacking colony"`
		Stake            int64   `json:"stake" validate:"gt=0" minimum:"1" description:"Wager escrowed into the war pool; forfeited on a defender win"`
		TokenIDs         []int64 `json:"token_ids,omitempty" description:"Tokens committed to the assault; defaults to the colony's full staked set"`
	}
}

// GetSiegeInput represents the input for reading a siege
type GetSiegeInput struct {
	SiegeID string `path:"siege_id" description:"Siege ID" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

// ListSiegesInput represents the input for listing a colony's sieges
type ListSiegesInput struct {
	ColonyID int64 `query:"colony_id" minimum:"1" description:"Colony whose siege history to list"`
}

// DefendInput represents the input for recording the defense snapshot
type DefendInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	SiegeID       string `path:"siege_id" description:"Siege ID"`
	Body          struct {
		TokenIDs []int64 `json:"token_ids,omitempty" description:"Tokens committed to the defense; defaults to the colony's full staked set"`
	}
}

// ResolveSiegeInput represents the input for resolving a siege
type ResolveSiegeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	SiegeID       string `path:"siege_id" description:"Siege ID"`
}

// CancelSiegeInput represents the input for withdrawing a siege
type CancelSiegeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	SiegeID       string `path:"siege_id" description:"Siege ID"`
	Override      bool   `query:"override" description:"Administrative override, requires war admin rights"`
}
