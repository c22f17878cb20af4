package dto

// GetProfileInput represents the input for reading a colony war profile
type GetProfileInput struct {
	ColonyID int64 `path:"colony_id" minimum:"1" description:"Colony ID" example:"42"`
}

// AddStakeInput represents the input for adding defensive stake
type AddStakeInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	ColonyID      int64  `path:"colony_id" minimum:"1" description:"Colony ID"`
	Body          struct {
		Amount int64 `json:"amount" validate:"gt=0" minimum:"1" description:"Stake amount to escrow"`
	}
}

// SetPrimaryColonyInput represents the input for changing the primary colony
type SetPrimaryColonyInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		ColonyID int64 `json:"colony_id" validate:"gt=0" minimum:"1" description:"Colony to promote to primary"`
	}
}

// ListMyColoniesInput represents the input for listing the caller's colonies
type ListMyColoniesInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
}
