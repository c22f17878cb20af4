package dto

// StartSeasonInput represents the input for starting the next season
type StartSeasonInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
}

// GetSeasonInput represents the input for reading the current season
type GetSeasonInput struct{}

// RegisterColonyInput represents the input for registering a colony
type RegisterColonyInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		ColonyID int64 `json:"colony_id" validate:"gt=0" minimum:"1" description:"Colony to register"`
	}
}

// PreRegisterInput represents the input for queueing a colony for the next season
type PreRegisterInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		ColonyID int64 `json:"colony_id" validate:"gt=0" minimum:"1" description:"Colony to pre-register"`
		Stake    int64 `json:"stake" validate:"gt=0" minimum:"1" description:"Stake escrowed into the war pool; refunded if the pre-registration is withdrawn"`
	}
}

// DistributeRewardsInput represents the input for paying out a season's prize pool
type DistributeRewardsInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	SeasonNumber  int    `path:"season_number" minimum:"1" description:"Season whose prize pool to distribute"`
	Body          struct {
		RecipientWallet string `json:"recipient_wallet" validate:"required" description:"Wallet the prize pool is paid to"`
	}
}

// CancelPreRegistrationInput represents the input for withdrawing a pre-registration
type CancelPreRegistrationInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	ColonyID      int64  `path:"colony_id" minimum:"1" description:"Colony whose pre-registration to withdraw"`
}
