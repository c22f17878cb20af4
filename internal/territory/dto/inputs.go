package dto

// GetTerritoryInput represents the input for reading a territory
type GetTerritoryInput struct {
	TerritoryID int64 `path:"territory_id" minimum:"1" description:"Territory ID" example:"7"`
}

// ListTerritoriesInput represents the input for listing territories
type ListTerritoriesInput struct {
	OwnerColonyID int64 `query:"owner_colony_id" description:"Filter by owning colony"`
}

// RegisterTerritoryInput represents the input for seeding a territory
type RegisterTerritoryInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		TerritoryID int64  `json:"territory_id" validate:"gt=0" minimum:"1" description:"Territory ID"`
		Name        string `json:"name" validate:"required,min=2,max=64" minLength:"2" maxLength:"64" description:"Territory name"`
		Type        string `json:"type" validate:"required" enum:"spice_fields,ore_deposits,crystal_caves,ancient_ruins,trade_routes" description:"Production bonus category"`
		BonusValue  int64  `json:"bonus_value" validate:"gt=0" minimum:"1" description:"Production bonus granted to the holder"`
		BaseDefense int64  `json:"base_defense" validate:"gt=0" minimum:"1" description:"Base defense value"`
	}
}

// CaptureTerritoryInput represents the input for capturing a territory
type CaptureTerritoryInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TerritoryID   int64  `path:"territory_id" minimum:"1" description:"Territory ID"`
	Body          struct {
		ColonyID int64 `json:"colony_id" validate:"gt=0" minimum:"1" description:"Capturing colony"`
	}
}

// PayMaintenanceInput represents the input for paying territory upkeep
type PayMaintenanceInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TerritoryID   int64  `path:"territory_id" minimum:"1" description:"Territory ID"`
}

// RepairInput represents the input for repairing territory damage
type RepairInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TerritoryID   int64  `path:"territory_id" minimum:"1" description:"Territory ID"`
	Body          struct {
		Amount int `json:"amount" validate:"gt=0,lte=100" minimum:"1" maximum:"100" description:"Damage points to repair"`
	}
}

// FortifyInput represents the input for fortifying a territory
type FortifyInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TerritoryID   int64  `path:"territory_id" minimum:"1" description:"Territory ID"`
	Body          struct {
		Amount int `json:"amount" validate:"gt=0,lte=100" minimum:"1" maximum:"100" description:"Fortification points to add"`
	}
}

// RaidScoutInput represents the input for scouting a territory
type RaidScoutInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TerritoryID   int64  `path:"territory_id" minimum:"1" description:"Territory ID"`
	Body          struct {
		ScoutColonyID int64 `json:"scout_colony_id" validate:"gt=0" minimum:"1" description:"Colony performing the scout"`
	}
}
