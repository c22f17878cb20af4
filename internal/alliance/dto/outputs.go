package dto

import "colonywars/internal/alliance/models"

// AllianceOutput represents a single alliance response
type AllianceOutput struct {
	Body models.Alliance `json:"body"`
}

// AllianceListOutput represents a list of alliances
type AllianceListOutput struct {
	Body struct {
		Alliances []models.Alliance `json:"alliances"`
		Count     int               `json:"count"`
	} `json:"body"`
}

// ProposalOutput represents a forgiveness proposal response
type ProposalOutput struct {
	Body models.ForgivenessProposal `json:"body"`
}

// TreatyOutput represents a single treaty response
type TreatyOutput struct {
	Body models.DiplomaticTreaty `json:"body"`
}

// TreatyListOutput represents a list of treaties
type TreatyListOutput struct {
	Body struct {
		Treaties []models.DiplomaticTreaty `json:"treaties"`
		Count    int                       `json:"count"`
	} `json:"body"`
}

// StatusResponse reports module health
type StatusResponse struct {
	Module string `json:"module"`
	Status string `json:"status"`
}

// StatusOutput wraps the module status response
type StatusOutput struct {
	Body StatusResponse `json:"body"`
}
