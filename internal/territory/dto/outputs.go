package dto

import "colonywars/internal/territory/models"

// TerritoryOutput represents a single territory response
type TerritoryOutput struct {
	Body models.Territory `json:"body"`
}

// TerritoryListOutput represents a list of territories
type TerritoryListOutput struct {
	Body struct {
		Territories []models.Territory `json:"territories"`
		Count       int                `json:"count"`
	} `json:"body"`
}

// ScoutReportOutput represents the intel returned by a raid scout
type ScoutReportOutput struct {
	Body models.ScoutReport `json:"body"`
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
