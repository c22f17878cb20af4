package dto

import "colonywars/internal/settings/models"

// FlagOutput represents a single feature flag response
type FlagOutput struct {
	Body models.FeatureFlag `json:"body"`
}

// FlagListOutput represents the state of every feature
type FlagListOutput struct {
	Body struct {
		Flags []models.FeatureFlag `json:"flags"`
		Count int                  `json:"count"`
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
