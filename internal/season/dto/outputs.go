package dto

import "colonywars/internal/season/models"

// SeasonOutput represents a season response
type SeasonOutput struct {
	Body models.Season `json:"body"`
}

// SeasonPhaseOutput represents the current season with its derived phase
type SeasonPhaseOutput struct {
	Body struct {
		Season models.Season `json:"season"`
		Phase  models.Phase  `json:"phase"`
	} `json:"body"`
}

// PreRegistrationOutput represents a queued pre-registration
type PreRegistrationOutput struct {
	Body models.PreRegistration `json:"body"`
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
