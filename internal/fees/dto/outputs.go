package dto

import "colonywars/internal/fees/models"

// FeeOutput represents a single fee configuration response
type FeeOutput struct {
	Body models.OperationFee `json:"body"`
}

// FeeListOutput represents the response for listing fee configurations
type FeeListOutput struct {
	Body struct {
		Fees  []models.OperationFee `json:"fees"`
		Count int                   `json:"count"`
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
