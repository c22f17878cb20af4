package dto

import "colonywars/internal/siege/models"

// SiegeOutput represents a single siege response
type SiegeOutput struct {
	Body models.Siege `json:"body"`
}

// SiegeListOutput represents a list of sieges
type SiegeListOutput struct {
	Body struct {
		Sieges []models.Siege `json:"sieges"`
		Count  int            `json:"count"`
	} `json:"body"`
}

// SnapshotOutput represents the recorded defense snapshot
type SnapshotOutput struct {
	Body models.Snapshot `json:"body"`
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
