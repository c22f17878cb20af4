package dto

import "colonywars/internal/colony/models"

// ProfileOutput represents a colony war profile response
type ProfileOutput struct {
	Body models.WarProfile `json:"body"`
}

// WalletColoniesOutput represents the colonies controlled by a wallet
type WalletColoniesOutput struct {
	Body struct {
		Wallet          string  `json:"wallet"`
		ColonyIDs       []int64 `json:"colony_ids"`
		PrimaryColonyID int64   `json:"primary_colony_id"`
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
