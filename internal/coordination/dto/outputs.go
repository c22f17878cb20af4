package dto

import "colonywars/internal/coordination/models"

// TaskForceOutput represents a single task force response
type TaskForceOutput struct {
	Body models.TaskForce `json:"body"`
}

// TaskForceListOutput represents a list of task forces
type TaskForceListOutput struct {
	Body struct {
		TaskForces []models.TaskForce `json:"task_forces"`
		Count      int                `json:"count"`
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
