package dto

// FormTaskForceInput represents the input for assembling a task force
type FormTaskForceInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	Body          struct {
		LeaderColonyID    int64 `json:"leader_colony_id" validate:"gt=0" minimum:"1" description:"Colony leading the task force"`
		TargetTerritoryID int64 `json:"target_territory_id" validate:"gt=0" minimum:"1" description:"Territory the attack targets"`
	}
}

// GetTaskForceInput represents the input for reading a task force
type GetTaskForceInput struct {
	TaskForceID string `path:"task_force_id" description:"Task force ID"`
}

// ListTaskForcesInput represents the input for listing the season's task forces
type ListTaskForcesInput struct{}

// JoinTaskForceInput represents the input for joining a task force
type JoinTaskForceInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TaskForceID   string `path:"task_force_id" description:"Task force ID"`
	Body          struct {
		ColonyID int64 `json:"colony_id" validate:"gt=0" minimum:"1" description:"Colony joining the task force"`
	}
}

// LeaveTaskForceInput represents the input for leaving a task force
type LeaveTaskForceInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TaskForceID   string `path:"task_force_id" description:"Task force ID"`
	ColonyID      int64  `path:"colony_id" minimum:"1" description:"Colony leaving the task force"`
}

// LaunchInput represents the input for launching a coordinated attack
type LaunchInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token for authentication"`
	Cookie        string `header:"Cookie" doc:"Authentication cookie"`
	TaskForceID   string `path:"task_force_id" description:"Task force ID"`
}
